package kiwi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dailymoji-be/pkg/tokenizer"
)

// Client talks to a kiwi-server style morphological analyzer over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

var _ tokenizer.Tokenizer = &Client{}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Tokens []analyzedToken `json:"tokens"`
}

type analyzedToken struct {
	Form string `json:"form"`
	Tag  string `json:"tag"`
}

// Tokenize posts the text to the analyzer and returns the surface forms
// in order. Any transport or decode failure is returned as an error; the
// caller degrades to an empty token sequence.
func (c *Client) Tokenize(ctx context.Context, text string) ([]string, error) {
	payload, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.BaseURL + "/analyze"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyzer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyzer error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var decoded analyzeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	forms := make([]string, len(decoded.Tokens))
	for i, t := range decoded.Tokens {
		forms[i] = t.Form
	}
	return forms, nil
}
