package tokenizer

import "context"

// Tokenizer wraps an external morphological analyzer. Implementations
// return the ordered surface-form tokens of text. Callers treat any error
// as "no tokens": the pipeline degrades instead of failing.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]string, error)
}

// Noop is the degraded tokenizer: always an empty sequence, never an
// error. Used when no analyzer endpoint is configured.
type Noop struct{}

func (Noop) Tokenize(context.Context, string) ([]string, error) {
	return []string{}, nil
}
