package dto

import (
	"github.com/google/uuid"

	"dailymoji-be/pkg/srj5"
)

// CheckinRequest is the inbound check-in payload. Text is required unless
// an icon is supplied (emoji-only flow); everything else is optional.
type CheckinRequest struct {
	UserID     string         `json:"user_id" validate:"required"`
	Text       string         `json:"text"`
	Icon       string         `json:"icon,omitempty"`
	Intensity  *float64       `json:"intensity,omitempty" validate:"omitempty,gte=0,lte=10"`
	Contexts   []string       `json:"contexts,omitempty"`
	Timestamp  string         `json:"timestamp,omitempty"`
	Surveys    map[string]int `json:"surveys,omitempty"`
	Onboarding map[string]int `json:"onboarding,omitempty" validate:"omitempty,dive,gte=0,lte=3"`
}

// CheckinResponse mirrors the pipeline result plus the persisted session
// id (nil when persistence is disabled or still in flight).
type CheckinResponse struct {
	SessionID    *uuid.UUID              `json:"session_id,omitempty"`
	FinalScores  srj5.ScoreVector        `json:"final_scores"`
	GScore       float64                 `json:"g_score"`
	Profile      int                     `json:"profile"`
	Intervention srj5.InterventionRecord `json:"intervention"`
	AnalysisText string                  `json:"analysis_text,omitempty"`
	Trace        srj5.Trace              `json:"debug_log"`
}

// BaselineRequest carries onboarding answers for the standalone baseline
// endpoint.
type BaselineRequest struct {
	Onboarding map[string]int `json:"onboarding" validate:"required,dive,gte=0,lte=3"`
}

type BaselineResponse struct {
	Baseline srj5.ScoreVector `json:"baseline"`
}

// PersistSessionMessage is the watermill payload handed to the persistence
// consumer after the response is computed.
type PersistSessionMessage struct {
	SessionID    uuid.UUID               `json:"session_id"`
	UserID       string                  `json:"user_id"`
	Text         string                  `json:"text"`
	Icon         string                  `json:"icon,omitempty"`
	Profile      int                     `json:"profile"`
	GScore       float64                 `json:"g_score"`
	Timestamp    string                  `json:"timestamp,omitempty"`
	Intervention srj5.InterventionRecord `json:"intervention"`
	FinalScores  srj5.ScoreVector        `json:"final_scores"`
	Trace        srj5.Trace              `json:"trace"`
}
