package contract

import (
	"context"

	"github.com/google/uuid"

	"dailymoji-be/internal/model"
)

// SessionRepository stores check-in sessions and their per-cluster score
// breakdown.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	CreateClusterScores(ctx context.Context, scores []model.ClusterScore) error
	FindSession(ctx context.Context, id uuid.UUID) (*model.Session, error)
}
