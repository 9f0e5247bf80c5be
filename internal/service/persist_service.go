package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"dailymoji-be/internal/dto"
	"dailymoji-be/internal/model"
	"dailymoji-be/internal/pkg/logger"
	"dailymoji-be/internal/repository/contract"
	"dailymoji-be/pkg/srj5"
)

type IPersistService interface {
	Consume(ctx context.Context) error
}

// persistService drains the session topic and writes rows. Failures are
// logged and never propagate back to the request path.
type persistService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	sessions  contract.SessionRepository
	log       logger.ILogger
}

func NewPersistService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessions contract.SessionRepository,
	log logger.ILogger,
) IPersistService {
	return &persistService{
		pubSub:    pubSub,
		topicName: topicName,
		sessions:  sessions,
		log:       log,
	}
}

func (ps *persistService) Consume(ctx context.Context) error {
	messages, err := ps.pubSub.Subscribe(ctx, ps.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ps.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ps *persistService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PersistSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ps.log.Error("persist", "failed to unmarshal session message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become valid; drop them
		return
	}

	intervention, err := json.Marshal(payload.Intervention)
	if err != nil {
		ps.log.Error("persist", "failed to marshal intervention", map[string]interface{}{
			"session_id": payload.SessionID.String(),
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}
	debugLog, err := json.Marshal(payload.Trace)
	if err != nil {
		ps.log.Error("persist", "failed to marshal trace", map[string]interface{}{
			"session_id": payload.SessionID.String(),
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	session := &model.Session{
		Id:           payload.SessionID,
		UserId:       payload.UserID,
		Text:         payload.Text,
		Icon:         payload.Icon,
		Profile:      payload.Profile,
		GScore:       payload.GScore,
		Intervention: intervention,
		DebugLog:     debugLog,
		CreatedAt:    srj5.RequestTimestamp(payload.Timestamp),
	}
	if err := ps.sessions.CreateSession(ctx, session); err != nil {
		ps.log.Error("persist", "failed to save session", map[string]interface{}{
			"session_id": payload.SessionID.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	scores := make([]model.ClusterScore, 0, len(payload.FinalScores))
	for cluster, score := range payload.FinalScores {
		scores = append(scores, model.ClusterScore{
			SessionId: payload.SessionID,
			UserId:    payload.UserID,
			Cluster:   string(cluster),
			Score:     score,
		})
	}
	if err := ps.sessions.CreateClusterScores(ctx, scores); err != nil {
		ps.log.Error("persist", "failed to save cluster scores", map[string]interface{}{
			"session_id": payload.SessionID.String(),
			"error":      err.Error(),
		})
		// session row already exists; retrying the message would duplicate it
		msg.Ack()
		return
	}

	ps.log.Info("persist", "session saved", map[string]interface{}{
		"session_id": payload.SessionID.String(),
	})
	msg.Ack()
}
