package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"dailymoji-be/internal/dto"
	"dailymoji-be/internal/pkg/logger"
	"dailymoji-be/pkg/events"
	pktNats "dailymoji-be/pkg/nats"
	"dailymoji-be/pkg/srj5"
)

type ICheckinService interface {
	Checkin(ctx context.Context, req *dto.CheckinRequest) (*dto.CheckinResponse, error)
	Baseline(req *dto.BaselineRequest) *dto.BaselineResponse
}

type checkinService struct {
	engine  *srj5.Engine
	pubSub  *gochannel.GoChannel
	topic   string
	natsPub *pktNats.Publisher
	log     logger.ILogger
}

func NewCheckinService(
	engine *srj5.Engine,
	pubSub *gochannel.GoChannel,
	topic string,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) ICheckinService {
	return &checkinService{
		engine:  engine,
		pubSub:  pubSub,
		topic:   topic,
		natsPub: natsPub,
		log:     log,
	}
}

// Checkin runs the scoring pipeline and hands the result off for
// best-effort persistence. The response never waits on storage.
func (s *checkinService) Checkin(ctx context.Context, req *dto.CheckinRequest) (*dto.CheckinResponse, error) {
	result, err := s.engine.Run(ctx, srj5.CheckinInput{
		Text:       req.Text,
		Icon:       req.Icon,
		Intensity:  req.Intensity,
		Contexts:   req.Contexts,
		Timestamp:  req.Timestamp,
		Surveys:    req.Surveys,
		Onboarding: req.Onboarding,
	})
	if err != nil {
		return nil, err
	}

	sessionID := uuid.New()

	s.log.Info("checkin", "pipeline completed", map[string]interface{}{
		"session_id": sessionID.String(),
		"mode":       result.Trace.Mode,
		"profile":    result.Profile,
		"g_score":    result.GScore,
	})

	s.publishPersist(sessionID, req, result)

	if result.Profile == srj5.ProfileCrisis {
		s.publishCrisisAlert(sessionID, req.UserID, result)
	}

	return &dto.CheckinResponse{
		SessionID:    &sessionID,
		FinalScores:  result.FinalScores,
		GScore:       result.GScore,
		Profile:      result.Profile,
		Intervention: result.Intervention,
		AnalysisText: result.AnalysisText,
		Trace:        result.Trace,
	}, nil
}

func (s *checkinService) Baseline(req *dto.BaselineRequest) *dto.BaselineResponse {
	return &dto.BaselineResponse{Baseline: s.engine.Baseline(req.Onboarding)}
}

// publishPersist queues the session for the persistence consumer. A
// publish failure is logged and swallowed: the caller already has the
// computed result.
func (s *checkinService) publishPersist(sessionID uuid.UUID, req *dto.CheckinRequest, result *srj5.Result) {
	if s.pubSub == nil {
		return
	}
	payload, err := json.Marshal(dto.PersistSessionMessage{
		SessionID:    sessionID,
		UserID:       req.UserID,
		Text:         req.Text,
		Icon:         req.Icon,
		Profile:      result.Profile,
		GScore:       result.GScore,
		Timestamp:    req.Timestamp,
		Intervention: result.Intervention,
		FinalScores:  result.FinalScores,
		Trace:        result.Trace,
	})
	if err != nil {
		s.log.Error("checkin", "failed to marshal persist message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	msg := message.NewMessage(sessionID.String(), payload)
	if err := s.pubSub.Publish(s.topic, msg); err != nil {
		s.log.Error("checkin", "failed to queue session for persistence", map[string]interface{}{
			"session_id": sessionID.String(),
			"error":      err.Error(),
		})
	}
}

func (s *checkinService) publishCrisisAlert(sessionID uuid.UUID, userID string, result *srj5.Result) {
	if s.natsPub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	event := events.NewCrisisDetected(userID, sessionID.String(), result.Intervention.PresetID, result.Profile)
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.log.Error("checkin", "failed to publish crisis alert", map[string]interface{}{
			"session_id": sessionID.String(),
			"error":      err.Error(),
		})
	}
}
