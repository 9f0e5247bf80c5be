package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailymoji-be/internal/dto"
	"dailymoji-be/internal/pkg/logger"
	"dailymoji-be/pkg/srj5"
	"dailymoji-be/pkg/tokenizer"
)

func newTestEngine(t *testing.T) *srj5.Engine {
	t.Helper()
	cfg := srj5.DefaultConfig()
	safety, err := srj5.NewMorphDetector(cfg, false)
	require.NoError(t, err)
	fuser := srj5.NewFuser(cfg, nil, nil, logger.NewNopLogger(), time.Second)
	return srj5.NewEngine(cfg, tokenizer.Noop{}, safety, fuser, logger.NewNopLogger())
}

func TestCheckinReturnsResultAndQueuesPersistence(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewCheckinService(newTestEngine(t), pubSub, "test.persist", nil, logger.NewNopLogger())

	messages, err := pubSub.Subscribe(context.Background(), "test.persist")
	require.NoError(t, err)

	res, err := svc.Checkin(context.Background(), &dto.CheckinRequest{
		UserID: "user-1",
		Text:   "요즘 걱정이 많아",
	})
	require.NoError(t, err)
	require.NotNil(t, res.SessionID)
	assert.InDelta(t, 0.2, res.FinalScores[srj5.ClusterNegHigh], 1e-9)
	assert.Equal(t, srj5.ModeAnalysis, res.Trace.Mode)

	select {
	case msg := <-messages:
		var payload dto.PersistSessionMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, *res.SessionID, payload.SessionID)
		assert.Equal(t, "user-1", payload.UserID)
		assert.Equal(t, res.GScore, payload.GScore)
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("no persistence message published")
	}
}

func TestCheckinInvalidInput(t *testing.T) {
	svc := NewCheckinService(newTestEngine(t), nil, "test.persist", nil, logger.NewNopLogger())

	_, err := svc.Checkin(context.Background(), &dto.CheckinRequest{UserID: "user-1"})
	assert.ErrorIs(t, err, srj5.ErrInvalidInput)
}

func TestCheckinWithoutPubSub(t *testing.T) {
	svc := NewCheckinService(newTestEngine(t), nil, "test.persist", nil, logger.NewNopLogger())

	res, err := svc.Checkin(context.Background(), &dto.CheckinRequest{
		UserID: "user-1",
		Icon:   "smile",
	})
	require.NoError(t, err)
	assert.Equal(t, srj5.ModeEmojiOnly, res.Trace.Mode)
}

func TestBaselineEndpointDelegates(t *testing.T) {
	svc := NewCheckinService(newTestEngine(t), nil, "test.persist", nil, logger.NewNopLogger())

	res := svc.Baseline(&dto.BaselineRequest{Onboarding: map[string]int{"q6": 3}})
	assert.InDelta(t, 0.90, res.Baseline[srj5.ClusterSleep], 1e-9)
}
