package producer

import (
	"context"
	"errors"
	"testing"

	"go-gemtrack/internal/messaging/kafka"
	kafkaMock "go-gemtrack/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	failOn string
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failOn {
			return errors.New("broker unavailable")
		}
		w.msgs = append(w.msgs, m)
	}
	return nil
}

func TestProcessBatch(t *testing.T) {
	ctx := context.Background()
	repo := kafkaMock.NewMockOutboxRepository(gomock.NewController(t))
	writer := &fakeWriter{failOn: "r1"}

	repo.EXPECT().ListPending(ctx, 10).Return([]kafka.OutboxEvent{
		{ID: "e1", AggregateID: "c1", EventType: "client.created", Topic: "t", Payload: []byte(`{}`), RequestID: "rid"},
		{ID: "e2", AggregateID: "r1", EventType: "report.created", Topic: "t", Payload: []byte(`{}`)},
	}, nil)
	repo.EXPECT().MarkSent(ctx, "e1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "e2", "broker unavailable").Return(nil)

	sent, err := ProcessBatch(ctx, repo, writer, zap.NewNop(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, writer.msgs, 1)

	msg := writer.msgs[0]
	assert.Equal(t, "c1", string(msg.Key))
	assert.Len(t, msg.Headers, 3)
	assert.Equal(t, "request_id", msg.Headers[2].Key)
}

func TestProcessBatch_ListError(t *testing.T) {
	ctx := context.Background()
	repo := kafkaMock.NewMockOutboxRepository(gomock.NewController(t))
	repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

	_, err := ProcessBatch(ctx, repo, &fakeWriter{}, zap.NewNop(), 50)
	assert.EqualError(t, err, "db down")
}

func TestWorkerConfigDefaults(t *testing.T) {
	cfg := WorkerConfig{}.withDefaults()
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Positive(t, cfg.PollInterval)
}
