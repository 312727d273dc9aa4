package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"invoicing/domain/notification"
	"invoicing/infrastructure/persistence/retry"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReader serves queued messages, then returns io.EOF.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if len(r.queue) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.queue[0]
	r.queue = r.queue[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func TestReceiptConsumer_Run(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{
		{Offset: 1, Value: []byte(`{"reference":"0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f70"}`)},
		{Offset: 2, Value: []byte(`not json`)},
		{Offset: 3, Value: []byte(`{"reference":"bad"}`)},
		{Offset: 4, Value: []byte(`{"reference":"0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f71"}`)},
	}}

	var references []string
	consumer := newReceiptConsumer(reader, func(_ context.Context, reference string) error {
		references = append(references, reference)
		if reference == "bad" {
			return fmt.Errorf("%w: %q", notification.ErrInvalidReference, reference)
		}
		return nil
	}, zap.NewNop())

	require.NoError(t, consumer.Run(context.Background()))

	assert.Equal(t, []string{
		"0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f70",
		"bad",
		"0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f71",
	}, references)
	assert.Len(t, reader.committed, 4)
}

func TestReceiptConsumer_StopsOnCancelledContext(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{{Value: []byte(`{"reference":"x"}`)}}}
	called := false
	consumer := newReceiptConsumer(reader, func(context.Context, string) error {
		called = true
		return nil
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, consumer.Run(ctx))
	assert.False(t, called)
}

func TestReceiptConsumer_StartAndClose(t *testing.T) {
	reader := &fakeReader{}
	consumer := newReceiptConsumer(reader, func(context.Context, string) error { return nil }, zap.NewNop())

	consumer.Start(context.Background())

	require.NoError(t, consumer.Close())
	assert.True(t, reader.closed)
}

func fastBackoff(c *ReceiptConsumer) *ReceiptConsumer {
	c.backoff = retry.Config{InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 1}
	return c
}

func TestReceiptConsumer_RetriesTransientFailure(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{
		{Offset: 7, Value: []byte(`{"reference":"0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f70"}`)},
	}}

	calls := 0
	consumer := fastBackoff(newReceiptConsumer(reader, func(context.Context, string) error {
		calls++
		if calls < 3 {
			return errors.New("save invoice: database unavailable")
		}
		return nil
	}, zap.NewNop()))

	require.NoError(t, consumer.Run(context.Background()))

	assert.Equal(t, 3, calls)
	require.Len(t, reader.committed, 1)
	assert.Equal(t, int64(7), reader.committed[0].Offset)
}

func TestReceiptConsumer_LeavesFailingReceiptUncommittedOnStop(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{
		{Offset: 1, Value: []byte(`{"reference":"0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f70"}`)},
		{Offset: 2, Value: []byte(`{"reference":"0192f0c4-7a4b-7c3e-9d1a-2b3c4d5e6f71"}`)},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	consumer := fastBackoff(newReceiptConsumer(reader, func(context.Context, string) error {
		calls++
		if calls == 2 {
			cancel()
		}
		return errors.New("database unavailable")
	}, zap.NewNop()))

	require.NoError(t, consumer.Run(ctx))

	assert.Empty(t, reader.committed)
	assert.Len(t, reader.queue, 1, "the next receipt must not be fetched")
}

func TestReceiptConsumer_CloseInterruptsBackoff(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{{Value: []byte(`{"reference":"x"}`)}}}
	failing := make(chan struct{}, 1)
	consumer := newReceiptConsumer(reader, func(context.Context, string) error {
		select {
		case failing <- struct{}{}:
		default:
		}
		return errors.New("database unavailable")
	}, zap.NewNop())
	consumer.backoff = retry.Config{InitialDelay: time.Hour, MaxDelay: time.Hour, BackoffFactor: 1}

	consumer.Start(context.Background())
	<-failing

	done := make(chan error, 1)
	go func() { done <- consumer.Close() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not interrupt the backoff")
	}
	assert.Empty(t, reader.committed)
}
