package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v5"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type fakeReader struct {
	messages  []kafkaGo.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkaGo.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		<-ctx.Done()

		return kafkaGo.Message{}, ctx.Err()
	}

	msg := r.messages[0]
	r.messages = r.messages[1:]

	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	for _, msg := range msgs {
		r.committed = append(r.committed, msg.Offset)
	}

	return nil
}

func withoutBackOff(t *testing.T) {
	previous := retryBackOff
	retryBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }

	t.Cleanup(func() { retryBackOff = previous })
}

func TestConsume(t *testing.T) {
	t.Run("failed message is handled again before commit", func(t *testing.T) {
		withoutBackOff(t)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &fakeReader{messages: []kafkaGo.Message{{Offset: 7}, {Offset: 8}}, cancel: cancel}

		var handled []int64

		failures := 1
		consume(ctx, reader, "daybooker.activity", func(_ context.Context, msg kafkaGo.Message) error {
			handled = append(handled, msg.Offset)

			if msg.Offset == 7 && failures > 0 {
				failures--

				return errors.New("db down")
			}

			return nil
		})

		assert.Equal(t, []int64{7, 7, 8}, handled)
		assert.Equal(t, []int64{7, 8}, reader.committed)
	})

	t.Run("stops without commit when context ends mid retry", func(t *testing.T) {
		withoutBackOff(t)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &fakeReader{messages: []kafkaGo.Message{{Offset: 3}, {Offset: 4}}, cancel: cancel}

		attempts := 0
		consume(ctx, reader, "daybooker.activity", func(_ context.Context, _ kafkaGo.Message) error {
			attempts++
			if attempts == 3 {
				cancel()
			}

			return errors.New("db down")
		})

		assert.Equal(t, 3, attempts)
		assert.Empty(t, reader.committed)
		assert.Len(t, reader.messages, 1)
	})
}
