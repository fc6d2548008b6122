package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConsumerGroup Consume 调用 handler.Setup 后阻塞到 ctx 结束或 Close。
type fakeConsumerGroup struct {
	sarama.ConsumerGroup
	closed chan struct{}
}

func (f *fakeConsumerGroup) Consume(ctx context.Context, _ []string, handler sarama.ConsumerGroupHandler) error {
	if err := handler.Setup(&fakeSession{ctx: ctx}); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.closed:
		return sarama.ErrClosedConsumerGroup
	}
}

func (f *fakeConsumerGroup) Close() error {
	close(f.closed)
	return nil
}

func TestConsumerGroup_StartAndClose(t *testing.T) {
	logger := newTestLogger(t)
	h := newTestHandler(t, &fakeEvents{}, nil, 0)
	fake := &fakeConsumerGroup{closed: make(chan struct{})}

	cg, err := newConsumerGroup(fake, "group", h, h.Topics(), logger)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cg.Start(ctx)

	select {
	case <-h.Ready():
	default:
		t.Fatal("Start 返回时 handler 应已就绪")
	}
	assert.NoError(t, cg.Close())
}

func TestNewConsumerGroup_Validation(t *testing.T) {
	logger := newTestLogger(t)
	h := newTestHandler(t, &fakeEvents{}, nil, 0)

	_, err := newConsumerGroup(&fakeConsumerGroup{}, "g", h, nil, logger)
	assert.Error(t, err)
	_, err = newConsumerGroup(&fakeConsumerGroup{}, "g", h, []string{""}, logger)
	assert.Error(t, err)
	_, err = newConsumerGroup(&fakeConsumerGroup{}, "g", nil, []string{"t"}, logger)
	assert.Error(t, err)
}
