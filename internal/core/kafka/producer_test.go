package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/Xushengqwer/post_admin/config"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletionPublisher(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e models.ContentDeleteEvent
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.CtntNo != 42 || e.Operation != "delete" || e.ViewID != "view-1" || e.EventID == "" {
			return errors.New("事件内容不符合预期")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	defer func() { assert.NoError(t, producer.Close()) }()

	p := NewDeletionPublisher(producer, "blog.content.delete", newTestLogger(t))
	p.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, p.PublishContentDeleted(context.Background(), 42, "view-1"))

	err := p.PublishContentDeleted(context.Background(), 43, "view-1")
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestSendToDLQ_Validation(t *testing.T) {
	logger := newTestLogger(t)
	assert.Error(t, SendToDLQ(context.Background(), nil, "dlq", &sarama.ConsumerMessage{}, nil, logger))

	producer := mocks.NewSyncProducer(t, nil)
	defer func() { assert.NoError(t, producer.Close()) }()
	assert.Error(t, SendToDLQ(context.Background(), producer, "dlq", nil, nil, logger))
}

func TestConfigureSarama(t *testing.T) {
	logger := newTestLogger(t)

	cfg, err := ConfigureSarama(config.KafkaConfig{
		KafkaVersion:  "2.8.0",
		ConsumerGroup: config.ConsumerGroupConfig{AutoOffsetReset: "earliest", SessionTimeoutMs: 12000},
		Producer:      config.ProducerConfig{Acks: "1", RequestTimeout: 3 * time.Second},
	}, logger)
	require.NoError(t, err)
	assert.Equal(t, sarama.V2_8_0_0, cfg.Version)
	assert.Equal(t, sarama.OffsetOldest, cfg.Consumer.Offsets.Initial)
	assert.Equal(t, 12*time.Second, cfg.Consumer.Group.Session.Timeout)
	assert.False(t, cfg.Consumer.Offsets.AutoCommit.Enable)
	assert.Equal(t, sarama.WaitForLocal, cfg.Producer.RequiredAcks)
	assert.Equal(t, 3*time.Second, cfg.Producer.Timeout)
	assert.True(t, cfg.Producer.Return.Successes)

	_, err = ConfigureSarama(config.KafkaConfig{KafkaVersion: "banana"}, logger)
	assert.Error(t, err)

	assert.Equal(t, sarama.WaitForAll, parseAcks("weird", logger))
	assert.Equal(t, sarama.NoResponse, parseAcks("0", logger))
}

func TestNewSyncProducer_Validation(t *testing.T) {
	logger := newTestLogger(t)
	_, err := NewSyncProducer(config.KafkaConfig{}, sarama.NewConfig(), logger)
	assert.Error(t, err)
	_, err = NewSyncProducer(config.KafkaConfig{Brokers: []string{"k:9092"}}, nil, logger)
	assert.Error(t, err)
}
