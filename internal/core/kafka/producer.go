package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/config"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewSyncProducer 创建同步生产者，审计事件与 DLQ 共用。
func NewSyncProducer(cfg config.KafkaConfig, clientConfig *sarama.Config, logger *core.ZapLogger) (sarama.SyncProducer, error) {
	if logger == nil {
		return nil, errors.New("创建 Kafka 同步生产者失败：logger 实例不能为空")
	}
	if clientConfig == nil {
		return nil, errors.New("创建 Kafka 同步生产者失败：Sarama 配置不能为空")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("创建 Kafka 同步生产者失败：Broker 地址列表不能为空")
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("创建 Kafka 同步生产者失败，目标 Broker: %v: %w", cfg.Brokers, err)
	}
	logger.Info("Kafka 同步生产者初始化成功", zap.Strings("brokers", cfg.Brokers))
	return producer, nil
}

type sendResult struct {
	partition int32
	offset    int64
	err       error
}

// sendWithContext SendMessage 本身不接受 context，放到 goroutine 里以便响应取消。
func sendWithContext(ctx context.Context, producer sarama.SyncProducer, msg *sarama.ProducerMessage) sendResult {
	ch := make(chan sendResult, 1)
	go func() {
		partition, offset, err := producer.SendMessage(msg)
		ch <- sendResult{partition, offset, err}
	}()
	select {
	case res := <-ch:
		return res
	case <-ctx.Done():
		return sendResult{err: ctx.Err()}
	}
}

// SendToDLQ 把处理失败的原始消息连同上下文头写入死信主题。
func SendToDLQ(ctx context.Context, producer sarama.SyncProducer, dlqTopic string,
	original *sarama.ConsumerMessage, processingErr error, logger *core.ZapLogger) error {
	if producer == nil || dlqTopic == "" {
		return errors.New("发送到 DLQ 失败：DLQ 生产者或主题未配置")
	}
	if original == nil {
		return errors.New("发送到 DLQ 失败：原始消息不能为空")
	}

	headers := []sarama.RecordHeader{
		{Key: []byte("dlq_original_topic"), Value: []byte(original.Topic)},
		{Key: []byte("dlq_original_partition"), Value: []byte(strconv.FormatInt(int64(original.Partition), 10))},
		{Key: []byte("dlq_original_offset"), Value: []byte(strconv.FormatInt(original.Offset, 10))},
		{Key: []byte("dlq_timestamp_utc"), Value: []byte(time.Now().UTC().Format(time.RFC3339Nano))},
	}
	if processingErr != nil {
		headers = append(headers, sarama.RecordHeader{Key: []byte("dlq_processing_error"), Value: []byte(processingErr.Error())})
	}

	res := sendWithContext(ctx, producer, &sarama.ProducerMessage{
		Topic:   dlqTopic,
		Key:     sarama.ByteEncoder(original.Key),
		Value:   sarama.ByteEncoder(original.Value),
		Headers: headers,
	})
	if res.err != nil {
		logger.Error("发送消息到 DLQ 失败",
			zap.String("dlq_topic", dlqTopic),
			zap.String("original_topic", original.Topic),
			zap.Int64("original_offset", original.Offset),
			zap.Error(res.err),
		)
		return fmt.Errorf("发送消息到 DLQ 失败 (主题 '%s'，偏移量 %d): %w", original.Topic, original.Offset, res.err)
	}
	logger.Info("消息已发送到 DLQ",
		zap.String("dlq_topic", dlqTopic),
		zap.Int32("dlq_partition", res.partition),
		zap.Int64("dlq_offset", res.offset),
		zap.String("original_topic", original.Topic),
	)
	return nil
}

// DeletionPublisher 发布内容删除事件。
type DeletionPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *core.ZapLogger
	now      func() time.Time
}

func NewDeletionPublisher(producer sarama.SyncProducer, topic string, logger *core.ZapLogger) *DeletionPublisher {
	if logger == nil {
		panic("NewDeletionPublisher: logger 不能为 nil")
	}
	if producer == nil || topic == "" {
		logger.Fatal("NewDeletionPublisher: 生产者与主题不能为空")
	}
	return &DeletionPublisher{producer: producer, topic: topic, logger: logger, now: time.Now}
}

// PublishContentDeleted 以文章编号为 key 发送删除事件，保证同一文章的事件有序。
func (p *DeletionPublisher) PublishContentDeleted(ctx context.Context, ctntNo int64, viewID string) error {
	event := models.ContentDeleteEvent{
		EventID:    uuid.NewString(),
		Operation:  models.ContentDeleteOperation,
		CtntNo:     ctntNo,
		ViewID:     viewID,
		OccurredAt: p.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化删除事件失败: %w", err)
	}

	res := sendWithContext(ctx, p.producer, &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ctntNo, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if res.err != nil {
		return fmt.Errorf("发送内容删除事件 (ctntNo: %d) 失败: %w", ctntNo, res.err)
	}
	p.logger.Info("内容删除事件已发布",
		zap.String("event_id", event.EventID),
		zap.Int64("ctnt_no", ctntNo),
		zap.Int32("partition", res.partition),
		zap.Int64("offset", res.offset),
	)
	return nil
}
