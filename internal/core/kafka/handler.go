package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ContentEventHandler 内容事件的业务处理，由 EventService 实现。
type ContentEventHandler interface {
	HandleContentUpsert(ctx context.Context, event *models.ContentUpsertEvent) error
	HandleContentDelete(ctx context.Context, event *models.ContentDeleteEvent) error
}

// MessageHandlerFunc 单条消息的处理函数。
type MessageHandlerFunc func(ctx context.Context, message *sarama.ConsumerMessage) error

// Handler 实现 sarama.ConsumerGroupHandler: 按主题分发，失败时指数退避重试，最终失败进入 DLQ。
type Handler struct {
	events         ContentEventHandler
	dlqProducer    sarama.SyncProducer
	dlqTopic       string
	maxRetry       uint64
	initialBackoff time.Duration
	topicToHandler map[string]MessageHandlerFunc
	ready          chan bool
	logger         *core.ZapLogger
}

// NewHandler 创建消费处理器。
// 参数:
//   - events: 内容事件处理服务。
//   - producer/dlqTopic: 死信队列生产者与主题，可以为空（此时失败消息只记录日志）。
//   - upsertTopic/deleteTopic: 订阅的两个内容主题。
//   - maxRetries: 单条消息的最大重试次数。
func NewHandler(events ContentEventHandler, producer sarama.SyncProducer, dlqTopic, upsertTopic, deleteTopic string,
	logger *core.ZapLogger, maxRetries uint64) *Handler {
	if logger == nil {
		panic("NewHandler: logger 不能为 nil")
	}
	if events == nil {
		logger.Fatal("NewHandler: ContentEventHandler 不能为 nil")
	}
	if (producer == nil) != (dlqTopic == "") {
		logger.Warn("DLQ 生产者与主题只配置了一项，DLQ 不可用", zap.String("dlq_topic", dlqTopic))
	}

	h := &Handler{
		events:         events,
		dlqProducer:    producer,
		dlqTopic:       dlqTopic,
		maxRetry:       maxRetries,
		initialBackoff: backoff.DefaultInitialInterval,
		ready:          make(chan bool),
		logger:         logger,
	}
	h.topicToHandler = map[string]MessageHandlerFunc{
		upsertTopic: h.handleContentUpsert,
		deleteTopic: h.handleContentDelete,
	}
	return h
}

// Topics 处理器能处理的主题。
func (h *Handler) Topics() []string {
	topics := make([]string, 0, len(h.topicToHandler))
	for t := range h.topicToHandler {
		topics = append(topics, t)
	}
	return topics
}

func (h *Handler) Ready() <-chan bool {
	return h.ready
}

func (h *Handler) Setup(session sarama.ConsumerGroupSession) error {
	select {
	case <-h.ready:
	default:
		close(h.ready)
	}
	h.logger.Info("Kafka Handler Setup 完成", zap.String("member_id", session.MemberID()))
	return nil
}

func (h *Handler) Cleanup(session sarama.ConsumerGroupSession) error {
	h.logger.Info("Kafka Handler Cleanup", zap.String("member_id", session.MemberID()))
	return nil
}

func (h *Handler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	h.logger.Info("开始消费分区",
		zap.String("topic", claim.Topic()),
		zap.Int32("partition", claim.Partition()),
		zap.Int64("initial_offset", claim.InitialOffset()),
	)

	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			h.handleMessage(session, message)
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *Handler) handleMessage(session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	defer func() {
		session.MarkMessage(message, "")
		session.Commit()
	}()

	handlerFunc, ok := h.topicToHandler[message.Topic]
	if !ok {
		h.logger.Warn("没有该主题的处理函数，跳过", zap.String("topic", message.Topic), zap.Int64("offset", message.Offset))
		return
	}

	processErr := h.processWithRetry(session.Context(), message, handlerFunc)
	if processErr == nil {
		return
	}
	h.logger.Error("消息处理最终失败，发送到 DLQ",
		zap.String("topic", message.Topic),
		zap.Int32("partition", message.Partition),
		zap.Int64("offset", message.Offset),
		zap.Error(processErr),
	)
	if h.dlqProducer == nil || h.dlqTopic == "" {
		return
	}
	dlqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := SendToDLQ(dlqCtx, h.dlqProducer, h.dlqTopic, message, processErr, h.logger); err != nil {
		h.logger.Error("发送 DLQ 失败，消息可能丢失，需要人工关注",
			zap.String("topic", message.Topic),
			zap.Int64("offset", message.Offset),
			zap.NamedError("dlq_send_error", err),
		)
	}
}

func (h *Handler) processWithRetry(ctx context.Context, message *sarama.ConsumerMessage, handlerFunc MessageHandlerFunc) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = h.initialBackoff
	bo.MaxElapsedTime = 0

	operation := func() error {
		err := handlerFunc(ctx, message)
		if err != nil && isPermanentError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		h.logger.Warn("消息处理失败，准备重试",
			zap.String("topic", message.Topic),
			zap.Int64("offset", message.Offset),
			zap.Duration("next_retry_in", next),
			zap.Error(err),
		)
	}
	return backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(bo, h.maxRetry), ctx), notify)
}

func (h *Handler) handleContentUpsert(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event models.ContentUpsertEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("反序列化内容更新事件失败 (偏移量 %d): %v: %w", message.Offset, err, ErrInvalidEventFormat)
	}
	return h.events.HandleContentUpsert(ctx, &event)
}

func (h *Handler) handleContentDelete(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event models.ContentDeleteEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("反序列化内容删除事件失败 (偏移量 %d): %v: %w", message.Offset, err, ErrInvalidEventFormat)
	}
	return h.events.HandleContentDelete(ctx, &event)
}

// isPermanentError 数据本身有问题的错误，重试没有意义。
func isPermanentError(err error) bool {
	return errors.Is(err, ErrInvalidEventFormat) ||
		errors.Is(err, ErrInvalidContentID) ||
		errors.Is(err, ErrEmptyTitle)
}
