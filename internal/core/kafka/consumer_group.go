package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/config"
	"go.uber.org/zap"
)

// ConsumerGroup 管理消费循环的生命周期。
type ConsumerGroup struct {
	cg         sarama.ConsumerGroup
	handler    sarama.ConsumerGroupHandler
	topics     []string
	groupID    string
	retryDelay time.Duration
	wg         sync.WaitGroup
	logger     *core.ZapLogger
}

// NewConsumerGroup 连接 broker 并创建消费者组。
func NewConsumerGroup(cfg config.KafkaConfig, clientConfig *sarama.Config, handler sarama.ConsumerGroupHandler,
	topics []string, logger *core.ZapLogger) (*ConsumerGroup, error) {
	if logger == nil {
		return nil, errors.New("初始化消费者组失败：logger 实例不能为空")
	}
	if cfg.GroupID == "" {
		return nil, errors.New("初始化消费者组失败：GroupID 不能为空")
	}
	if clientConfig == nil {
		return nil, errors.New("初始化消费者组失败：Sarama 配置不能为空")
	}
	cg, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("创建 Kafka 消费者组 '%s' 失败: %w", cfg.GroupID, err)
	}
	return newConsumerGroup(cg, cfg.GroupID, handler, topics, logger)
}

func newConsumerGroup(cg sarama.ConsumerGroup, groupID string, handler sarama.ConsumerGroupHandler,
	topics []string, logger *core.ZapLogger) (*ConsumerGroup, error) {
	if handler == nil {
		return nil, errors.New("初始化消费者组失败：handler 不能为空")
	}
	if len(topics) == 0 {
		return nil, errors.New("初始化消费者组失败：订阅的主题列表不能为空")
	}
	for _, t := range topics {
		if t == "" {
			return nil, errors.New("初始化消费者组失败：订阅的主题列表中包含空主题")
		}
	}
	logger.Info("Kafka 消费者组初始化成功", zap.String("group_id", groupID), zap.Strings("topics", topics))
	return &ConsumerGroup{
		cg:         cg,
		handler:    handler,
		topics:     topics,
		groupID:    groupID,
		retryDelay: 5 * time.Second,
		logger:     logger,
	}, nil
}

// Start 在后台 goroutine 中循环 Consume（重平衡后需要重新调用），并等待 handler 就绪或 ctx 结束。
func (c *ConsumerGroup) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			err := c.cg.Consume(ctx, c.topics, c.handler)
			if err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) || errors.Is(err, context.Canceled) {
					c.logger.Info("消费循环已停止", zap.String("group_id", c.groupID), zap.Error(err))
					return
				}
				c.logger.Error("Consume 出错，稍后重试", zap.String("group_id", c.groupID), zap.Error(err))
				select {
				case <-time.After(c.retryDelay):
				case <-ctx.Done():
					return
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	if r, ok := c.handler.(interface{ Ready() <-chan bool }); ok {
		select {
		case <-r.Ready():
			c.logger.Info("消费者组已就绪", zap.String("group_id", c.groupID))
		case <-ctx.Done():
		}
	}
}

// Close 关闭消费者组并等待消费循环退出。
func (c *ConsumerGroup) Close() error {
	err := c.cg.Close()
	c.wg.Wait()
	if err != nil {
		return fmt.Errorf("关闭 Kafka 消费者组 '%s' 失败: %w", c.groupID, err)
	}
	c.logger.Info("Kafka 消费者组已关闭", zap.String("group_id", c.groupID))
	return nil
}
