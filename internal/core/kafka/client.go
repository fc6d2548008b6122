package kafka

import (
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/config"
	"go.uber.org/zap"
)

// ConfigureSarama 把应用的 KafkaConfig 转换为消费者与生产者共用的 Sarama 配置。
// 参数:
//   - cfg: 应用层 kafka 配置。
//   - logger: 日志器。
//
// 返回值:
//   - *sarama.Config: 配置好的 Sarama 配置。
//   - error: Kafka 版本号无法解析时返回。
func ConfigureSarama(cfg config.KafkaConfig, logger *core.ZapLogger) (*sarama.Config, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = "post-admin-console"

	if cfg.KafkaVersion != "" {
		version, err := sarama.ParseKafkaVersion(cfg.KafkaVersion)
		if err != nil {
			return nil, fmt.Errorf("无效的 Kafka 版本配置 '%s': %w", cfg.KafkaVersion, err)
		}
		saramaCfg.Version = version
	} else {
		logger.Warn("未指定 Kafka 版本，使用 Sarama 默认版本")
	}

	// 消费者: 轮询分配，手动提交位移
	saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	if cfg.ConsumerGroup.AutoOffsetReset == "earliest" {
		saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaCfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	saramaCfg.Consumer.Group.Session.Timeout = 30 * time.Second
	if cfg.ConsumerGroup.SessionTimeoutMs > 0 {
		saramaCfg.Consumer.Group.Session.Timeout = time.Duration(cfg.ConsumerGroup.SessionTimeoutMs) * time.Millisecond
	}
	saramaCfg.Consumer.Offsets.AutoCommit.Enable = false

	// 生产者: SyncProducer 需要 Return.Successes
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Return.Errors = true
	saramaCfg.Producer.Timeout = 10 * time.Second
	if cfg.Producer.RequestTimeout > 0 {
		saramaCfg.Producer.Timeout = cfg.Producer.RequestTimeout
	}
	saramaCfg.Producer.RequiredAcks = parseAcks(cfg.Producer.Acks, logger)

	logger.Info("Sarama 配置完成",
		zap.String("kafka_version", saramaCfg.Version.String()),
		zap.String("auto_offset_reset", cfg.ConsumerGroup.AutoOffsetReset),
		zap.Duration("session_timeout", saramaCfg.Consumer.Group.Session.Timeout),
		zap.Int16("required_acks", int16(saramaCfg.Producer.RequiredAcks)),
	)
	return saramaCfg, nil
}

func parseAcks(acks string, logger *core.ZapLogger) sarama.RequiredAcks {
	switch acks {
	case "all", "-1", "":
		return sarama.WaitForAll
	case "1", "leader":
		return sarama.WaitForLocal
	case "0", "none":
		return sarama.NoResponse
	default:
		logger.Warn("无效的生产者 acks 配置，使用 all", zap.String("configured_acks", acks))
		return sarama.WaitForAll
	}
}
