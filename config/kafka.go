package config

import "time"

// ConsumerGroupConfig Sarama 消费者组的会话与位移设置。
type ConsumerGroupConfig struct {
	SessionTimeoutMs int    `mapstructure:"sessionTimeoutMs" default:"30000"` // 会话超时（毫秒）
	AutoOffsetReset  string `mapstructure:"autoOffsetReset" default:"latest"` // "latest" 或 "earliest"
}

// ProducerConfig 同步生产者配置，审计事件和 DLQ 共用。
type ProducerConfig struct {
	Acks           string        `mapstructure:"acks" default:"all"` // "all", "1", "0"
	RequestTimeout time.Duration `mapstructure:"requestTimeout" default:"10s"`
}

// KafkaConfig 内容事件相关的全部 kafka 配置。
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	GroupID string   `mapstructure:"groupId"`

	// 内容新增/更新事件，索引同步消费者订阅
	ContentUpsertTopic string `mapstructure:"contentUpsertTopic"`
	// 内容删除事件，控制台确认删除后发布，索引同步消费者同样订阅
	ContentDeleteTopic string `mapstructure:"contentDeleteTopic"`
	DLQTopic           string `mapstructure:"dlqTopic"`

	// IndexerEnabled 为 true 时在本进程内启动索引同步消费者组（需要同时开启 ES）。
	IndexerEnabled bool `mapstructure:"indexerEnabled"`

	KafkaVersion     string              `mapstructure:"kafkaVersion" default:"2.8.0"`
	MaxRetryAttempts uint64              `mapstructure:"maxRetryAttempts" default:"3"`
	ConsumerGroup    ConsumerGroupConfig `mapstructure:"consumerGroup"`
	Producer         ProducerConfig      `mapstructure:"producer"`
}
