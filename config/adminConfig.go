package config

import (
	"time"

	commonConfig "github.com/Xushengqwer/go-common/config"
)

// ContentAPIConfig 博客后台 REST API 客户端配置。
type ContentAPIConfig struct {
	BaseURL          string        `mapstructure:"baseUrl" json:"baseUrl" yaml:"baseUrl"`
	Token            string        `mapstructure:"token" json:"token" yaml:"token"` // 请求上下文里没有令牌时使用
	Timeout          time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	MaxRetryAttempts uint64        `mapstructure:"maxRetryAttempts" json:"maxRetryAttempts" yaml:"maxRetryAttempts"`
}

// ProviderConfig 选择内容列表的数据源: "rest" 或 "elasticsearch"。
type ProviderConfig struct {
	Kind string `mapstructure:"kind" json:"kind" yaml:"kind"`
}

// ConsoleConfig 视图会话相关配置。
type ConsoleConfig struct {
	SessionTTL    time.Duration `mapstructure:"sessionTTL" json:"sessionTTL" yaml:"sessionTTL"`
	SweepInterval time.Duration `mapstructure:"sweepInterval" json:"sweepInterval" yaml:"sweepInterval"`
	MaxSessions   int           `mapstructure:"maxSessions" json:"maxSessions" yaml:"maxSessions"`
}

type AdminConsoleConfig struct {
	Server              commonConfig.ServerConfig `mapstructure:"server" json:"server" yaml:"server"`
	ZapConfig           commonConfig.ZapConfig    `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	TracerConfig        commonConfig.TracerConfig `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	ContentAPI          ContentAPIConfig          `mapstructure:"contentApi" json:"contentApi" yaml:"contentApi"`
	Provider            ProviderConfig            `mapstructure:"provider" json:"provider" yaml:"provider"`
	Console             ConsoleConfig             `mapstructure:"console" json:"console" yaml:"console"`
	KafkaConfig         KafkaConfig               `mapstructure:"kafkaConfig" json:"kafkaConfig" yaml:"kafkaConfig"`
	ElasticsearchConfig ESConfig                  `mapstructure:"elasticsearchConfig" json:"elasticsearchConfig" yaml:"elasticsearchConfig"`
}

// ApplyDefaults 为未配置的字段填充默认值。
func (c *AdminConsoleConfig) ApplyDefaults() {
	if c.Server.ListenAddr == "" && c.Server.Port == "" {
		c.Server.Port = "8090"
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = 10 * time.Second
	}
	if c.ContentAPI.BaseURL == "" {
		c.ContentAPI.BaseURL = "http://localhost:8089/admin/api"
	}
	if c.ContentAPI.Timeout <= 0 {
		c.ContentAPI.Timeout = 5 * time.Second
	}
	if c.ContentAPI.MaxRetryAttempts == 0 {
		c.ContentAPI.MaxRetryAttempts = 2
	}
	if c.Provider.Kind == "" {
		c.Provider.Kind = "rest"
	}
	if c.Console.SessionTTL <= 0 {
		c.Console.SessionTTL = 30 * time.Minute
	}
	if c.Console.SweepInterval <= 0 {
		c.Console.SweepInterval = time.Minute
	}
	if c.Console.MaxSessions <= 0 {
		c.Console.MaxSessions = 1000
	}
	if c.ElasticsearchConfig.Analyzer == "" {
		c.ElasticsearchConfig.Analyzer = "standard"
	}
	if c.ElasticsearchConfig.ContentIndex.Name == "" {
		c.ElasticsearchConfig.ContentIndex.Name = "blog_contents"
	}
	if c.ElasticsearchConfig.SearchTermsIndex.Name == "" {
		c.ElasticsearchConfig.SearchTermsIndex.Name = "console_search_terms"
	}
	if c.KafkaConfig.KafkaVersion == "" {
		c.KafkaConfig.KafkaVersion = "2.8.0"
	}
	if c.KafkaConfig.MaxRetryAttempts == 0 {
		c.KafkaConfig.MaxRetryAttempts = 3
	}
}
