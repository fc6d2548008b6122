package config

// IndexSpecificConfig 单个索引的名称与分片设置。
type IndexSpecificConfig struct {
	Name             string `mapstructure:"name" json:"name" yaml:"name"`
	NumberOfShards   int    `mapstructure:"numberOfShards" json:"numberOfShards" yaml:"numberOfShards"`
	NumberOfReplicas int    `mapstructure:"numberOfReplicas" json:"numberOfReplicas" yaml:"numberOfReplicas"`
}

// ESConfig Elasticsearch 连接与索引配置。
// Enabled 为 false 时不创建客户端，内容列表只能走 REST 数据源，热门搜索词功能关闭。
type ESConfig struct {
	Enabled   bool     `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Addresses []string `mapstructure:"addresses" json:"addresses" yaml:"addresses"`
	Username  string   `mapstructure:"username" json:"username" yaml:"username"`
	Password  string   `mapstructure:"password" json:"password" yaml:"password"`

	// Analyzer 文本字段使用的分析器，默认 standard；装了插件的集群可以改成 nori / ik_smart。
	Analyzer string `mapstructure:"analyzer" json:"analyzer" yaml:"analyzer"`

	ContentIndex     IndexSpecificConfig `mapstructure:"contentIndex" json:"contentIndex" yaml:"contentIndex"`
	SearchTermsIndex IndexSpecificConfig `mapstructure:"searchTermsIndex" json:"searchTermsIndex" yaml:"searchTermsIndex"`
}
