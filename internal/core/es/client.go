package es

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/config"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// ESClient 初始化完成的客户端与索引配置。
type ESClient struct {
	Client           *elasticsearch.Client
	ContentIndex     config.IndexSpecificConfig
	SearchTermsIndex config.IndexSpecificConfig
}

// contentIndexMapping 内容索引。字段名与博客后台 API 的 Content 一致。
func contentIndexMapping(analyzer string) func(shards, replicas int) string {
	return func(shards, replicas int) string {
		return fmt.Sprintf(`{
  "settings": {"number_of_shards": %d, "number_of_replicas": %d},
  "mappings": {
    "properties": {
      "ctntNo":  {"type": "long"},
      "title":   {"type": "text", "analyzer": %q, "fields": {"keyword": {"type": "keyword", "ignore_above": 256}}},
      "content": {"type": "text", "analyzer": %q},
      "inpUser": {"type": "keyword"},
      "tags":    {"type": "keyword"},
      "inpDttm": {"type": "date"},
      "updDttm": {"type": "date"}
    }
  }
}`, shards, replicas, analyzer, analyzer)
	}
}

func searchTermsIndexMapping(shards, replicas int) string {
	return fmt.Sprintf(`{
  "settings": {"number_of_shards": %d, "number_of_replicas": %d},
  "mappings": {
    "properties": {
      "term": {"type": "keyword"},
      "count": {"type": "long"},
      "last_searched_at": {"type": "date"}
    }
  }
}`, shards, replicas)
}

// EnsureIndex 索引不存在时按 mapping 创建。
func EnsureIndex(ctx context.Context, client *elasticsearch.Client, indexCfg config.IndexSpecificConfig,
	mapping func(shards, replicas int) string, logger *core.ZapLogger) error {
	if indexCfg.Name == "" {
		return fmt.Errorf("索引名称未配置")
	}
	shards, replicas := indexCfg.NumberOfShards, indexCfg.NumberOfReplicas
	if shards <= 0 {
		shards = 1
	}
	if replicas < 0 {
		return fmt.Errorf("索引 '%s' 副本数无效: %d", indexCfg.Name, replicas)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	existsRes, err := client.Indices.Exists([]string{indexCfg.Name}, client.Indices.Exists.WithContext(checkCtx))
	if err != nil {
		return fmt.Errorf("检查索引 '%s' 是否存在失败: %w", indexCfg.Name, err)
	}
	defer existsRes.Body.Close()

	switch {
	case existsRes.StatusCode == http.StatusNotFound:
		logger.Warn("索引不存在，开始创建",
			zap.String("index_name", indexCfg.Name),
			zap.Int("shards", shards),
			zap.Int("replicas", replicas),
		)
		createCtx, createCancel := context.WithTimeout(ctx, 10*time.Second)
		defer createCancel()
		req := esapi.IndicesCreateRequest{
			Index: indexCfg.Name,
			Body:  strings.NewReader(mapping(shards, replicas)),
		}
		res, err := req.Do(createCtx, client)
		if err != nil {
			return fmt.Errorf("发送创建索引 '%s' 请求失败: %w", indexCfg.Name, err)
		}
		defer res.Body.Close()
		if res.IsError() {
			body, _ := io.ReadAll(res.Body)
			logger.Error("创建索引失败",
				zap.String("index_name", indexCfg.Name),
				zap.String("status", res.Status()),
				zap.ByteString("response", body),
			)
			return fmt.Errorf("创建索引 '%s' 失败, 状态码: %s", indexCfg.Name, res.Status())
		}
		logger.Info("索引创建成功", zap.String("index_name", indexCfg.Name))
	case existsRes.IsError():
		return fmt.Errorf("检查索引 '%s' 存在性时出错: %s", indexCfg.Name, existsRes.Status())
	default:
		logger.Info("索引已存在", zap.String("index_name", indexCfg.Name))
	}
	return nil
}

// NewESClient 创建客户端，Ping 通过后确保内容索引与搜索词索引存在。
func NewESClient(ctx context.Context, cfg config.ESConfig, logger *core.ZapLogger, transport http.RoundTripper) (*ESClient, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 Elasticsearch 客户端失败: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pingRes, err := client.Ping(client.Ping.WithContext(pingCtx))
	if err != nil {
		return nil, fmt.Errorf("ping Elasticsearch 失败: %w", err)
	}
	defer pingRes.Body.Close()
	if pingRes.IsError() {
		return nil, fmt.Errorf("elasticsearch Ping 不成功: %s", pingRes.Status())
	}
	logger.Info("Elasticsearch 连接成功", zap.Strings("addresses", cfg.Addresses))

	analyzer := cfg.Analyzer
	if analyzer == "" {
		analyzer = "standard"
	}
	if err := EnsureIndex(ctx, client, cfg.ContentIndex, contentIndexMapping(analyzer), logger); err != nil {
		return nil, err
	}
	if err := EnsureIndex(ctx, client, cfg.SearchTermsIndex, searchTermsIndexMapping, logger); err != nil {
		return nil, err
	}

	return &ESClient{
		Client:           client,
		ContentIndex:     cfg.ContentIndex,
		SearchTermsIndex: cfg.SearchTermsIndex,
	}, nil
}
