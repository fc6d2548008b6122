package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// SearchTermRepository 控制台搜索词统计。
type SearchTermRepository interface {
	IncrementSearchTermCount(ctx context.Context, term string) error
	GetHotSearchTerms(ctx context.Context, limit int) ([]models.HotSearchTerm, error)
}

type esSearchTermRepository struct {
	client    *elasticsearch.Client
	logger    *core.ZapLogger
	indexName string
	now       func() time.Time
}

func NewESSearchTermRepository(client *elasticsearch.Client, logger *core.ZapLogger, indexName string) SearchTermRepository {
	if logger == nil {
		panic("创建 esSearchTermRepository 失败：Logger 实例不能为 nil")
	}
	if client == nil {
		logger.Fatal("创建 esSearchTermRepository 失败：Elasticsearch 客户端不能为 nil")
	}
	if indexName == "" {
		logger.Fatal("创建 esSearchTermRepository 失败：搜索词索引名称不能为空")
	}
	return &esSearchTermRepository{client: client, logger: logger, indexName: indexName, now: time.Now}
}

func (r *esSearchTermRepository) wrapESError(res *esapi.Response, op string) error {
	body, _ := io.ReadAll(res.Body)
	r.logger.Error("Elasticsearch 搜索词统计操作失败",
		zap.String("operation", op),
		zap.String("index_name", r.indexName),
		zap.String("es_status", res.Status()),
		zap.ByteString("es_error_response_body", body),
	)
	return fmt.Errorf("Elasticsearch %s 失败，状态码: %s", op, res.Status())
}

// IncrementSearchTermCount 以搜索词为文档 ID 做 upsert，计数加一。
func (r *esSearchTermRepository) IncrementSearchTermCount(ctx context.Context, term string) error {
	now := r.now().UTC()
	updateBody := map[string]interface{}{
		"script": map[string]interface{}{
			"source": "ctx._source.count += params.inc; ctx._source.last_searched_at = params.now;",
			"lang":   "painless",
			"params": map[string]interface{}{"inc": 1, "now": now},
		},
		"upsert": models.SearchTermStat{Term: term, Count: 1, LastSearchedAt: now},
	}
	payload, err := json.Marshal(updateBody)
	if err != nil {
		return fmt.Errorf("序列化搜索词更新请求 (term: %s) 失败: %w", term, err)
	}

	req := esapi.UpdateRequest{
		Index:           r.indexName,
		DocumentID:      term,
		Body:            bytes.NewReader(payload),
		RetryOnConflict: intPtr(3),
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("Elasticsearch 搜索词更新请求 (term: %s) 失败: %w", term, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return r.wrapESError(res, "更新搜索词计数")
	}
	return nil
}

// GetHotSearchTerms 按计数倒序取前 limit 个搜索词。
func (r *esSearchTermRepository) GetHotSearchTerms(ctx context.Context, limit int) ([]models.HotSearchTerm, error) {
	if limit <= 0 {
		limit = 10
	}
	query, err := json.Marshal(map[string]interface{}{
		"size": limit,
		"sort": []map[string]interface{}{
			{"count": map[string]string{"order": "desc"}},
			{"last_searched_at": map[string]string{"order": "desc"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("序列化热门搜索词查询失败: %w", err)
	}

	searchReq := esapi.SearchRequest{
		Index: []string{r.indexName},
		Body:  bytes.NewReader(query),
	}
	res, err := searchReq.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("Elasticsearch 热门搜索词请求失败: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, r.wrapESError(res, "检索热门搜索词")
	}

	var esResponse struct {
		Hits struct {
			Hits []struct {
				Source models.SearchTermStat `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResponse); err != nil {
		return nil, fmt.Errorf("解码热门搜索词响应失败: %w", err)
	}

	terms := make([]models.HotSearchTerm, 0, len(esResponse.Hits.Hits))
	for _, hit := range esResponse.Hits.Hits {
		terms = append(terms, models.HotSearchTerm{Term: hit.Source.Term, Count: hit.Source.Count})
	}
	return terms, nil
}

func intPtr(v int) *int { return &v }
