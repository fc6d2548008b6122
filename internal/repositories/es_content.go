package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/internal/listquery"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// ContentRepository 内容索引的读写。
type ContentRepository interface {
	// IndexContent 创建或覆盖一篇文章。
	IndexContent(ctx context.Context, doc models.ContentDocument) error
	// DeleteContent 删除文章；文档不存在视为成功。
	DeleteContent(ctx context.Context, ctntNo int64) error
	// SearchContents 返回一页结果，负载形如 {"content":[...],"totalElements":N,"page":P}。
	SearchContents(ctx context.Context, req models.PageRequest) (listquery.Envelope, error)
}

type esContentRepository struct {
	client    *elasticsearch.Client
	indexName string
	logger    *core.ZapLogger
}

// NewESContentRepository 创建内容索引仓库，依赖缺失时直接终止。
func NewESContentRepository(client *elasticsearch.Client, indexName string, logger *core.ZapLogger) ContentRepository {
	if logger == nil {
		panic("创建 esContentRepository 失败：Logger 实例不能为 nil")
	}
	if client == nil {
		logger.Fatal("创建 esContentRepository 失败：Elasticsearch 客户端不能为 nil")
	}
	if indexName == "" {
		logger.Fatal("创建 esContentRepository 失败：索引名称不能为空")
	}
	return &esContentRepository{client: client, indexName: indexName, logger: logger}
}

// logAndWrapESError 记录 ES 错误响应并包装成 error。
func (r *esContentRepository) logAndWrapESError(res *esapi.Response, op string, id interface{}) error {
	body, _ := io.ReadAll(res.Body)
	r.logger.Error("Elasticsearch 内容索引操作失败",
		zap.String("operation", op),
		zap.Any("context_identifier", id),
		zap.String("es_status", res.Status()),
		zap.ByteString("es_error_response_body", body),
	)
	return fmt.Errorf("Elasticsearch %s 失败，状态码: %s", op, res.Status())
}

func (r *esContentRepository) IndexContent(ctx context.Context, doc models.ContentDocument) error {
	docID := strconv.FormatInt(doc.CtntNo, 10)
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("序列化文章文档 (ID: %s) 失败: %w", docID, err)
	}

	req := esapi.IndexRequest{
		Index:      r.indexName,
		DocumentID: docID,
		Body:       bytes.NewReader(payload),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("Elasticsearch 索引请求 (ID: %s) 失败: %w", docID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return r.logAndWrapESError(res, "索引文章", docID)
	}
	r.logger.Debug("文章已写入索引", zap.String("doc_id", docID), zap.String("es_status", res.Status()))
	return nil
}

func (r *esContentRepository) DeleteContent(ctx context.Context, ctntNo int64) error {
	docID := strconv.FormatInt(ctntNo, 10)
	// wait_for: 删除后紧接着的列表刷新要能看到结果
	req := esapi.DeleteRequest{
		Index:      r.indexName,
		DocumentID: docID,
		Refresh:    "wait_for",
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("Elasticsearch 删除请求 (ID: %s) 失败: %w", docID, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		r.logger.Warn("要删除的文章在索引中不存在，按成功处理", zap.String("doc_id", docID))
		return nil
	}
	if res.IsError() {
		return r.logAndWrapESError(res, "删除文章", docID)
	}
	return nil
}

type contentPage struct {
	Content       []models.ContentDocument `json:"content"`
	TotalElements int64                    `json:"totalElements"`
	Page          int                      `json:"page"`
}

func (r *esContentRepository) SearchContents(ctx context.Context, req models.PageRequest) (listquery.Envelope, error) {
	body, err := buildSearchQuery(req)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("内容索引查询", zap.ByteString("dsl_query", body))

	searchReq := esapi.SearchRequest{
		Index: []string{r.indexName},
		Body:  bytes.NewReader(body),
	}
	res, err := searchReq.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("Elasticsearch 搜索请求失败: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, r.logAndWrapESError(res, "搜索文章", req)
	}

	var esResponse struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.ContentDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResponse); err != nil {
		return nil, fmt.Errorf("解码 Elasticsearch 搜索响应失败: %w", err)
	}

	page := contentPage{
		Content:       make([]models.ContentDocument, 0, len(esResponse.Hits.Hits)),
		TotalElements: esResponse.Hits.Total.Value,
		Page:          req.Page,
	}
	for _, hit := range esResponse.Hits.Hits {
		page.Content = append(page.Content, hit.Source)
	}
	out, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("序列化搜索结果失败: %w", err)
	}
	return listquery.Envelope(out), nil
}

// ContentIndexProvider 以内容索引作为列表数据源。
type ContentIndexProvider struct {
	repo ContentRepository
}

func NewContentIndexProvider(repo ContentRepository) *ContentIndexProvider {
	return &ContentIndexProvider{repo: repo}
}

func (p *ContentIndexProvider) ListPage(ctx context.Context, page int) (listquery.Envelope, error) {
	return p.repo.SearchContents(ctx, models.PageRequest{Page: page})
}

func (p *ContentIndexProvider) SearchPage(ctx context.Context, searchType models.SearchType, query string, page int) (listquery.Envelope, error) {
	return p.repo.SearchContents(ctx, models.PageRequest{Page: page, SearchType: searchType, Query: query})
}

func (p *ContentIndexProvider) DeleteItem(ctx context.Context, id int64) error {
	return p.repo.DeleteContent(ctx, id)
}
