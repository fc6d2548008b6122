package contentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Xushengqwer/post_admin/internal/models"
)

const contentsPath = "/v1/contents"

// ListContents GET /v1/contents?page=N，返回分页负载原文。
func (c *Client) ListContents(ctx context.Context, page int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, contentsPath, url.Values{"page": {strconv.Itoa(page)}}, nil)
}

// SearchContents GET /v1/contents/search?type=T&param=Q&page=N
func (c *Client) SearchContents(ctx context.Context, searchType models.SearchType, query string, page int) (json.RawMessage, error) {
	q := url.Values{
		"type":  {string(searchType)},
		"param": {query},
		"page":  {strconv.Itoa(page)},
	}
	return c.do(ctx, http.MethodGet, contentsPath+"/search", q, nil)
}

func (c *Client) GetContent(ctx context.Context, ctntNo int64) (*models.Content, error) {
	data, err := c.do(ctx, http.MethodGet, contentPath(ctntNo), nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Content](data, "文章")
}

func (c *Client) CreateContent(ctx context.Context, in models.ContentInput) (*models.Content, error) {
	data, err := c.do(ctx, http.MethodPost, contentsPath, nil, in)
	if err != nil {
		return nil, err
	}
	return decode[models.Content](data, "文章")
}

// UpdateContent PUT /v1/contents，请求体里带 ctntNo。
func (c *Client) UpdateContent(ctx context.Context, in models.ContentInput) (*models.Content, error) {
	data, err := c.do(ctx, http.MethodPut, contentsPath, nil, in)
	if err != nil {
		return nil, err
	}
	return decode[models.Content](data, "文章")
}

func (c *Client) DeleteContent(ctx context.Context, ctntNo int64) error {
	_, err := c.do(ctx, http.MethodDelete, contentPath(ctntNo), nil, nil)
	return err
}

func contentPath(ctntNo int64) string {
	return contentsPath + "/" + strconv.FormatInt(ctntNo, 10)
}

// decode 解析 data 字段；后台对写操作可能只返回空 data，此时返回零值记录。
func decode[T any](data json.RawMessage, what string) (*T, error) {
	var out T
	if len(data) == 0 || string(data) == "null" {
		return &out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("解析%s数据失败: %w", what, err)
	}
	return &out, nil
}
