package contentapi

import (
	"context"

	"github.com/Xushengqwer/post_admin/internal/listquery"
	"github.com/Xushengqwer/post_admin/internal/models"
)

// ContentProvider 文章列表数据源。
type ContentProvider struct {
	client *Client
}

func NewContentProvider(client *Client) *ContentProvider {
	return &ContentProvider{client: client}
}

func (p *ContentProvider) ListPage(ctx context.Context, page int) (listquery.Envelope, error) {
	data, err := p.client.ListContents(ctx, page)
	return listquery.Envelope(data), err
}

func (p *ContentProvider) SearchPage(ctx context.Context, searchType models.SearchType, query string, page int) (listquery.Envelope, error) {
	data, err := p.client.SearchContents(ctx, searchType, query, page)
	return listquery.Envelope(data), err
}

func (p *ContentProvider) DeleteItem(ctx context.Context, id int64) error {
	return p.client.DeleteContent(ctx, id)
}

// TagProvider 标签列表数据源。后台没有标签搜索接口。
type TagProvider struct {
	client *Client
}

func NewTagProvider(client *Client) *TagProvider {
	return &TagProvider{client: client}
}

func (p *TagProvider) ListPage(ctx context.Context, page int) (listquery.Envelope, error) {
	data, err := p.client.ListTags(ctx, page)
	return listquery.Envelope(data), err
}

func (p *TagProvider) SearchPage(context.Context, models.SearchType, string, int) (listquery.Envelope, error) {
	return nil, ErrSearchUnsupported
}

func (p *TagProvider) DeleteItem(ctx context.Context, id int64) error {
	return p.client.DeleteTag(ctx, id)
}
