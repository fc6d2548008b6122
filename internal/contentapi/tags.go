package contentapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Xushengqwer/post_admin/internal/models"
)

const tagsPath = "/v1/tags"

func (c *Client) ListTags(ctx context.Context, page int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, tagsPath, url.Values{"page": {strconv.Itoa(page)}}, nil)
}

func (c *Client) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	data, err := c.do(ctx, http.MethodPost, tagsPath, nil, models.Tag{TagName: name})
	if err != nil {
		return nil, err
	}
	return decode[models.Tag](data, "标签")
}

func (c *Client) UpdateTag(ctx context.Context, tagNo int64, name string) (*models.Tag, error) {
	data, err := c.do(ctx, http.MethodPut, tagsPath, nil, models.Tag{TagNo: tagNo, TagName: name})
	if err != nil {
		return nil, err
	}
	return decode[models.Tag](data, "标签")
}

func (c *Client) DeleteTag(ctx context.Context, tagNo int64) error {
	_, err := c.do(ctx, http.MethodDelete, tagsPath+"/"+strconv.FormatInt(tagNo, 10), nil, nil)
	return err
}
