package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentAPI struct {
	lastInput models.ContentInput
	lastTag   string
}

func (f *fakeContentAPI) GetContent(_ context.Context, ctntNo int64) (*models.Content, error) {
	return &models.Content{CtntNo: ctntNo}, nil
}

func (f *fakeContentAPI) CreateContent(_ context.Context, in models.ContentInput) (*models.Content, error) {
	f.lastInput = in
	return &models.Content{CtntNo: 100, Title: in.Title}, nil
}

func (f *fakeContentAPI) UpdateContent(_ context.Context, in models.ContentInput) (*models.Content, error) {
	f.lastInput = in
	return &models.Content{CtntNo: in.CtntNo, Title: in.Title}, nil
}

func (f *fakeContentAPI) CreateTag(_ context.Context, name string) (*models.Tag, error) {
	f.lastTag = name
	return &models.Tag{TagNo: 1, TagName: name}, nil
}

func (f *fakeContentAPI) UpdateTag(_ context.Context, tagNo int64, name string) (*models.Tag, error) {
	f.lastTag = name
	return &models.Tag{TagNo: tagNo, TagName: name}, nil
}

func newTestContentService(t *testing.T) (*ContentService, *fakeContentAPI) {
	api := &fakeContentAPI{}
	return NewContentService(api, newTestLogger(t)), api
}

func TestContentService_CreateContent(t *testing.T) {
	svc, api := newTestContentService(t)

	_, err := svc.CreateContent(context.Background(), models.ContentInput{Title: "  ", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidContent)

	got, err := svc.CreateContent(context.Background(), models.ContentInput{
		CtntNo: 9, Title: " Go 并发 ", Content: "正文",
		Tags: []models.TagRef{{TagNo: 1, TagName: "go"}, {TagNo: 0}, {TagNo: 3}, {TagNo: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.CtntNo)
	assert.Equal(t, "Go 并发", api.lastInput.Title)
	assert.Equal(t, int64(0), api.lastInput.CtntNo)
	assert.Equal(t, []models.TagRef{{TagNo: 1}, {TagNo: 3}}, api.lastInput.Tags)
	assert.Equal(t, "正文", api.lastInput.SubTitle)
}

func TestContentService_SubTitle(t *testing.T) {
	long := strings.Repeat("字", 120)

	tests := []struct {
		name     string
		subTitle string
		body     string
		want     string
	}{
		{"已填写的副标题保留", "  手写副标题 ", "<p>正文</p>", "手写副标题"},
		{"去掉 HTML 标签", "", "<h1>标题</h1><p>第一段</p>", "标题 第一段"},
		{"合并空白", "", "<p>a\n\n  b\t c</p>", "a b c"},
		{"按字符截断到 100", "", "<p>" + long + "</p>", strings.Repeat("字", 100)},
		{"只有标签时为空", "", "<img src=\"x.png\"/>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api := newTestContentService(t)
			_, err := svc.UpdateContent(context.Background(), models.ContentInput{
				CtntNo: 5, Title: "标题", SubTitle: tt.subTitle, Content: tt.body,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, api.lastInput.SubTitle)
		})
	}
}

func TestContentService_UpdateRequiresID(t *testing.T) {
	svc, _ := newTestContentService(t)
	_, err := svc.UpdateContent(context.Background(), models.ContentInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrMissingContentID)

	_, err = svc.GetContent(context.Background(), 0)
	assert.ErrorIs(t, err, ErrMissingContentID)
}

func TestContentService_TagNames(t *testing.T) {
	svc, api := newTestContentService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"去除首尾空格", "  golang ", "golang", false},
		{"空白名称", "   ", "", true},
		{"15 个中文字符", strings.Repeat("标", 15), strings.Repeat("标", 15), false},
		{"超过 15 个字符", strings.Repeat("a", 16), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTag(ctx, tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTagName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, api.lastTag)
		})
	}

	tag, err := svc.UpdateTag(ctx, 3, " redis ")
	require.NoError(t, err)
	assert.Equal(t, "redis", tag.TagName)
}
