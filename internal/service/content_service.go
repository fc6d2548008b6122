package service

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/constants"
	"github.com/Xushengqwer/post_admin/internal/models"
	"go.uber.org/zap"
)

// ContentAPI 博客后台的文章/标签写接口，由 contentapi.Client 实现。
type ContentAPI interface {
	GetContent(ctx context.Context, ctntNo int64) (*models.Content, error)
	CreateContent(ctx context.Context, in models.ContentInput) (*models.Content, error)
	UpdateContent(ctx context.Context, in models.ContentInput) (*models.Content, error)
	CreateTag(ctx context.Context, name string) (*models.Tag, error)
	UpdateTag(ctx context.Context, tagNo int64, name string) (*models.Tag, error)
}

// ContentService 文章详情与编辑、标签编辑。列表与删除走视图会话。
type ContentService struct {
	api    ContentAPI
	logger *core.ZapLogger
}

func NewContentService(api ContentAPI, logger *core.ZapLogger) *ContentService {
	if logger == nil {
		panic("NewContentService: logger 不能为 nil")
	}
	if api == nil {
		logger.Fatal("NewContentService: ContentAPI 不能为 nil")
	}
	return &ContentService{api: api, logger: logger}
}

func (s *ContentService) GetContent(ctx context.Context, ctntNo int64) (*models.Content, error) {
	if ctntNo <= 0 {
		return nil, ErrMissingContentID
	}
	return s.api.GetContent(ctx, ctntNo)
}

func (s *ContentService) CreateContent(ctx context.Context, in models.ContentInput) (*models.Content, error) {
	in, err := normalizeContent(in)
	if err != nil {
		return nil, err
	}
	in.CtntNo = 0
	created, err := s.api.CreateContent(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("文章已创建", zap.Int64("ctnt_no", created.CtntNo))
	return created, nil
}

func (s *ContentService) UpdateContent(ctx context.Context, in models.ContentInput) (*models.Content, error) {
	if in.CtntNo <= 0 {
		return nil, ErrMissingContentID
	}
	in, err := normalizeContent(in)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateContent(ctx, in)
}

func (s *ContentService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}
	return s.api.CreateTag(ctx, name)
}

func (s *ContentService) UpdateTag(ctx context.Context, tagNo int64, name string) (*models.Tag, error) {
	name, err := normalizeTagName(name)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateTag(ctx, tagNo, name)
}

func normalizeContent(in models.ContentInput) (models.ContentInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		return in, ErrInvalidContent
	}
	in.SubTitle = strings.TrimSpace(in.SubTitle)
	if in.SubTitle == "" {
		in.SubTitle = deriveSubTitle(in.Content)
	}
	// 后台只认 tagNo，名称不随请求发出
	seen := make(map[int64]struct{}, len(in.Tags))
	tags := make([]models.TagRef, 0, len(in.Tags))
	for _, t := range in.Tags {
		if t.TagNo <= 0 {
			continue
		}
		if _, dup := seen[t.TagNo]; dup {
			continue
		}
		seen[t.TagNo] = struct{}{}
		tags = append(tags, models.TagRef{TagNo: t.TagNo})
	}
	in.Tags = tags
	return in, nil
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// deriveSubTitle 去掉 HTML 标签、合并空白后取前 100 个字符。
func deriveSubTitle(body string) string {
	text := strings.Join(strings.Fields(htmlTagPattern.ReplaceAllString(body, " ")), " ")
	if utf8.RuneCountInString(text) <= constants.SubTitleMaxLength {
		return text
	}
	return string([]rune(text)[:constants.SubTitleMaxLength])
}

// normalizeTagName 去空格，长度按字符计。
func normalizeTagName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > constants.TagNameMaxLength {
		return "", ErrInvalidTagName
	}
	return name, nil
}
