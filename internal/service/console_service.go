package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/internal/listquery"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeletionAuditor 文章确认删除成功后的通知。
type DeletionAuditor interface {
	PublishContentDeleted(ctx context.Context, ctntNo int64, viewID string) error
}

// SearchTermRecorder 记录用户提交的搜索词。
type SearchTermRecorder interface {
	LogSearchQuery(ctx context.Context, query string) error
}

var defaultViewPaths = map[models.ViewKind]string{
	models.ViewKindContents: "/admin/contents",
	models.ViewKindTags:     "/admin/tags",
}

type ConsoleOption func(*ConsoleService)

func WithDeletionAuditor(a DeletionAuditor) ConsoleOption {
	return func(s *ConsoleService) { s.auditor = a }
}

func WithSearchTermRecorder(r SearchTermRecorder) ConsoleOption {
	return func(s *ConsoleService) { s.terms = r }
}

// ConsoleService 管理视图会话，把 HTTP 操作转交给各会话的控制器。
type ConsoleService struct {
	providers map[models.ViewKind]listquery.Provider
	store     *SessionStore
	auditor   DeletionAuditor
	terms     SearchTermRecorder
	logger    *core.ZapLogger
}

func NewConsoleService(providers map[models.ViewKind]listquery.Provider, store *SessionStore,
	logger *core.ZapLogger, opts ...ConsoleOption) *ConsoleService {
	if logger == nil {
		panic("NewConsoleService: logger 不能为 nil")
	}
	if store == nil || len(providers) == 0 {
		logger.Fatal("NewConsoleService: 会话存储与列表数据源不能为空")
	}
	s := &ConsoleService{providers: providers, store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenView 打开一个列表视图，按 URL 中的 q/type 完成初始化。rawURL 为空时使用该类型的默认路径。
func (s *ConsoleService) OpenView(ctx context.Context, kind models.ViewKind, rawURL string) (models.ViewResponse, error) {
	provider, ok := s.providers[kind]
	if !ok {
		return models.ViewResponse{}, fmt.Errorf("%w: %q", ErrUnknownViewKind, kind)
	}
	if strings.TrimSpace(rawURL) == "" {
		rawURL = defaultViewPaths[kind]
	}
	nav, err := listquery.NewURLNavigation(rawURL)
	if err != nil {
		return models.ViewResponse{}, err
	}

	id := uuid.NewString()
	if kind == models.ViewKindContents && s.auditor != nil {
		provider = &auditingProvider{Provider: provider, auditor: s.auditor, viewID: id, logger: s.logger}
	}
	vs := &viewSession{
		id:         id,
		kind:       kind,
		nav:        nav,
		controller: listquery.NewController(provider, nav, s.logger.Logger().With(zap.String("view_id", id))),
	}
	if err := s.store.add(vs); err != nil {
		return models.ViewResponse{}, err
	}

	state := vs.controller.Start(ctx)
	s.recordSearchTerm(nav.Current().Query)
	s.logger.Info("打开视图会话",
		zap.String("view_id", id),
		zap.String("kind", string(kind)),
		zap.String("url", nav.URL()),
	)
	return vs.response(state), nil
}

// HeaderSearch 头部搜索框：以 q 和 TITLE_CONTENT 打开文章列表视图。q 为空时不跳转。
func (s *ConsoleService) HeaderSearch(ctx context.Context, q string) (models.ViewResponse, error) {
	target, ok := listquery.BuildSearchURL(defaultViewPaths[models.ViewKindContents], q)
	if !ok {
		return models.ViewResponse{}, ErrEmptySearch
	}
	return s.OpenView(ctx, models.ViewKindContents, target)
}

func (s *ConsoleService) GetView(id string) (models.ViewResponse, error) {
	vs, err := s.store.get(id)
	if err != nil {
		return models.ViewResponse{}, err
	}
	return vs.response(vs.controller.State()), nil
}

func (s *ConsoleService) SubmitSearch(ctx context.Context, id string, searchType models.SearchType, query string) (models.ViewResponse, error) {
	vs, err := s.store.get(id)
	if err != nil {
		return models.ViewResponse{}, err
	}
	state := vs.controller.SubmitSearch(ctx, searchType, query)
	s.recordSearchTerm(query)
	return vs.response(state), nil
}

func (s *ConsoleService) ClearSearch(ctx context.Context, id string) (models.ViewResponse, error) {
	vs, err := s.store.get(id)
	if err != nil {
		return models.ViewResponse{}, err
	}
	return vs.response(vs.controller.Clear(ctx)), nil
}

func (s *ConsoleService) ChangePage(ctx context.Context, id string, page int) (models.ViewResponse, error) {
	vs, err := s.store.get(id)
	if err != nil {
		return models.ViewResponse{}, err
	}
	return vs.response(vs.controller.ChangePage(ctx, page)), nil
}

// Navigate 替换会话地址中的 q/type，控制器通过订阅重新初始化。
func (s *ConsoleService) Navigate(ctx context.Context, id string, q, searchType string) (models.ViewResponse, error) {
	vs, err := s.store.get(id)
	if err != nil {
		return models.ViewResponse{}, err
	}
	if err := vs.nav.Push(ctx, listquery.NavigationParams{Query: q, Type: searchType}); err != nil {
		return models.ViewResponse{}, err
	}
	s.recordSearchTerm(q)
	return vs.response(vs.controller.State()), nil
}

// DeleteItem confirm 即用户对确认框的回答。删除失败时提示文本放在 Alert 中返回。
func (s *ConsoleService) DeleteItem(ctx context.Context, id string, itemID int64, confirm bool) (models.ViewResponse, error) {
	vs, err := s.store.get(id)
	if err != nil {
		return models.ViewResponse{}, err
	}
	prompter := &listquery.StaticPrompter{Answer: confirm}
	resp := vs.response(vs.controller.Delete(ctx, itemID, prompter))
	resp.Alert = prompter.LastAlert
	return resp, nil
}

func (s *ConsoleService) CloseView(id string) error {
	if !s.store.remove(id) {
		return ErrViewNotFound
	}
	return nil
}

// recordSearchTerm 异步记录，不影响请求本身。
func (s *ConsoleService) recordSearchTerm(query string) {
	if s.terms == nil || strings.TrimSpace(query) == "" {
		return
	}
	go func(q string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.terms.LogSearchQuery(ctx, q); err != nil {
			s.logger.Warn("异步记录搜索词失败", zap.String("query", q), zap.Error(err))
		}
	}(query)
}

// auditingProvider 删除成功后发布审计事件；发布失败只记录日志。
type auditingProvider struct {
	listquery.Provider
	auditor DeletionAuditor
	viewID  string
	logger  *core.ZapLogger
}

func (p *auditingProvider) DeleteItem(ctx context.Context, id int64) error {
	if err := p.Provider.DeleteItem(ctx, id); err != nil {
		return err
	}
	if err := p.auditor.PublishContentDeleted(ctx, id, p.viewID); err != nil {
		p.logger.Error("发布内容删除事件失败", zap.Int64("ctnt_no", id), zap.String("view_id", p.viewID), zap.Error(err))
	}
	return nil
}
