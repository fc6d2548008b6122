package listquery

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Xushengqwer/post_admin/internal/models"
	"go.uber.org/zap"
)

const (
	ConfirmDeleteMessage = "确定要删除吗?"
	DeleteFailedPrefix   = "删除失败: "
)

// fetchDescriptor 一次拉取的完整参数。
type fetchDescriptor struct {
	page       int
	searchType models.SearchType
	query      string // 已去空格，空串表示浏览
}

func (d fetchDescriptor) isSearch() bool { return d.query != "" }

// Controller 协调导航参数、视图状态与远端数据源。
//
// 所有操作都可以并发调用: 状态修改在互斥锁内完成，数据源调用期间不持锁。
// 每次拉取分配递增的请求序号，只有最新请求的结果会写回状态，过期结果整体丢弃。
type Controller struct {
	provider Provider
	nav      NavigationSurface
	logger   *zap.Logger

	mu      sync.Mutex
	state   models.ViewState
	seq     uint64
	lastNav *NavigationParams
	cancel  func()
}

// NewController 创建控制器。nav 可以为 nil，此时 Start 等价于以空参数初始化。
func NewController(provider Provider, nav NavigationSurface, logger *zap.Logger) *Controller {
	if provider == nil {
		panic("NewController: provider 不能为 nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		provider: provider,
		nav:      nav,
		logger:   logger,
		state:    models.NewViewState(),
	}
}

// Start 读取导航地址完成首次初始化，并订阅之后的地址变化。
func (c *Controller) Start(ctx context.Context) models.ViewState {
	if c.nav == nil {
		return c.Initialize(ctx, NavigationParams{})
	}
	cancel := c.nav.Subscribe(func(ctx context.Context, p NavigationParams) {
		c.Initialize(ctx, p)
	})
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	return c.Initialize(ctx, c.nav.Current())
}

// Stop 取消导航订阅，可重复调用。
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// State 当前状态快照。
func (c *Controller) State() models.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Initialize 按导航参数初始化: q 非空时以 type（缺省或无法识别时为 TITLE_CONTENT）搜索第 1 页，
// 否则浏览第 1 页。同一组参数只处理一次。
//
// lastNav 在拉取之前记下，所以拉取失败后用同一组参数再次导航不会重试；
// ChangePage、SubmitSearch、Clear 仍然会重新请求。
func (c *Controller) Initialize(ctx context.Context, params NavigationParams) models.ViewState {
	c.mu.Lock()
	if c.lastNav != nil && *c.lastNav == params {
		defer c.mu.Unlock()
		return c.state.Clone()
	}
	p := params
	c.lastNav = &p

	d := fetchDescriptor{page: 1, query: strings.TrimSpace(params.Query)}
	c.state.CurrentPage = 1
	c.state.SearchQuery = d.query
	if d.isSearch() {
		d.searchType = models.SearchTypeOrDefault(params.Type)
		c.state.SearchType = d.searchType
	}
	return c.fetchLocked(ctx, d)
}

// SubmitSearch 以新条件搜索第 1 页；query 去空格后为空时等同 Clear。
func (c *Controller) SubmitSearch(ctx context.Context, searchType models.SearchType, query string) models.ViewState {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Clear(ctx)
	}
	if !searchType.Valid() {
		searchType = models.DefaultSearchType
	}

	c.mu.Lock()
	c.state.SearchType = searchType
	c.state.SearchQuery = query
	c.state.CurrentPage = 1
	return c.fetchLocked(ctx, fetchDescriptor{page: 1, searchType: searchType, query: query})
}

// Clear 清空搜索词并浏览第 1 页，搜索类型保持不变。
func (c *Controller) Clear(ctx context.Context) models.ViewState {
	c.mu.Lock()
	c.state.SearchQuery = ""
	c.state.CurrentPage = 1
	return c.fetchLocked(ctx, fetchDescriptor{page: 1})
}

// ChangePage 切换页码，沿用当前搜索条件。页码不做上下限修正。
func (c *Controller) ChangePage(ctx context.Context, page int) models.ViewState {
	c.mu.Lock()
	c.state.CurrentPage = page
	return c.fetchLocked(ctx, c.currentDescriptorLocked())
}

// Delete 先确认，确认后删除并重新拉取当前页。删除失败只提示，不改状态。
func (c *Controller) Delete(ctx context.Context, id int64, prompter Prompter) models.ViewState {
	if prompter == nil || !prompter.Confirm(ctx, ConfirmDeleteMessage) {
		return c.State()
	}

	if err := c.safeDelete(ctx, id); err != nil {
		c.logger.Warn("删除失败", zap.Int64("id", id), zap.Error(err))
		prompter.Alert(ctx, DeleteFailedPrefix+err.Error())
		return c.State()
	}

	c.mu.Lock()
	return c.fetchLocked(ctx, c.currentDescriptorLocked())
}

func (c *Controller) currentDescriptorLocked() fetchDescriptor {
	d := fetchDescriptor{page: c.state.CurrentPage, query: strings.TrimSpace(c.state.SearchQuery)}
	if d.isSearch() {
		d.searchType = c.state.SearchType
	}
	return d
}

// fetchLocked 调用前必须持有 c.mu，返回前释放。
func (c *Controller) fetchLocked(ctx context.Context, d fetchDescriptor) models.ViewState {
	c.seq++
	id := c.seq
	c.state.IsLoading = true
	c.state.ErrorMessage = ""
	c.mu.Unlock()

	env, err := c.invoke(ctx, d)

	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.seq {
		c.logger.Debug("丢弃过期的列表响应",
			zap.Uint64("request_id", id),
			zap.Uint64("latest_id", c.seq),
		)
		return c.state.Clone()
	}
	c.applyLocked(d, env, err)
	return c.state.Clone()
}

func (c *Controller) applyLocked(d fetchDescriptor, env Envelope, err error) {
	defer func() { c.state.IsLoading = false }()

	if err != nil {
		c.logger.Warn("拉取列表失败",
			zap.Int("page", d.page),
			zap.String("search_type", string(d.searchType)),
			zap.String("query", d.query),
			zap.Error(err),
		)
		c.state.ErrorMessage = err.Error()
		return
	}
	page := Normalize(env)
	c.state.Items = page.Items
	c.state.TotalCount = page.TotalCount
	c.state.TotalPages = page.TotalPages
}

// invoke 调用数据源，数据源 panic 时转换为错误。
func (c *Controller) invoke(ctx context.Context, d fetchDescriptor) (env Envelope, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("列表数据源异常: %v", r)
		}
	}()
	if d.isSearch() {
		return c.provider.SearchPage(ctx, d.searchType, d.query, d.page)
	}
	return c.provider.ListPage(ctx, d.page)
}

func (c *Controller) safeDelete(ctx context.Context, id int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("删除数据源异常: %v", r)
		}
	}()
	return c.provider.DeleteItem(ctx, id)
}
