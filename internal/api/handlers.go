package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Xushengqwer/gateway/pkg/response"
	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/constants"
	"github.com/Xushengqwer/post_admin/internal/contentapi"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/Xushengqwer/post_admin/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConsoleHandler 控制台 API：列表视图会话、文章/标签编辑、热门搜索词。
type ConsoleHandler struct {
	console  *service.ConsoleService
	contents *service.ContentService
	terms    *service.SearchTermService // 可以为 nil，此时热门搜索词接口返回 503
	logger   *core.ZapLogger
}

// NewConsoleHandler 创建 ConsoleHandler 实例.
//
// 参数:
//   - console: 视图会话服务，不能为 nil。
//   - contents: 文章与标签编辑服务，不能为 nil。
//   - terms: 搜索词统计服务，未启用 Elasticsearch 时传 nil。
//   - logger: 日志实例。
func NewConsoleHandler(console *service.ConsoleService, contents *service.ContentService,
	terms *service.SearchTermService, logger *core.ZapLogger) *ConsoleHandler {
	if logger == nil {
		panic("NewConsoleHandler: logger cannot be nil")
	}
	if console == nil || contents == nil {
		logger.Fatal("NewConsoleHandler: ConsoleService 和 ContentService 不能为 nil")
	}
	return &ConsoleHandler{console: console, contents: contents, terms: terms, logger: logger}
}

// requestContext 把 Authorization 头中的令牌转交给后台 API。
func requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	auth := c.GetHeader("Authorization")
	if token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); token != "" {
		ctx = contentapi.WithAccessToken(ctx, token)
	}
	return ctx
}

// respondServiceError 把业务错误映射为 HTTP 状态码和业务码。
func (h *ConsoleHandler) respondServiceError(c *gin.Context, err error, op string) {
	var apiErr *contentapi.APIError
	switch {
	case errors.Is(err, service.ErrViewNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownViewKind),
		errors.Is(err, service.ErrInvalidTagName),
		errors.Is(err, service.ErrInvalidContent),
		errors.Is(err, service.ErrMissingContentID),
		errors.Is(err, service.ErrEmptySearch):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, err.Error())
	case errors.Is(err, service.ErrTooManyViews):
		response.RespondError(c, http.StatusTooManyRequests, response.ErrCodeClientRateLimitExceeded, err.Error())
	case errors.Is(err, contentapi.ErrAuthExpired):
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientAccessTokenExpired, err.Error())
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, apiErr.Error())
	case errors.Is(err, contentapi.ErrNetworkFailure):
		h.logger.Warn("上游请求失败", zap.String("operation", op), zap.Error(err))
		response.RespondError(c, http.StatusBadGateway, constants.ErrCodeUpstreamFailure, err.Error())
	default:
		h.logger.Error("服务层处理失败", zap.String("operation", op), zap.Error(err))
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "服务内部错误")
	}
}

func (h *ConsoleHandler) bindFailed(c *gin.Context, err error) {
	h.logger.Warn("请求参数绑定或验证失败", zap.String("path", c.FullPath()), zap.Error(err))
	response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "请求参数无效")
}

// OpenView 打开列表视图
// @Summary      打开列表视图
// @Description  创建视图会话，并按 url 中的 q/type 参数完成首次加载（有 q 时搜索第 1 页，否则浏览第 1 页）。
// @Tags         Views
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreateViewRequest  true  "视图类型与初始地址"
// @Success      200   {object}  models.SwaggerViewResponse "视图会话及其状态"
// @Failure      400   {object}  models.SwaggerErrorResponse "请求参数无效"
// @Failure      429   {object}  models.SwaggerErrorResponse "打开的视图会话过多"
// @Router       /api/v1/console/views [post]
func (h *ConsoleHandler) OpenView(c *gin.Context) {
	var req models.CreateViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err)
		return
	}
	view, err := h.console.OpenView(requestContext(c), req.Kind, req.URL)
	if err != nil {
		h.respondServiceError(c, err, "open_view")
		return
	}
	response.RespondSuccess(c, view, "视图已打开")
}

// HeaderSearch 头部搜索
// @Summary      头部搜索
// @Description  以关键词和 TITLE_CONTENT 类型打开文章列表视图，等同于打开 /admin/contents?q=<q>&type=TITLE_CONTENT。
// @Tags         Views
// @Accept       json
// @Produce      json
// @Param        body  body      models.HeaderSearchRequest  true  "搜索关键词"
// @Success      200   {object}  models.SwaggerViewResponse
// @Failure      400   {object}  models.SwaggerErrorResponse "关键词为空"
// @Router       /api/v1/console/header-search [post]
func (h *ConsoleHandler) HeaderSearch(c *gin.Context) {
	var req models.HeaderSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err)
		return
	}
	view, err := h.console.HeaderSearch(requestContext(c), req.Q)
	if err != nil {
		h.respondServiceError(c, err, "header_search")
		return
	}
	response.RespondSuccess(c, view, "视图已打开")
}

// GetView 查看视图状态
// @Summary      查看视图状态
// @Tags         Views
// @Produce      json
// @Param        id   path      string  true  "视图会话 ID"
// @Success      200  {object}  models.SwaggerViewResponse
// @Failure      404  {object}  models.SwaggerErrorResponse "视图会话不存在或已过期"
// @Router       /api/v1/console/views/{id} [get]
func (h *ConsoleHandler) GetView(c *gin.Context) {
	view, err := h.console.GetView(c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "get_view")
		return
	}
	response.RespondSuccess(c, view)
}

// SubmitSearch 提交搜索
// @Summary      提交搜索
// @Description  以给定类型和关键词搜索第 1 页。关键词为空时等同于清除搜索。
// @Tags         Views
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "视图会话 ID"
// @Param        body  body      models.SearchViewRequest  true  "搜索条件"
// @Success      200   {object}  models.SwaggerViewResponse
// @Failure      404   {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/views/{id}/search [post]
func (h *ConsoleHandler) SubmitSearch(c *gin.Context) {
	var req models.SearchViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err)
		return
	}
	view, err := h.console.SubmitSearch(requestContext(c), c.Param("id"), req.Type, req.Query)
	if err != nil {
		h.respondServiceError(c, err, "submit_search")
		return
	}
	response.RespondSuccess(c, view)
}

// ClearSearch 清除搜索
// @Summary      清除搜索
// @Description  清空关键词并浏览第 1 页，搜索类型保持不变。
// @Tags         Views
// @Produce      json
// @Param        id   path      string  true  "视图会话 ID"
// @Success      200  {object}  models.SwaggerViewResponse
// @Failure      404  {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/views/{id}/clear [post]
func (h *ConsoleHandler) ClearSearch(c *gin.Context) {
	view, err := h.console.ClearSearch(requestContext(c), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, err, "clear_search")
		return
	}
	response.RespondSuccess(c, view)
}

// ChangePage 切换页码
// @Summary      切换页码
// @Tags         Views
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "视图会话 ID"
// @Param        body  body      models.ChangePageRequest  true  "目标页码（从 1 开始）"
// @Success      200   {object}  models.SwaggerViewResponse
// @Failure      400   {object}  models.SwaggerErrorResponse
// @Failure      404   {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/views/{id}/page [post]
func (h *ConsoleHandler) ChangePage(c *gin.Context) {
	var req models.ChangePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err)
		return
	}
	view, err := h.console.ChangePage(requestContext(c), c.Param("id"), req.Page)
	if err != nil {
		h.respondServiceError(c, err, "change_page")
		return
	}
	response.RespondSuccess(c, view)
}

// Navigate 地址跳转
// @Summary      地址跳转
// @Description  替换视图地址中的 q/type 参数，参数变化时重新初始化列表。
// @Tags         Views
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "视图会话 ID"
// @Param        body  body      models.NavigateRequest  true  "新的地址参数"
// @Success      200   {object}  models.SwaggerViewResponse
// @Failure      404   {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/views/{id}/navigate [post]
func (h *ConsoleHandler) Navigate(c *gin.Context) {
	var req models.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err)
		return
	}
	view, err := h.console.Navigate(requestContext(c), c.Param("id"), req.Q, req.Type)
	if err != nil {
		h.respondServiceError(c, err, "navigate")
		return
	}
	response.RespondSuccess(c, view)
}

// DeleteItem 删除列表项
// @Summary      删除列表项
// @Description  confirm 为用户对确认框的回答。删除失败时状态不变，提示文本放在 data.alert 中。
// @Tags         Views
// @Produce      json
// @Param        id       path      string  true   "视图会话 ID"
// @Param        itemId   path      int     true   "文章编号或标签编号"
// @Param        confirm  query     bool    false  "是否确认删除" default(false)
// @Success      200      {object}  models.SwaggerViewResponse
// @Failure      400      {object}  models.SwaggerErrorResponse
// @Failure      404      {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/views/{id}/items/{itemId} [delete]
func (h *ConsoleHandler) DeleteItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		h.bindFailed(c, err)
		return
	}
	var q models.DeleteItemQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.bindFailed(c, err)
		return
	}
	view, err := h.console.DeleteItem(requestContext(c), c.Param("id"), itemID, q.Confirm)
	if err != nil {
		h.respondServiceError(c, err, "delete_item")
		return
	}
	response.RespondSuccess(c, view)
}

// CloseView 关闭视图
// @Summary      关闭视图
// @Tags         Views
// @Produce      json
// @Param        id   path      string  true  "视图会话 ID"
// @Success      200  {object}  models.SwaggerErrorResponse
// @Failure      404  {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/views/{id} [delete]
func (h *ConsoleHandler) CloseView(c *gin.Context) {
	if err := h.console.CloseView(c.Param("id")); err != nil {
		h.respondServiceError(c, err, "close_view")
		return
	}
	response.RespondSuccess[any](c, nil, "视图已关闭")
}

// GetContent 文章详情
// @Summary      文章详情
// @Tags         Contents
// @Produce      json
// @Param        id   path      int  true  "文章编号"
// @Success      200  {object}  models.SwaggerContentResponse
// @Failure      404  {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/contents/{id} [get]
func (h *ConsoleHandler) GetContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.bindFailed(c, err)
		return
	}
	content, err := h.contents.GetContent(requestContext(c), id)
	if err != nil {
		h.respondServiceError(c, err, "get_content")
		return
	}
	response.RespondSuccess(c, content)
}

// CreateContent 新建文章
// @Summary      新建文章
// @Tags         Contents
// @Accept       json
// @Produce      json
// @Param        body  body      models.ContentInput  true  "文章内容"
// @Success      200   {object}  models.SwaggerContentResponse
// @Failure      400   {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/contents [post]
func (h *ConsoleHandler) CreateContent(c *gin.Context) {
	var in models.ContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindFailed(c, err)
		return
	}
	content, err := h.contents.CreateContent(requestContext(c), in)
	if err != nil {
		h.respondServiceError(c, err, "create_content")
		return
	}
	response.RespondSuccess(c, content, "文章已创建")
}

// UpdateContent 修改文章
// @Summary      修改文章
// @Tags         Contents
// @Accept       json
// @Produce      json
// @Param        body  body      models.ContentInput  true  "文章内容，ctntNo 必填"
// @Success      200   {object}  models.SwaggerContentResponse
// @Failure      400   {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/contents [put]
func (h *ConsoleHandler) UpdateContent(c *gin.Context) {
	var in models.ContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindFailed(c, err)
		return
	}
	content, err := h.contents.UpdateContent(requestContext(c), in)
	if err != nil {
		h.respondServiceError(c, err, "update_content")
		return
	}
	response.RespondSuccess(c, content, "文章已更新")
}

// CreateTag 新建标签
// @Summary      新建标签
// @Tags         Tags
// @Accept       json
// @Produce      json
// @Param        body  body      models.TagInput  true  "标签名（去除首尾空格后 1~15 个字符）"
// @Success      200   {object}  models.SwaggerTagResponse
// @Failure      400   {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/tags [post]
func (h *ConsoleHandler) CreateTag(c *gin.Context) {
	var in models.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindFailed(c, err)
		return
	}
	tag, err := h.contents.CreateTag(requestContext(c), in.TagName)
	if err != nil {
		h.respondServiceError(c, err, "create_tag")
		return
	}
	response.RespondSuccess(c, tag, "标签已创建")
}

// UpdateTag 修改标签
// @Summary      修改标签
// @Tags         Tags
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "标签编号"
// @Param        body  body      models.TagInput  true  "新的标签名"
// @Success      200   {object}  models.SwaggerTagResponse
// @Failure      400   {object}  models.SwaggerErrorResponse
// @Router       /api/v1/console/tags/{id} [put]
func (h *ConsoleHandler) UpdateTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.bindFailed(c, err)
		return
	}
	var in models.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.bindFailed(c, err)
		return
	}
	tag, err := h.contents.UpdateTag(requestContext(c), id, in.TagName)
	if err != nil {
		h.respondServiceError(c, err, "update_tag")
		return
	}
	response.RespondSuccess(c, tag, "标签已更新")
}

// GetHotSearchTerms 处理获取热门搜索词的请求
// @Summary      获取热门搜索词
// @Description  返回控制台中搜索次数最多的关键词。
// @Tags         Search
// @Produce      json
// @Param        limit    query     int     false  "返回的热门搜索词数量" default(10) minimum(1) maximum(50)
// @Success      200      {object}  models.SwaggerHotSearchTermsResponse "成功，返回热门搜索词列表。"
// @Failure      503      {object}  models.SwaggerErrorResponse "未启用搜索词统计。"
// @Failure      500      {object}  models.SwaggerErrorResponse "服务器内部错误，无法获取热门搜索词。"
// @Router       /api/v1/console/hot-terms [get]
func (h *ConsoleHandler) GetHotSearchTerms(c *gin.Context) {
	if h.terms == nil {
		response.RespondError(c, http.StatusServiceUnavailable, constants.ErrCodeServiceNotEnabled, "未启用搜索词统计")
		return
	}
	var q models.HotTermsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.bindFailed(c, err)
		return
	}

	terms, err := h.terms.GetHotSearchTerms(c.Request.Context(), q.Limit)
	if err != nil {
		h.logger.Error("服务层获取热门搜索词失败", zap.Int("limit", q.Limit), zap.Error(err))
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "获取热门搜索词失败")
		return
	}
	// 返回空数组而不是 null
	if terms == nil {
		terms = make([]models.HotSearchTerm, 0)
	}
	response.RespondSuccess(c, terms, "热门搜索词获取成功")
}

// HealthCheck 健康检查
// @Summary      健康检查
// @Tags         Health
// @Produce      json
// @Success      200  {object}  models.SwaggerHealthCheckResponse
// @Router       /api/v1/_health [get]
func (h *ConsoleHandler) HealthCheck(c *gin.Context) {
	response.RespondSuccess(c, gin.H{"status": "ok"}, "服务存活")
}

// RegisterRoutes 将控制台路由注册到提供的路由组上。
func (h *ConsoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	console := rg.Group("/console")
	{
		views := console.Group("/views")
		views.POST("", h.OpenView)
		views.GET("/:id", h.GetView)
		views.DELETE("/:id", h.CloseView)
		views.POST("/:id/search", h.SubmitSearch)
		views.POST("/:id/clear", h.ClearSearch)
		views.POST("/:id/page", h.ChangePage)
		views.POST("/:id/navigate", h.Navigate)
		views.DELETE("/:id/items/:itemId", h.DeleteItem)
		console.POST("/header-search", h.HeaderSearch)

		console.GET("/contents/:id", h.GetContent)
		console.POST("/contents", h.CreateContent)
		console.PUT("/contents", h.UpdateContent)

		console.POST("/tags", h.CreateTag)
		console.PUT("/tags/:id", h.UpdateTag)

		console.GET("/hot-terms", h.GetHotSearchTerms)
	}
	rg.GET("/_health", h.HealthCheck)
	h.logger.Info("ConsoleHandler 的所有路由已注册完成。")
}
