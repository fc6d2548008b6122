package models

// ViewKind 视图会话对应的列表页面。
type ViewKind string

const (
	ViewKindContents ViewKind = "contents"
	ViewKindTags     ViewKind = "tags"
)

// CreateViewRequest 打开一个列表视图。URL 形如 /admin/contents?q=golang&type=TITLE。
type CreateViewRequest struct {
	Kind ViewKind `json:"kind" binding:"required,oneof=contents tags"`
	URL  string   `json:"url"`
}

type SearchViewRequest struct {
	Type  SearchType `json:"type"`
	Query string     `json:"query"`
}

type ChangePageRequest struct {
	Page int `json:"page" binding:"required,min=1"`
}

// NavigateRequest 头部搜索框或深链接跳转。
type NavigateRequest struct {
	Q    string `json:"q"`
	Type string `json:"type"`
}

// HeaderSearchRequest 头部搜索框提交。
type HeaderSearchRequest struct {
	Q string `json:"q"`
}

type DeleteItemQuery struct {
	Confirm bool `form:"confirm"`
}

type HotTermsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// ViewResponse 视图会话接口的统一返回数据。
type ViewResponse struct {
	ViewID string    `json:"viewId"`
	Kind   ViewKind  `json:"kind"`
	URL    string    `json:"url"`
	State  ViewState `json:"state"`
	// Alert 删除失败时给用户的提示，其余情况为空
	Alert string `json:"alert,omitempty"`
}
