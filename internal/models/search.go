package models

import (
	"encoding/json"
	"strings"
)

// SearchType 搜索字段。
type SearchType string

const (
	SearchTypeTitle        SearchType = "TITLE"
	SearchTypeContent      SearchType = "CONTENT"
	SearchTypeTitleContent SearchType = "TITLE_CONTENT"
	SearchTypeTag          SearchType = "TAG"
)

// DefaultSearchType 地址参数里没有或无法识别 type 时使用。
const DefaultSearchType = SearchTypeTitleContent

// ParseSearchType 解析搜索类型，大小写敏感；不认识的值返回 false。
func ParseSearchType(s string) (SearchType, bool) {
	switch t := SearchType(s); t {
	case SearchTypeTitle, SearchTypeContent, SearchTypeTitleContent, SearchTypeTag:
		return t, true
	}
	return "", false
}

// SearchTypeOrDefault 同 ParseSearchType，失败时回落到 DefaultSearchType。
func SearchTypeOrDefault(s string) SearchType {
	if t, ok := ParseSearchType(s); ok {
		return t
	}
	return DefaultSearchType
}

func (t SearchType) Valid() bool {
	_, ok := ParseSearchType(string(t))
	return ok
}

// PageRequest 一次列表拉取的参数。Query 去空格后为空即为浏览模式，此时忽略 SearchType。
type PageRequest struct {
	Page       int        `json:"page"`
	SearchType SearchType `json:"searchType,omitempty"`
	Query      string     `json:"query,omitempty"`
}

func (r PageRequest) IsSearch() bool {
	return strings.TrimSpace(r.Query) != ""
}

// PageResult 归一化之后的一页数据。Items 保留记录原样。
type PageResult struct {
	Items      []json.RawMessage `json:"items"`
	TotalCount int64             `json:"totalCount"`
	TotalPages int               `json:"totalPages"`
}

// ViewState 列表视图的全部可观察状态。
type ViewState struct {
	CurrentPage  int               `json:"currentPage"`
	SearchQuery  string            `json:"searchQuery"`
	SearchType   SearchType        `json:"searchType"`
	Items        []json.RawMessage `json:"items"`
	TotalCount   int64             `json:"totalCount"`
	TotalPages   int               `json:"totalPages"`
	IsLoading    bool              `json:"isLoading"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
}

// NewViewState 返回初始状态: 第 1 页，空列表，共 1 页。
func NewViewState() ViewState {
	return ViewState{
		CurrentPage: 1,
		SearchType:  DefaultSearchType,
		Items:       []json.RawMessage{},
		TotalPages:  1,
	}
}

// Clone 深拷贝 Items 切片头，调用方可以安全持有快照。
func (s ViewState) Clone() ViewState {
	items := make([]json.RawMessage, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}
