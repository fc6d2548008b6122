package models

import "time"

// HotSearchTerm 热门搜索词接口返回项。
type HotSearchTerm struct {
	Term  string `json:"term"`
	Count int64  `json:"count,omitempty"`
}

// SearchTermStat 搜索词统计索引中的文档，文档 ID 即搜索词。
type SearchTermStat struct {
	Term           string    `json:"term"`
	Count          int64     `json:"count"`
	LastSearchedAt time.Time `json:"last_searched_at"`
}
