package models

import "time"

// ContentDocument 内容索引中的文档。字段名与 REST API 的 Content 保持一致，
// 这样两种数据源返回的记录在前端渲染上没有差别。
type ContentDocument struct {
	CtntNo  int64     `json:"ctntNo"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	InpUser string    `json:"inpUser,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
	InpDttm time.Time `json:"inpDttm"`
	UpdDttm time.Time `json:"updDttm"`
}
