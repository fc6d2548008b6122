package models

// Content 博客后台的文章记录。时间字段保持 API 返回的原始字符串。
type Content struct {
	CtntNo   int64    `json:"ctntNo"`
	Title    string   `json:"title"`
	SubTitle string   `json:"subTitle,omitempty"`
	Content  string   `json:"content"`
	InpUser  string   `json:"inpUser,omitempty"`
	InpDttm  string   `json:"inpDttm,omitempty"`
	UpdDttm  string   `json:"updDttm,omitempty"`
	Tags     []TagRef `json:"tags,omitempty"`
}

// TagRef 文章上挂的标签。读接口带名称，写请求只发 tagNo。
type TagRef struct {
	TagNo   int64  `json:"tagNo"`
	TagName string `json:"tagName,omitempty"`
}

// ContentInput 新建/修改文章的请求体。修改时 CtntNo 必填。
type ContentInput struct {
	CtntNo   int64    `json:"ctntNo,omitempty"`
	Title    string   `json:"title" binding:"required,max=200"`
	SubTitle string   `json:"subTitle,omitempty"` // 为空时由正文摘出
	Content  string   `json:"content" binding:"required"`
	Tags     []TagRef `json:"tags,omitempty"`
}

type Tag struct {
	TagNo    int64  `json:"tagNo"`
	TagName  string `json:"tagName"`
	TagCount int64  `json:"tagCount,omitempty"`
	InpDttm  string `json:"inpDttm,omitempty"`
}

// TagInput 新建/修改标签的请求体，名称在服务层去空格后校验长度。
type TagInput struct {
	TagName string `json:"tagName" binding:"required"`
}
