package service

import "errors"

var (
	ErrViewNotFound     = errors.New("视图会话不存在或已过期")
	ErrUnknownViewKind  = errors.New("未知的视图类型")
	ErrTooManyViews     = errors.New("打开的视图会话过多")
	ErrInvalidTagName   = errors.New("标签名不能为空且不能超过 15 个字符")
	ErrInvalidContent   = errors.New("文章标题和正文不能为空")
	ErrMissingContentID = errors.New("缺少文章编号")
	ErrEmptySearch      = errors.New("搜索关键词不能为空")
)
