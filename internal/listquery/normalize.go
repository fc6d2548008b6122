package listquery

import (
	"encoding/json"

	"github.com/Xushengqwer/post_admin/constants"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/tidwall/gjson"
)

// 各字段按顺序取第一个存在的值。
var (
	itemsPaths      = []string{"content", "list"}
	totalCountPaths = []string{"totalElements", "count", "totalCount"}
	totalPagesPath  = "totalPages"
)

// Normalize 把任意形状的分页负载转换成 PageResult，不会失败。
//   - items: content -> list -> 负载本身是数组 -> 空
//   - totalCount: totalElements -> count -> totalCount -> len(items)
//   - totalPages: totalPages -> ceil(totalCount/PageSize)，最小为 1
func Normalize(env Envelope) models.PageResult {
	res := models.PageResult{Items: []json.RawMessage{}, TotalPages: 1}
	if !gjson.ValidBytes(env) {
		return res
	}
	root := gjson.ParseBytes(env)

	res.Items = extractItems(root)
	res.TotalCount = int64(len(res.Items))
	if root.IsObject() {
		for _, p := range totalCountPaths {
			if v := root.Get(p); present(v) {
				res.TotalCount = v.Int()
				break
			}
		}
	}
	if res.TotalCount < 0 {
		res.TotalCount = 0
	}

	pages := int((res.TotalCount + constants.PageSize - 1) / constants.PageSize)
	if v := root.Get(totalPagesPath); root.IsObject() && present(v) {
		pages = int(v.Int())
	}
	if pages < 1 {
		pages = 1
	}
	res.TotalPages = pages
	return res
}

func extractItems(root gjson.Result) []json.RawMessage {
	var arr gjson.Result
	switch {
	case root.IsArray():
		arr = root
	case root.IsObject():
		for _, p := range itemsPaths {
			if v := root.Get(p); v.IsArray() {
				arr = v
				break
			}
		}
	}
	if !arr.IsArray() {
		return []json.RawMessage{}
	}

	elems := arr.Array()
	items := make([]json.RawMessage, 0, len(elems))
	for _, e := range elems {
		items = append(items, json.RawMessage(e.Raw))
	}
	return items
}

// present 字段存在且不为 null。
func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}
