package repositories

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Xushengqwer/post_admin/constants"
	"github.com/Xushengqwer/post_admin/internal/models"
)

// buildSearchQuery 根据分页请求构建内容索引的查询 DSL。
// 浏览模式按更新时间倒序；搜索模式按相关度，ctntNo 作为稳定的次级排序。
func buildSearchQuery(req models.PageRequest) ([]byte, error) {
	from := (req.Page - 1) * constants.PageSize
	if from < 0 {
		from = 0
	}

	query := strings.TrimSpace(req.Query)
	var mainQuery map[string]interface{}
	var sortClause []map[string]interface{}

	if query == "" {
		mainQuery = map[string]interface{}{"match_all": map[string]interface{}{}}
		sortClause = []map[string]interface{}{
			{"updDttm": map[string]string{"order": "desc", "unmapped_type": "date"}},
			{"ctntNo": map[string]string{"order": "desc"}},
		}
	} else {
		mainQuery = fieldQuery(req.SearchType, query)
		sortClause = []map[string]interface{}{
			{"_score": map[string]string{"order": "desc"}},
			{"ctntNo": map[string]string{"order": "desc"}},
		}
	}

	body := map[string]interface{}{
		"from":             from,
		"size":             constants.PageSize,
		"sort":             sortClause,
		"query":            mainQuery,
		"track_total_hits": true,
	}
	out, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("序列化 Elasticsearch 查询失败: %w", err)
	}
	return out, nil
}

// fieldQuery 按搜索类型选择查询字段，未知类型按标题+正文处理。
func fieldQuery(searchType models.SearchType, query string) map[string]interface{} {
	switch searchType {
	case models.SearchTypeTitle:
		return map[string]interface{}{"match": map[string]interface{}{"title": query}}
	case models.SearchTypeContent:
		return map[string]interface{}{"match": map[string]interface{}{"content": query}}
	case models.SearchTypeTag:
		// 标签是 keyword，精确匹配
		return map[string]interface{}{"term": map[string]interface{}{"tags": query}}
	default:
		return map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^3", "content"},
				"type":   "best_fields",
			},
		}
	}
}
