package repositories

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Xushengqwer/post_admin/internal/listquery"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// newFakeES 启动一个模拟 Elasticsearch 的 HTTP 服务。
func newFakeES(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, body []byte)) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		body, _ := io.ReadAll(r.Body)
		handler(w, r, body)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestContentIndexProvider_SearchPage(t *testing.T) {
	client := newFakeES(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		assert.Equal(t, "/contents/_search", r.URL.Path)
		assert.Equal(t, "golang", gjson.GetBytes(body, "query.match.title").String())
		assert.Equal(t, int64(10), gjson.GetBytes(body, "from").Int())
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":23},"hits":[
			{"_source":{"ctntNo":5,"title":"golang 101","content":"...","inpDttm":"2024-01-02T00:00:00Z","updDttm":"2024-01-03T00:00:00Z"}}]}}`)
	})
	p := NewContentIndexProvider(NewESContentRepository(client, "contents", newTestLogger(t)))

	env, err := p.SearchPage(context.Background(), models.SearchTypeTitle, "golang", 2)
	require.NoError(t, err)

	page := listquery.Normalize(env)
	assert.Equal(t, int64(23), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(5), gjson.GetBytes(page.Items[0], "ctntNo").Int())
	assert.Equal(t, "golang 101", gjson.GetBytes(page.Items[0], "title").String())
}

func TestContentIndexProvider_ListPage(t *testing.T) {
	client := newFakeES(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		assert.True(t, gjson.GetBytes(body, "query.match_all").Exists())
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":0},"hits":[]}}`)
	})
	p := NewContentIndexProvider(NewESContentRepository(client, "contents", newTestLogger(t)))

	env, err := p.ListPage(context.Background(), 1)
	require.NoError(t, err)
	page := listquery.Normalize(env)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestSearchContents_ESError(t *testing.T) {
	client := newFakeES(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"type":"search_phase_execution_exception"}}`)
	})
	repo := NewESContentRepository(client, "contents", newTestLogger(t))

	_, err := repo.SearchContents(context.Background(), models.PageRequest{Page: 1})
	assert.ErrorContains(t, err, "400")
}

func TestDeleteContent(t *testing.T) {
	status := http.StatusOK
	client := newFakeES(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/contents/_doc/42", r.URL.Path)
		assert.Equal(t, "wait_for", r.URL.Query().Get("refresh"))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"result":"deleted"}`)
	})
	p := NewContentIndexProvider(NewESContentRepository(client, "contents", newTestLogger(t)))
	ctx := context.Background()

	require.NoError(t, p.DeleteItem(ctx, 42))

	status = http.StatusNotFound
	require.NoError(t, p.DeleteItem(ctx, 42), "不存在的文档按成功处理")

	status = http.StatusInternalServerError
	assert.Error(t, p.DeleteItem(ctx, 42))
}

func TestIndexContent(t *testing.T) {
	client := newFakeES(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/contents/_doc/7", r.URL.Path)
		assert.Equal(t, "Go 泛型", gjson.GetBytes(body, "title").String())
		assert.Equal(t, "go", gjson.GetBytes(body, "tags.0").String())
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})
	repo := NewESContentRepository(client, "contents", newTestLogger(t))

	err := repo.IndexContent(context.Background(), models.ContentDocument{
		CtntNo: 7, Title: "Go 泛型", Tags: []string{"go"}, UpdDttm: time.Now(),
	})
	require.NoError(t, err)
}

func TestSearchTerms(t *testing.T) {
	client := newFakeES(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		switch r.URL.Path {
		case "/terms/_update/golang":
			assert.Equal(t, "golang", gjson.GetBytes(body, "upsert.term").String())
			assert.Equal(t, int64(1), gjson.GetBytes(body, "script.params.inc").Int())
			_, _ = io.WriteString(w, `{"result":"updated"}`)
		case "/terms/_search":
			assert.Equal(t, int64(2), gjson.GetBytes(body, "size").Int())
			_, _ = io.WriteString(w, `{"hits":{"hits":[
				{"_source":{"term":"golang","count":9}},
				{"_source":{"term":"rust","count":4}}]}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	repo := NewESSearchTermRepository(client, newTestLogger(t), "terms")
	ctx := context.Background()

	require.NoError(t, repo.IncrementSearchTermCount(ctx, "golang"))

	terms, err := repo.GetHotSearchTerms(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.HotSearchTerm{{Term: "golang", Count: 9}, {Term: "rust", Count: 4}}, terms)
}
