package listquery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type call struct {
	op         string
	searchType models.SearchType
	query      string
	page       int
	id         int64
}

type fakeProvider struct {
	mu    sync.Mutex
	calls []call

	listFn    func(page int) (Envelope, error)
	searchFn  func(t models.SearchType, q string, page int) (Envelope, error)
	deleteErr error
}

func (f *fakeProvider) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeProvider) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeProvider) ListPage(_ context.Context, page int) (Envelope, error) {
	f.record(call{op: "list", page: page})
	if f.listFn != nil {
		return f.listFn(page)
	}
	return pageOf("browse", page, 35), nil
}

func (f *fakeProvider) SearchPage(_ context.Context, t models.SearchType, q string, page int) (Envelope, error) {
	f.record(call{op: "search", searchType: t, query: q, page: page})
	if f.searchFn != nil {
		return f.searchFn(t, q, page)
	}
	return pageOf(q, page, 12), nil
}

func (f *fakeProvider) DeleteItem(_ context.Context, id int64) error {
	f.record(call{op: "delete", id: id})
	return f.deleteErr
}

// pageOf 构造一页数据，记录里带上来源标记与页码便于断言。
func pageOf(tag string, page int, total int) Envelope {
	return Envelope(fmt.Sprintf(`{"content":[{"tag":%q,"page":%d}],"totalElements":%d}`, tag, page, total))
}

func newTestController(t *testing.T, p Provider) *Controller {
	return NewController(p, nil, zaptest.NewLogger(t))
}

func firstItem(t *testing.T, s models.ViewState) string {
	t.Helper()
	require.NotEmpty(t, s.Items)
	return string(s.Items[0])
}

func TestInitialize_WithQueryIssuesSingleSearch(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(t, p)

	s := c.Initialize(context.Background(), NavigationParams{Query: "golang", Type: "TITLE"})

	assert.Equal(t, []call{{op: "search", searchType: models.SearchTypeTitle, query: "golang", page: 1}}, p.Calls())
	assert.Equal(t, "golang", s.SearchQuery)
	assert.Equal(t, models.SearchTypeTitle, s.SearchType)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, int64(12), s.TotalCount)
	assert.Equal(t, 2, s.TotalPages)
	assert.False(t, s.IsLoading)
}

func TestInitialize_TypeDefaults(t *testing.T) {
	for _, typ := range []string{"", "AUTHOR", "title"} {
		t.Run("type="+typ, func(t *testing.T) {
			p := &fakeProvider{}
			c := newTestController(t, p)
			c.Initialize(context.Background(), NavigationParams{Query: "go", Type: typ})
			require.Len(t, p.Calls(), 1)
			assert.Equal(t, models.SearchTypeTitleContent, p.Calls()[0].searchType)
		})
	}
}

func TestInitialize_WithoutQueryBrowsesFirstPage(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(t, p)

	s := c.Initialize(context.Background(), NavigationParams{Query: "   ", Type: "TAG"})

	assert.Equal(t, []call{{op: "list", page: 1}}, p.Calls())
	assert.Equal(t, "", s.SearchQuery)
	assert.Equal(t, 4, s.TotalPages)
}

func TestInitialize_OncePerDistinctParams(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(t, p)
	ctx := context.Background()

	params := NavigationParams{Query: "go", Type: "TAG"}
	c.Initialize(ctx, params)
	c.Initialize(ctx, params)
	assert.Len(t, p.Calls(), 1)

	c.Initialize(ctx, NavigationParams{Query: "go", Type: "TITLE"})
	assert.Len(t, p.Calls(), 2)
}

func TestStart_FollowsNavigation(t *testing.T) {
	nav, err := NewURLNavigation("/admin/contents?q=golang&type=TITLE")
	require.NoError(t, err)
	p := &fakeProvider{}
	c := NewController(p, nav, zaptest.NewLogger(t))
	ctx := context.Background()

	s := c.Start(ctx)
	assert.Equal(t, "golang", s.SearchQuery)

	require.NoError(t, nav.Push(ctx, NavigationParams{Query: "rust", Type: "TITLE_CONTENT"}))
	s = c.State()
	assert.Equal(t, "rust", s.SearchQuery)
	assert.Equal(t, models.SearchTypeTitleContent, s.SearchType)
	assert.Len(t, p.Calls(), 2)

	c.Stop()
	require.NoError(t, nav.Push(ctx, NavigationParams{Query: "zig"}))
	assert.Len(t, p.Calls(), 2)
}

func TestSubmitSearch(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(t, p)
	ctx := context.Background()
	c.Clear(ctx)
	c.ChangePage(ctx, 3)

	s := c.SubmitSearch(ctx, models.SearchTypeContent, "  channel  ")

	calls := p.Calls()
	assert.Equal(t, call{op: "search", searchType: models.SearchTypeContent, query: "channel", page: 1}, calls[len(calls)-1])
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, "channel", s.SearchQuery)
}

func TestSubmitSearch_EmptyQueryEqualsClear(t *testing.T) {
	ctx := context.Background()

	p1 := &fakeProvider{}
	c1 := newTestController(t, p1)
	c1.SubmitSearch(ctx, models.SearchTypeTitle, "go")
	s1 := c1.SubmitSearch(ctx, models.SearchTypeTag, "   ")

	p2 := &fakeProvider{}
	c2 := newTestController(t, p2)
	c2.SubmitSearch(ctx, models.SearchTypeTitle, "go")
	s2 := c2.Clear(ctx)

	assert.Equal(t, s2, s1)
	assert.Equal(t, p2.Calls(), p1.Calls())
	assert.Equal(t, models.SearchTypeTitle, s1.SearchType)
}

func TestClear_Idempotent(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(t, p)
	ctx := context.Background()
	c.SubmitSearch(ctx, models.SearchTypeTitle, "go")

	once := c.Clear(ctx)
	twice := c.Clear(ctx)

	assert.Equal(t, once, twice)
	assert.Equal(t, "", twice.SearchQuery)
	assert.Equal(t, 1, twice.CurrentPage)
	calls := p.Calls()
	assert.Equal(t, call{op: "list", page: 1}, calls[len(calls)-1])
}

func TestChangePage(t *testing.T) {
	ctx := context.Background()

	t.Run("浏览模式", func(t *testing.T) {
		p := &fakeProvider{}
		c := newTestController(t, p)
		s := c.ChangePage(ctx, 2)
		assert.Equal(t, []call{{op: "list", page: 2}}, p.Calls())
		assert.JSONEq(t, `{"tag":"browse","page":2}`, firstItem(t, s))
		assert.Equal(t, 2, s.CurrentPage)
	})

	t.Run("搜索模式沿用当前条件", func(t *testing.T) {
		p := &fakeProvider{}
		c := newTestController(t, p)
		c.SubmitSearch(ctx, models.SearchTypeTag, "go")
		s := c.ChangePage(ctx, 2)
		calls := p.Calls()
		assert.Equal(t, call{op: "search", searchType: models.SearchTypeTag, query: "go", page: 2}, calls[len(calls)-1])
		assert.JSONEq(t, `{"tag":"go","page":2}`, firstItem(t, s))
	})

	t.Run("不修正越界页码", func(t *testing.T) {
		p := &fakeProvider{}
		c := newTestController(t, p)
		s := c.ChangePage(ctx, 99)
		assert.Equal(t, 99, s.CurrentPage)
		assert.Equal(t, []call{{op: "list", page: 99}}, p.Calls())
	})
}

func TestInitialize_SameParamsAfterFailureDoesNotRetry(t *testing.T) {
	p := &fakeProvider{}
	p.searchFn = func(models.SearchType, string, int) (Envelope, error) { return nil, errors.New("后台超时") }
	c := newTestController(t, p)
	ctx := context.Background()
	params := NavigationParams{Query: "go", Type: "TITLE"}

	s := c.Initialize(ctx, params)
	assert.Equal(t, "后台超时", s.ErrorMessage)

	p.searchFn = nil
	s = c.Initialize(ctx, params)
	assert.Len(t, p.Calls(), 1)
	assert.Equal(t, "后台超时", s.ErrorMessage)

	// 翻页会按当前搜索条件重新请求
	s = c.ChangePage(ctx, 1)
	require.Len(t, p.Calls(), 2)
	assert.Equal(t, call{op: "search", searchType: models.SearchTypeTitle, query: "go", page: 1}, p.Calls()[1])
	assert.Empty(t, s.ErrorMessage)
}

func TestFetchFailureKeepsPreviousData(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(t, p)
	ctx := context.Background()
	before := c.ChangePage(ctx, 1)

	p.listFn = func(int) (Envelope, error) { return nil, errors.New("连接被拒绝") }
	s := c.ChangePage(ctx, 2)

	assert.Equal(t, "连接被拒绝", s.ErrorMessage)
	assert.False(t, s.IsLoading)
	assert.Equal(t, before.Items, s.Items)
	assert.Equal(t, before.TotalCount, s.TotalCount)
	assert.Equal(t, 2, s.CurrentPage)

	p.listFn = nil
	s = c.ChangePage(ctx, 2)
	assert.Empty(t, s.ErrorMessage)
}

func TestFetchProviderPanicBecomesError(t *testing.T) {
	p := &fakeProvider{listFn: func(int) (Envelope, error) { panic("nil map") }}
	c := newTestController(t, p)

	s := c.Clear(context.Background())

	assert.Contains(t, s.ErrorMessage, "nil map")
	assert.False(t, s.IsLoading)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	releaseA := make(chan struct{})
	releaseB := make(chan struct{})
	started := make(chan string, 2)

	p := &fakeProvider{
		searchFn: func(_ models.SearchType, q string, page int) (Envelope, error) {
			started <- q
			if q == "A" {
				<-releaseA
			} else {
				<-releaseB
			}
			return pageOf(q, page, 1), nil
		},
	}
	c := newTestController(t, p)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.SubmitSearch(ctx, models.SearchTypeTitle, "A")
	}()
	require.Equal(t, "A", <-started)

	doneB := make(chan models.ViewState, 1)
	go func() { doneB <- c.SubmitSearch(ctx, models.SearchTypeTitle, "B") }()
	require.Equal(t, "B", <-started)

	assert.True(t, c.State().IsLoading)

	close(releaseB)
	sB := <-doneB
	assert.JSONEq(t, `{"tag":"B","page":1}`, firstItem(t, sB))
	assert.False(t, sB.IsLoading)

	close(releaseA)
	wg.Wait()

	final := c.State()
	assert.JSONEq(t, `{"tag":"B","page":1}`, firstItem(t, final))
	assert.Equal(t, "B", final.SearchQuery)
	assert.False(t, final.IsLoading)
}

type recordingPrompter struct {
	answer   bool
	confirms int
	alerts   []string
}

func (r *recordingPrompter) Confirm(context.Context, string) bool {
	r.confirms++
	return r.answer
}

func (r *recordingPrompter) Alert(_ context.Context, msg string) {
	r.alerts = append(r.alerts, msg)
}

func TestDelete_Declined(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(t, p)
	ctx := context.Background()
	before := c.ChangePage(ctx, 2)
	callsBefore := len(p.Calls())

	prompter := &recordingPrompter{answer: false}
	s := c.Delete(ctx, 42, prompter)

	assert.Equal(t, 1, prompter.confirms)
	assert.Len(t, p.Calls(), callsBefore)
	assert.Equal(t, before, s)
}

func TestDelete_ConfirmedRefetchesCurrentPage(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(t, p)
	ctx := context.Background()
	c.SubmitSearch(ctx, models.SearchTypeTitle, "go")
	c.ChangePage(ctx, 2)

	s := c.Delete(ctx, 42, &recordingPrompter{answer: true})

	calls := p.Calls()
	require.GreaterOrEqual(t, len(calls), 2)
	assert.Equal(t, call{op: "delete", id: 42}, calls[len(calls)-2])
	assert.Equal(t, call{op: "search", searchType: models.SearchTypeTitle, query: "go", page: 2}, calls[len(calls)-1])
	assert.Equal(t, 2, s.CurrentPage)
}

func TestDelete_FailureAlertsAndKeepsState(t *testing.T) {
	p := &fakeProvider{deleteErr: errors.New("403 forbidden")}
	c := newTestController(t, p)
	ctx := context.Background()
	before := c.ChangePage(ctx, 1)

	prompter := &recordingPrompter{answer: true}
	s := c.Delete(ctx, 7, prompter)

	assert.Equal(t, []string{DeleteFailedPrefix + "403 forbidden"}, prompter.alerts)
	assert.Equal(t, before, s)
	calls := p.Calls()
	assert.Equal(t, call{op: "delete", id: 7}, calls[len(calls)-1])
}

func TestDelete_StaticPrompter(t *testing.T) {
	p := &fakeProvider{deleteErr: errors.New("boom")}
	c := newTestController(t, p)

	sp := &StaticPrompter{Answer: true}
	c.Delete(context.Background(), 1, sp)
	assert.Equal(t, DeleteFailedPrefix+"boom", sp.LastAlert)
}

func TestConcurrentOperationsLeaveConsistentState(t *testing.T) {
	p := &fakeProvider{}
	c := newTestController(t, p)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				c.ChangePage(ctx, i)
			} else {
				c.SubmitSearch(ctx, models.SearchTypeTitle, fmt.Sprintf("q%d", i))
			}
		}(i)
	}
	wg.Wait()

	s := c.State()
	assert.False(t, s.IsLoading)
	assert.Len(t, s.Items, 1)
}
