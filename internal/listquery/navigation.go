package listquery

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/Xushengqwer/post_admin/internal/models"
)

const (
	ParamQuery = "q"
	ParamType  = "type"
)

// NavigationParams 导航地址中与列表相关的查询参数，保留原始值。
type NavigationParams struct {
	Query string
	Type  string
}

// NavigationSurface 承载 q/type 的导航地址。
type NavigationSurface interface {
	Current() NavigationParams
	Push(ctx context.Context, params NavigationParams) error
	// Subscribe 注册变更回调，仅在参数实际变化时触发。返回值用于取消订阅。
	Subscribe(fn func(ctx context.Context, params NavigationParams)) (cancel func())
}

// URLNavigation 基于内存 URL 的 NavigationSurface。
type URLNavigation struct {
	mu     sync.Mutex
	path   string
	values url.Values
	subs   map[int]func(context.Context, NavigationParams)
	nextID int
}

// NewURLNavigation 解析形如 /admin/contents?q=golang&type=TITLE 的地址。
func NewURLNavigation(rawURL string) (*URLNavigation, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("解析导航地址 %q 失败: %w", rawURL, err)
	}
	return &URLNavigation{
		path:   u.Path,
		values: u.Query(),
		subs:   make(map[int]func(context.Context, NavigationParams)),
	}, nil
}

func (n *URLNavigation) Current() NavigationParams {
	n.mu.Lock()
	defer n.mu.Unlock()
	return paramsOf(n.values)
}

// URL 当前地址（路径 + 编码后的查询串）。
func (n *URLNavigation) URL() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.values) == 0 {
		return n.path
	}
	return n.path + "?" + n.values.Encode()
}

// Push 替换 q/type 参数；参数没有变化时不通知订阅者。
// 回调在锁外同步执行。
func (n *URLNavigation) Push(ctx context.Context, params NavigationParams) error {
	n.mu.Lock()
	if paramsOf(n.values) == params {
		n.mu.Unlock()
		return nil
	}
	next := url.Values{}
	for k, v := range n.values {
		if k != ParamQuery && k != ParamType {
			next[k] = v
		}
	}
	if params.Query != "" {
		next.Set(ParamQuery, params.Query)
	}
	if params.Type != "" {
		next.Set(ParamType, params.Type)
	}
	n.values = next

	subs := make([]func(context.Context, NavigationParams), 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.Unlock()

	for _, fn := range subs {
		fn(ctx, params)
	}
	return nil
}

func (n *URLNavigation) Subscribe(fn func(ctx context.Context, params NavigationParams)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

func paramsOf(v url.Values) NavigationParams {
	return NavigationParams{Query: v.Get(ParamQuery), Type: v.Get(ParamType)}
}

// BuildSearchURL 头部搜索框的跳转地址: path?q=<q>&type=TITLE_CONTENT。
// q 去空格后为空时返回 false，调用方不应跳转。
func BuildSearchURL(path, q string) (string, bool) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", false
	}
	v := url.Values{}
	v.Set(ParamQuery, q)
	v.Set(ParamType, string(models.SearchTypeTitleContent))
	return path + "?" + v.Encode(), true
}
