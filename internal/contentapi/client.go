package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	// ErrNetworkFailure 请求未能得到成功响应（传输失败或非 2xx）。
	ErrNetworkFailure = errors.New("博客后台 API 请求失败")
	// ErrAuthExpired 后台返回 401，需要重新登录。
	ErrAuthExpired = errors.New("登录已过期")
	// ErrSearchUnsupported 该资源没有搜索接口。
	ErrSearchUnsupported = errors.New("该列表不支持搜索")
)

// APIError 后台返回的非 2xx 响应。
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrAuthExpired
	}
	return ErrNetworkFailure
}

type tokenKey struct{}

// WithAccessToken 把调用方的访问令牌放进上下文，优先于配置里的令牌。
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func accessToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client 博客后台 REST API 客户端。
type Client struct {
	baseURL    string
	token      string
	maxRetries uint64
	httpClient *http.Client
	logger     *core.ZapLogger
}

// NewClient 创建客户端。
// 参数:
//   - cfg: 基础地址、默认令牌、超时与 GET 重试次数。
//   - transport: 底层 RoundTripper，启用追踪时传入 otelhttp.NewTransport；nil 使用默认。
//   - logger: 日志器，不能为 nil。
func NewClient(cfg config.ContentAPIConfig, transport http.RoundTripper, logger *core.ZapLogger) (*Client, error) {
	if logger == nil {
		panic("NewClient: logger 不能为 nil")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("无效的 contentApi.baseUrl %q", cfg.BaseURL)
	}
	if transport == nil {
		transport = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		maxRetries: cfg.MaxRetryAttempts,
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		logger:     logger,
	}, nil
}

// do 发送请求并返回响应包中的 data 字段原文。
// GET 请求在传输失败或 5xx 时按指数退避重试，其余请求只发一次。
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("序列化请求体失败: %w", err)
		}
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var data json.RawMessage
	operation := func() error {
		var err error
		data, err = c.send(ctx, method, target, payload)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	retries := c.maxRetries
	if method != http.MethodGet {
		retries = 0
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("博客后台 API 请求失败，准备重试",
			zap.String("method", method),
			zap.String("url", target),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
	if err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx), notify); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte) (json.RawMessage, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := accessToken(ctx)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetworkFailure, method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: 读取响应失败: %v", ErrNetworkFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if gjson.ValidBytes(raw) {
			apiErr.Code = gjson.GetBytes(raw, "code").String()
			apiErr.Message = gjson.GetBytes(raw, "message").String()
		}
		c.logger.Debug("博客后台 API 返回错误",
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code),
		)
		return nil, apiErr
	}

	if len(bytes.TrimSpace(raw)) == 0 || !gjson.ValidBytes(raw) {
		return json.RawMessage("null"), nil
	}
	data := gjson.GetBytes(raw, "data")
	if !data.Exists() {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(data.Raw), nil
}
