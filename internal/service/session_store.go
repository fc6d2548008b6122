package service

import (
	"context"
	"sync"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/internal/listquery"
	"github.com/Xushengqwer/post_admin/internal/models"
	"go.uber.org/zap"
)

// viewSession 一个打开的列表页面: 导航地址 + 控制器。
type viewSession struct {
	id         string
	kind       models.ViewKind
	nav        *listquery.URLNavigation
	controller *listquery.Controller
	lastUsed   time.Time
}

func (s *viewSession) response(state models.ViewState) models.ViewResponse {
	return models.ViewResponse{ViewID: s.id, Kind: s.kind, URL: s.nav.URL(), State: state}
}

// SessionStore 内存中的视图会话，空闲超过 ttl 的会话由 Sweep 回收。
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*viewSession
	ttl      time.Duration
	max      int
	now      func() time.Time
	logger   *core.ZapLogger
}

func NewSessionStore(ttl time.Duration, maxSessions int, logger *core.ZapLogger) *SessionStore {
	if logger == nil {
		panic("NewSessionStore: logger 不能为 nil")
	}
	return &SessionStore{
		sessions: make(map[string]*viewSession),
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *SessionStore) add(vs *viewSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.sessions) >= s.max {
		s.sweepLocked()
		if len(s.sessions) >= s.max {
			return ErrTooManyViews
		}
	}
	vs.lastUsed = s.now()
	s.sessions[vs.id] = vs
	return nil
}

// get 取出会话并刷新最近使用时间。
func (s *SessionStore) get(id string) (*viewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vs, ok := s.sessions[id]
	if !ok || s.expiredLocked(vs) {
		return nil, ErrViewNotFound
	}
	vs.lastUsed = s.now()
	return vs, nil
}

func (s *SessionStore) remove(id string) bool {
	s.mu.Lock()
	vs, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		vs.controller.Stop()
	}
	return ok
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep 回收过期会话，返回回收数量。
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *SessionStore) sweepLocked() int {
	n := 0
	for id, vs := range s.sessions {
		if s.expiredLocked(vs) {
			delete(s.sessions, id)
			vs.controller.Stop()
			n++
		}
	}
	if n > 0 {
		s.logger.Info("回收过期视图会话", zap.Int("count", n), zap.Int("remaining", len(s.sessions)))
	}
	return n
}

func (s *SessionStore) expiredLocked(vs *viewSession) bool {
	return s.ttl > 0 && s.now().Sub(vs.lastUsed) > s.ttl
}

// Run 定期执行 Sweep，直到 ctx 结束。
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
