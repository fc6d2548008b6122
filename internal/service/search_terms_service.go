package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/constants"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/Xushengqwer/post_admin/internal/repositories"
	"go.uber.org/zap"
)

// SearchTermService 控制台搜索词统计。
type SearchTermService struct {
	repo   repositories.SearchTermRepository
	logger *core.ZapLogger
}

func NewSearchTermService(repo repositories.SearchTermRepository, logger *core.ZapLogger) *SearchTermService {
	if logger == nil {
		panic("NewSearchTermService: logger 不能为 nil")
	}
	if repo == nil {
		logger.Fatal("NewSearchTermService: SearchTermRepository 不能为 nil")
	}
	return &SearchTermService{repo: repo, logger: logger}
}

// LogSearchQuery 小写并去空格后计数，空串忽略。
func (s *SearchTermService) LogSearchQuery(ctx context.Context, query string) error {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil
	}
	if err := s.repo.IncrementSearchTermCount(ctx, normalized); err != nil {
		return fmt.Errorf("记录搜索词 '%s' 失败: %w", normalized, err)
	}
	s.logger.Debug("搜索词已记录", zap.String("term", normalized))
	return nil
}

// GetHotSearchTerms limit 越界时取默认值或上限。
func (s *SearchTermService) GetHotSearchTerms(ctx context.Context, limit int) ([]models.HotSearchTerm, error) {
	if limit <= 0 {
		limit = constants.DefaultHotTermsLimit
	}
	if limit > constants.MaxHotTermsLimit {
		limit = constants.MaxHotTermsLimit
	}
	terms, err := s.repo.GetHotSearchTerms(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("获取热门搜索词失败: %w", err)
	}
	return terms, nil
}
