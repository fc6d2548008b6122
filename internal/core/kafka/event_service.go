package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"github.com/Xushengqwer/post_admin/internal/models"
	"github.com/Xushengqwer/post_admin/internal/repositories"
	"go.uber.org/zap"
)

var (
	ErrInvalidContentID   = errors.New("无效的文章编号")
	ErrEmptyTitle         = errors.New("文章标题不能为空")
	ErrInvalidEventFormat = errors.New("无效的事件格式")
)

// EventService 把内容事件同步到内容索引。
type EventService struct {
	contentRepo repositories.ContentRepository
	logger      *core.ZapLogger
}

func NewEventService(contentRepo repositories.ContentRepository, logger *core.ZapLogger) *EventService {
	if contentRepo == nil {
		panic("NewEventService: ContentRepository 不能为 nil")
	}
	if logger == nil {
		panic("NewEventService: logger 不能为 nil")
	}
	return &EventService{contentRepo: contentRepo, logger: logger}
}

// HandleContentUpsert 校验后写入索引。
func (s *EventService) HandleContentUpsert(ctx context.Context, event *models.ContentUpsertEvent) error {
	doc := event.Content
	if doc.CtntNo <= 0 {
		return fmt.Errorf("处理内容更新事件 %s 失败，编号 %d: %w", event.EventID, doc.CtntNo, ErrInvalidContentID)
	}
	if strings.TrimSpace(doc.Title) == "" {
		return fmt.Errorf("处理内容更新事件 %s 失败，编号 %d: %w", event.EventID, doc.CtntNo, ErrEmptyTitle)
	}
	if doc.UpdDttm.IsZero() {
		doc.UpdDttm = doc.InpDttm
	}

	if err := s.contentRepo.IndexContent(ctx, doc); err != nil {
		return fmt.Errorf("索引文章 %d 失败: %w", doc.CtntNo, err)
	}
	s.logger.Info("内容更新事件处理完成", zap.String("event_id", event.EventID), zap.Int64("ctnt_no", doc.CtntNo))
	return nil
}

func (s *EventService) HandleContentDelete(ctx context.Context, event *models.ContentDeleteEvent) error {
	if event.Operation != "" && event.Operation != models.ContentDeleteOperation {
		return fmt.Errorf("未知操作 %q: %w", event.Operation, ErrInvalidEventFormat)
	}
	if event.CtntNo <= 0 {
		return fmt.Errorf("处理内容删除事件 %s 失败，编号 %d: %w", event.EventID, event.CtntNo, ErrInvalidContentID)
	}
	if err := s.contentRepo.DeleteContent(ctx, event.CtntNo); err != nil {
		return fmt.Errorf("从索引删除文章 %d 失败: %w", event.CtntNo, err)
	}
	s.logger.Info("内容删除事件处理完成", zap.String("event_id", event.EventID), zap.Int64("ctnt_no", event.CtntNo))
	return nil
}
