package models

import "time"

const ContentDeleteOperation = "delete"

// ContentUpsertEvent 内容新增/更新事件，索引同步消费者据此写入内容索引。
type ContentUpsertEvent struct {
	EventID string          `json:"eventId"`
	Content ContentDocument `json:"content"`
}

// ContentDeleteEvent 内容删除事件。控制台在确认删除成功后发布。
type ContentDeleteEvent struct {
	EventID    string    `json:"eventId"`
	Operation  string    `json:"operation"` // 固定为 "delete"
	CtntNo     int64     `json:"ctntNo"`
	ViewID     string    `json:"viewId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
