package book

import (
	"context"
	"time"
)

// EventType 图书变更事件类型(同时作为routing key)
type EventType string

const (
	EventCreated EventType = "book.created"
	EventUpdated EventType = "book.updated"
	EventDeleted EventType = "book.deleted"
)

// Event 图书变更事件
type Event struct {
	Type       EventType `json:"type"`
	BookID     uint      `json:"book_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}

// newEvent 根据图书构造事件
func newEvent(t EventType, b *Book) Event {
	return Event{
		Type:       t,
		BookID:     b.ID,
		Title:      b.Title,
		OccurredAt: time.Now(),
	}
}

// EventPublisher 事件发布接口
// 发布是尽力而为的:返回的错误只记录日志,不影响变更结果
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher 不发布任何事件(未启用消息队列时使用)
type NopPublisher struct{}

// Publish 空操作
func (NopPublisher) Publish(context.Context, Event) error { return nil }
