package services

import (
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ActivityEvent 投递到 MQ 的动态消息，供下游（通知、统计）消费
type ActivityEvent struct {
	Type      string    `json:"type"` // post.created / post.liked / post.commented
	UserID    uint      `json:"user_id"`
	PostID    uint      `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EventPublisher 把动态写入 RabbitMQ。channel 为 nil 时（未部署 MQ）
// 所有发布都是空操作；发布失败只记日志，不影响请求主流程。
type EventPublisher struct {
	ch    *amqp.Channel
	queue string
}

func NewEventPublisher(ch *amqp.Channel, queue string) *EventPublisher {
	return &EventPublisher{ch: ch, queue: queue}
}

func (p *EventPublisher) Publish(eventType string, userID, postID uint) {
	if p == nil || p.ch == nil {
		return
	}

	event := ActivityEvent{
		Type:      eventType,
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal activity event: %v", err)
		return
	}

	err = p.ch.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Printf("failed to publish activity event: %v", err)
	}
}
