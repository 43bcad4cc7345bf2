package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"main/model"
	"main/repository"
	"main/utils"
)

// BusTransport is one way of pushing an event envelope to a topic. The
// publisher tries its primary transport first and falls back to the audit
// table; callers never learn which path succeeded.
type BusTransport interface {
	Publish(ctx context.Context, topic string, message []byte) error
}

// RedisTransport publishes envelopes to Redis pub/sub channels.
type RedisTransport struct {
	client *redis.Client
}

func NewRedisTransport(addr, password string, db int) *RedisTransport {
	return &RedisTransport{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (t *RedisTransport) Publish(ctx context.Context, topic string, message []byte) error {
	return t.client.Publish(ctx, topic, message).Err()
}

func (t *RedisTransport) Close() error {
	return t.client.Close()
}

// EventEnvelope wraps every published payload with identity and timing
// metadata. The envelope is built before any transport attempt.
type EventEnvelope struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// EventPublisher records a structured event for each mutating operation.
// Delivery is best effort: a nil transport or a failed publish falls back
// to an EventLog row, a nil event repo drops the event silently. Publish
// never propagates an error to its caller.
type EventPublisher struct {
	transport BusTransport          // nil when the bus is disabled
	events    *repository.EventRepo // nil when no persistence fallback exists
	busWait   time.Duration
}

func NewEventPublisher(transport BusTransport, events *repository.EventRepo) *EventPublisher {
	return &EventPublisher{
		transport: transport,
		events:    events,
		busWait:   5 * time.Second,
	}
}

// Publish builds the envelope, attempts the bus, then the audit table.
// It always returns the generated event id.
func (p *EventPublisher) Publish(ctx context.Context, eventType, topic string, payload interface{}, taskID *uint, userID *string) string {
	envelope := EventEnvelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Data:      payload,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("event %s: marshal failed: %v", eventType, err)
		utils.TrackEventOutcome("dropped")
		return envelope.EventID
	}

	if p.transport != nil {
		busCtx, cancel := context.WithTimeout(ctx, p.busWait)
		err := p.transport.Publish(busCtx, topic, body)
		cancel()
		if err == nil {
			utils.TrackEventOutcome("bus")
			return envelope.EventID
		}
		log.Printf("event %s: bus publish failed, falling back to event log: %v", eventType, err)
		utils.TrackError("events", "bus_publish_failed")
	}

	if p.events == nil {
		// Accepted gap: no bus and no persistence handle.
		log.Printf("event %s: no event log available, event dropped", eventType)
		utils.TrackEventOutcome("dropped")
		return envelope.EventID
	}

	entry := &model.EventLog{
		EventID:   envelope.EventID,
		EventType: eventType,
		Topic:     topic,
		TaskID:    taskID,
		UserID:    userID,
		Payload:   string(body),
	}
	if err := p.events.Insert(ctx, entry); err != nil {
		log.Printf("event %s: event log write failed: %v", eventType, err)
		utils.TrackEventOutcome("dropped")
		return envelope.EventID
	}
	utils.TrackEventOutcome("fallback")
	return envelope.EventID
}

func (p *EventPublisher) PublishTaskCreated(ctx context.Context, task *model.Task) string {
	return p.Publish(ctx, model.EventTaskCreated, model.TopicTaskEvents, map[string]interface{}{
		"task_id":       task.ID,
		"user_id":       task.UserID,
		"title":         task.Title,
		"description":   task.Description,
		"priority":      task.Priority,
		"due_date":      task.DueDate,
		"reminder_time": task.ReminderTime,
		"is_recurring":  task.IsRecurring,
	}, &task.ID, &task.UserID)
}

func (p *EventPublisher) PublishTaskUpdated(ctx context.Context, taskID uint, userID string, changes map[string]interface{}) string {
	return p.Publish(ctx, model.EventTaskUpdated, model.TopicTaskUpdates, map[string]interface{}{
		"task_id": taskID,
		"user_id": userID,
		"changes": changes,
	}, &taskID, &userID)
}

func (p *EventPublisher) PublishTaskCompleted(ctx context.Context, taskID uint, userID string, completed bool) string {
	return p.Publish(ctx, model.EventTaskCompleted, model.TopicTaskEvents, map[string]interface{}{
		"task_id":   taskID,
		"user_id":   userID,
		"completed": completed,
	}, &taskID, &userID)
}

func (p *EventPublisher) PublishTaskDeleted(ctx context.Context, taskID uint, userID string) string {
	return p.Publish(ctx, model.EventTaskDeleted, model.TopicTaskEvents, map[string]interface{}{
		"task_id": taskID,
		"user_id": userID,
	}, &taskID, &userID)
}

func (p *EventPublisher) PublishReminderScheduled(ctx context.Context, taskID uint, userID string, reminderTime time.Time) string {
	return p.Publish(ctx, model.EventReminderScheduled, model.TopicReminders, map[string]interface{}{
		"task_id":       taskID,
		"user_id":       userID,
		"reminder_time": reminderTime,
	}, &taskID, &userID)
}
