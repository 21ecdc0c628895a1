package services

import (
	"context"
	"encoding/json"
	"time"

	"rapidjobs_backend/internal/logger"
	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/push"
	"rapidjobs_backend/internal/repositories"
)

// Effect is a side effect collected during a state mutation and dispatched
// only after the mutation has committed. Effects are best-effort: failures
// are logged and never surfaced to the caller.
type Effect interface {
	effect()
}

// PushEffect delivers a push notification. When RecipientID is set the
// notification is also persisted to that user's feed; broadcast pushes
// (RecipientID empty) are delivery-only.
type PushEffect struct {
	RecipientID  string
	DeviceTokens []string
	Type         string
	Title        string
	Message      string
	Data         map[string]interface{}
}

// EventEffect emits a websocket event, either to one room or to every
// connected client when Room is empty.
type EventEffect struct {
	Room    string
	Event   string
	Payload interface{}
}

func (PushEffect) effect()  {}
func (EventEffect) effect() {}

// EventChannel fans events out to connected websocket clients.
type EventChannel interface {
	Emit(event string, payload interface{})
	EmitTo(room string, event string, payload interface{})
}

// EffectDispatcher drains a batch of effects asynchronously.
type EffectDispatcher interface {
	Dispatch(effects []Effect)
}

type dispatcher struct {
	notifications repositories.NotificationRepository
	gateway       push.Gateway
	events        EventChannel
	timeout       time.Duration
}

func NewDispatcher(notifications repositories.NotificationRepository, gateway push.Gateway, events EventChannel) EffectDispatcher {
	return &dispatcher{
		notifications: notifications,
		gateway:       gateway,
		events:        events,
		timeout:       10 * time.Second,
	}
}

func (d *dispatcher) Dispatch(effects []Effect) {
	if len(effects) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		for _, e := range effects {
			switch eff := e.(type) {
			case PushEffect:
				d.handlePush(ctx, eff)
			case EventEffect:
				d.handleEvent(eff)
			}
		}
	}()
}

func (d *dispatcher) handlePush(ctx context.Context, eff PushEffect) {
	if eff.RecipientID != "" {
		notification := &models.Notification{
			UserID:  eff.RecipientID,
			Type:    eff.Type,
			Title:   eff.Title,
			Message: eff.Message,
		}
		if len(eff.Data) > 0 {
			if raw, err := json.Marshal(eff.Data); err == nil {
				notification.Data = raw
			}
		}
		if err := d.notifications.Create(ctx, notification); err != nil {
			logger.WithError(err).Error("failed to persist notification", "user_id", eff.RecipientID, "type", eff.Type)
		}
	}

	if len(eff.DeviceTokens) == 0 {
		return
	}
	if err := d.gateway.Send(ctx, eff.DeviceTokens, eff.Title, eff.Message, eff.Data); err != nil {
		logger.WithError(err).Error("push delivery failed", "type", eff.Type, "tokens", len(eff.DeviceTokens))
	}
}

func (d *dispatcher) handleEvent(eff EventEffect) {
	if d.events == nil {
		return
	}
	if eff.Room == "" {
		d.events.Emit(eff.Event, eff.Payload)
		return
	}
	d.events.EmitTo(eff.Room, eff.Event, eff.Payload)
}
