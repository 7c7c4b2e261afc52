package event_bus

import (
	"encoding/json"
	"fmt"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

const (
	ViewUpdateTopic = "rum_view_update"
	ActionTopic     = "rum_action"
	ResourceTopic   = "rum_resource"
	ErrorTopic      = "rum_error"
)

// RumEventBus decouples the scope tree from the event sinks. Payloads travel
// as JSON so subscribers never share mutable state with the publisher.
type RumEventBus[EventType any] interface {
	Subscribe(topic string, handler func(event EventType) error, transactional bool) error
	Publish(topic string, event EventType) error
}

type RumEventBusImpl[EventType any] struct {
	eventBus EventBus.Bus
	logger   *zap.Logger
}

func NewRumEventBus[EventType any](
	eventBus EventBus.Bus,
	logger *zap.Logger,
) RumEventBus[EventType] {
	return &RumEventBusImpl[EventType]{
		eventBus: eventBus,
		logger:   logger,
	}
}

func (eb *RumEventBusImpl[EventType]) Subscribe(
	topic string,
	handler func(event EventType) error,
	transactional bool,
) error {
	err := eb.eventBus.SubscribeAsync(
		topic,
		func(arg string) {
			var event EventType
			err := json.Unmarshal([]byte(arg), &event)
			if err != nil {
				eb.logger.Error("Failed to unmarshal event during subscription of topic",
					zap.String("topic", topic),
					zap.Error(err),
				)
				return
			}
			err = handler(event)
			if err != nil {
				eb.logger.Error("Failed to handle event during subscription of topic",
					zap.String("topic", topic),
					zap.Error(err),
				)
			}
		},
		transactional,
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}
	return nil
}

func (eb *RumEventBusImpl[EventType]) Publish(
	topic string,
	event EventType,
) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event during publishing of topic %s: %w", topic, err)
	}
	eb.eventBus.Publish(topic, string(eventBytes))
	return nil
}
