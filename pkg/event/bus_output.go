package event

import (
	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/beacon-mobile/beacon/pkg/event_bus"
	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

// BusOutput publishes emitted events on the in-process event bus, one topic
// per event type. Sinks subscribe to the topics they care about.
type BusOutput struct {
	viewBus     event_bus.RumEventBus[model.ViewEvent]
	actionBus   event_bus.RumEventBus[model.ActionEvent]
	resourceBus event_bus.RumEventBus[model.ResourceEvent]
	errorBus    event_bus.RumEventBus[model.ErrorEvent]
	logger      *zap.Logger
}

func NewBusOutput(bus EventBus.Bus, logger *zap.Logger) *BusOutput {
	return &BusOutput{
		viewBus:     event_bus.NewRumEventBus[model.ViewEvent](bus, logger),
		actionBus:   event_bus.NewRumEventBus[model.ActionEvent](bus, logger),
		resourceBus: event_bus.NewRumEventBus[model.ResourceEvent](bus, logger),
		errorBus:    event_bus.NewRumEventBus[model.ErrorEvent](bus, logger),
		logger:      logger,
	}
}

func (o *BusOutput) WriteViewEvent(event model.ViewEvent) {
	if err := o.viewBus.Publish(event_bus.ViewUpdateTopic, event); err != nil {
		o.logger.Error("Failed to publish view event", zap.Error(err))
	}
}

func (o *BusOutput) WriteActionEvent(event model.ActionEvent) {
	if err := o.actionBus.Publish(event_bus.ActionTopic, event); err != nil {
		o.logger.Error("Failed to publish action event", zap.Error(err))
	}
}

func (o *BusOutput) WriteResourceEvent(event model.ResourceEvent) {
	if err := o.resourceBus.Publish(event_bus.ResourceTopic, event); err != nil {
		o.logger.Error("Failed to publish resource event", zap.Error(err))
	}
}

func (o *BusOutput) WriteErrorEvent(event model.ErrorEvent) {
	if err := o.errorBus.Publish(event_bus.ErrorTopic, event); err != nil {
		o.logger.Error("Failed to publish error event", zap.Error(err))
	}
}
