package sink

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/beacon-mobile/beacon/pkg/cache"
	"github.com/beacon-mobile/beacon/pkg/event_bus"
	"github.com/beacon-mobile/beacon/pkg/rum/model"
	"github.com/beacon-mobile/beacon/pkg/write_buffer"
)

// ElasticsearchSink drains the event bus into the bulk write buffer. View
// updates pass through a version guard first: the bus delivers at least once,
// and the guard drops any update whose version is not strictly newer than the
// last one accepted for that view.
type ElasticsearchSink struct {
	versionGuard cache.WriteBehindCache[model.ViewEvent]
	buffer       write_buffer.EventWriteBuffer[any]
	logger       *zap.Logger
}

func NewElasticsearchSink(
	versionGuard cache.WriteBehindCache[model.ViewEvent],
	buffer write_buffer.EventWriteBuffer[any],
	logger *zap.Logger,
) *ElasticsearchSink {
	return &ElasticsearchSink{
		versionGuard: versionGuard,
		buffer:       buffer,
		logger:       logger,
	}
}

func (s *ElasticsearchSink) Start(bus EventBus.Bus) error {
	viewBus := event_bus.NewRumEventBus[model.ViewEvent](bus, s.logger)
	if err := viewBus.Subscribe(event_bus.ViewUpdateTopic, s.handleViewEvent, true); err != nil {
		return fmt.Errorf("failed to subscribe to view updates: %w", err)
	}
	actionBus := event_bus.NewRumEventBus[model.ActionEvent](bus, s.logger)
	if err := actionBus.Subscribe(event_bus.ActionTopic, s.handleActionEvent, true); err != nil {
		return fmt.Errorf("failed to subscribe to actions: %w", err)
	}
	resourceBus := event_bus.NewRumEventBus[model.ResourceEvent](bus, s.logger)
	if err := resourceBus.Subscribe(event_bus.ResourceTopic, s.handleResourceEvent, true); err != nil {
		return fmt.Errorf("failed to subscribe to resources: %w", err)
	}
	errorBus := event_bus.NewRumEventBus[model.ErrorEvent](bus, s.logger)
	if err := errorBus.Subscribe(event_bus.ErrorTopic, s.handleErrorEvent, true); err != nil {
		return fmt.Errorf("failed to subscribe to errors: %w", err)
	}
	return nil
}

func (s *ElasticsearchSink) handleViewEvent(event model.ViewEvent) error {
	last, err := s.versionGuard.Get(event.ViewID)
	if err == nil && len(last) > 0 && last[len(last)-1].Version >= event.Version {
		s.logger.Debug("Dropping stale view update",
			zap.String("view_id", event.ViewID),
			zap.Int64("version", event.Version),
		)
		return nil
	}
	if err := s.versionGuard.Put(event.ViewID, []model.ViewEvent{event}); err != nil {
		s.logger.Warn("Failed to track view version", zap.Error(err))
	}
	s.buffer.WriteToBuffer([]any{event})
	return nil
}

func (s *ElasticsearchSink) handleActionEvent(event model.ActionEvent) error {
	s.buffer.WriteToBuffer([]any{event})
	return nil
}

func (s *ElasticsearchSink) handleResourceEvent(event model.ResourceEvent) error {
	s.buffer.WriteToBuffer([]any{event})
	return nil
}

func (s *ElasticsearchSink) handleErrorEvent(event model.ErrorEvent) error {
	s.buffer.WriteToBuffer([]any{event})
	return nil
}
