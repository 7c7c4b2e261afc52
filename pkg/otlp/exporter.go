package otlp

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	protoLogs "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	commonv1 "go.opentelemetry.io/proto/otlp/common/v1"
	logsv1 "go.opentelemetry.io/proto/otlp/logs/v1"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/beacon-mobile/beacon/pkg/event_bus"
	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

const exportTimeout = 10 * time.Second
const scopeName = "beacon-rum"

// Exporter forwards emitted events to a downstream OTLP collector as log
// records, one record per event.
type Exporter struct {
	client protoLogs.LogsServiceClient
	logger *zap.Logger
}

func NewExporter(conn *grpc.ClientConn, logger *zap.Logger) *Exporter {
	return &Exporter{
		client: protoLogs.NewLogsServiceClient(conn),
		logger: logger,
	}
}

func (e *Exporter) Start(bus EventBus.Bus) error {
	viewBus := event_bus.NewRumEventBus[model.ViewEvent](bus, e.logger)
	if err := viewBus.Subscribe(event_bus.ViewUpdateTopic, e.exportViewEvent, false); err != nil {
		return fmt.Errorf("failed to subscribe to view updates: %w", err)
	}
	actionBus := event_bus.NewRumEventBus[model.ActionEvent](bus, e.logger)
	if err := actionBus.Subscribe(event_bus.ActionTopic, e.exportActionEvent, false); err != nil {
		return fmt.Errorf("failed to subscribe to actions: %w", err)
	}
	resourceBus := event_bus.NewRumEventBus[model.ResourceEvent](bus, e.logger)
	if err := resourceBus.Subscribe(event_bus.ResourceTopic, e.exportResourceEvent, false); err != nil {
		return fmt.Errorf("failed to subscribe to resources: %w", err)
	}
	errorBus := event_bus.NewRumEventBus[model.ErrorEvent](bus, e.logger)
	if err := errorBus.Subscribe(event_bus.ErrorTopic, e.exportErrorEvent, false); err != nil {
		return fmt.Errorf("failed to subscribe to errors: %w", err)
	}
	return nil
}

func (e *Exporter) exportViewEvent(event model.ViewEvent) error {
	attributes := []*commonv1.KeyValue{
		stringAttribute("rum.application_id", event.ApplicationID),
		stringAttribute("rum.session_id", event.SessionID),
		stringAttribute("rum.view.id", event.ViewID),
		stringAttribute("rum.view.uri", event.ViewURI),
		intAttribute("rum.view.time_spent", int64(event.TimeSpent)),
		intAttribute("rum.view.action_count", event.ActionCount),
		intAttribute("rum.view.resource_count", event.ResourceCount),
		intAttribute("rum.view.error_count", event.ErrorCount),
		intAttribute("rum.view.version", event.Version),
	}
	attributes = appendCustomAttributes(attributes, event.Attributes)
	return e.export(model.ViewEventType, event.Timestamp, attributes)
}

func (e *Exporter) exportActionEvent(event model.ActionEvent) error {
	attributes := []*commonv1.KeyValue{
		stringAttribute("rum.application_id", event.ApplicationID),
		stringAttribute("rum.session_id", event.SessionID),
		stringAttribute("rum.view.id", event.ViewID),
		stringAttribute("rum.action.id", event.ActionID),
		stringAttribute("rum.action.type", string(event.ActionType)),
		stringAttribute("rum.action.name", event.Name),
		intAttribute("rum.action.loading_time", int64(event.LoadingTime)),
		intAttribute("rum.action.resource_count", event.ResourceCount),
		intAttribute("rum.action.error_count", event.ErrorCount),
	}
	attributes = appendCustomAttributes(attributes, event.Attributes)
	return e.export(model.ActionEventType, event.Timestamp, attributes)
}

func (e *Exporter) exportResourceEvent(event model.ResourceEvent) error {
	attributes := []*commonv1.KeyValue{
		stringAttribute("rum.application_id", event.ApplicationID),
		stringAttribute("rum.session_id", event.SessionID),
		stringAttribute("rum.view.id", event.ViewID),
		stringAttribute("rum.resource.name", event.ResourceName),
		stringAttribute("rum.resource.url", event.URL),
		stringAttribute("rum.resource.method", event.Method),
		intAttribute("rum.resource.status_code", event.StatusCode),
		intAttribute("rum.resource.duration", int64(event.Duration)),
	}
	attributes = appendCustomAttributes(attributes, event.Attributes)
	return e.export(model.ResourceEventType, event.Timestamp, attributes)
}

func (e *Exporter) exportErrorEvent(event model.ErrorEvent) error {
	attributes := []*commonv1.KeyValue{
		stringAttribute("rum.application_id", event.ApplicationID),
		stringAttribute("rum.session_id", event.SessionID),
		stringAttribute("rum.view.id", event.ViewID),
		stringAttribute("rum.error.message", event.Message),
		stringAttribute("rum.error.source", event.Source),
		stringAttribute("rum.resource.name", event.ResourceName),
	}
	attributes = appendCustomAttributes(attributes, event.Attributes)
	return e.export(model.ErrorEventType, event.Timestamp, attributes)
}

func (e *Exporter) export(
	eventType model.EventType,
	timestamp time.Time,
	attributes []*commonv1.KeyValue,
) error {
	exportCtx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()
	_, err := e.client.Export(exportCtx, &protoLogs.ExportLogsServiceRequest{
		ResourceLogs: []*logsv1.ResourceLogs{
			{
				ScopeLogs: []*logsv1.ScopeLogs{
					{
						Scope: &commonv1.InstrumentationScope{Name: scopeName},
						LogRecords: []*logsv1.LogRecord{
							{
								TimeUnixNano: uint64(timestamp.UnixNano()),
								Body: &commonv1.AnyValue{
									Value: &commonv1.AnyValue_StringValue{StringValue: string(eventType)},
								},
								Attributes: attributes,
							},
						},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to export %s event: %w", eventType, err)
	}
	return nil
}

func stringAttribute(key string, value string) *commonv1.KeyValue {
	return &commonv1.KeyValue{
		Key:   key,
		Value: &commonv1.AnyValue{Value: &commonv1.AnyValue_StringValue{StringValue: value}},
	}
}

func intAttribute(key string, value int64) *commonv1.KeyValue {
	return &commonv1.KeyValue{
		Key:   key,
		Value: &commonv1.AnyValue{Value: &commonv1.AnyValue_IntValue{IntValue: value}},
	}
}

func appendCustomAttributes(
	attributes []*commonv1.KeyValue,
	custom map[string]string,
) []*commonv1.KeyValue {
	for key, value := range custom {
		attributes = append(attributes, stringAttribute("rum.attr."+key, value))
	}
	return attributes
}
