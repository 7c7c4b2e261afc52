package server

import (
	"fmt"
	"strings"
	"time"

	commonv1 "go.opentelemetry.io/proto/otlp/common/v1"
	logsv1 "go.opentelemetry.io/proto/otlp/logs/v1"

	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

// Attribute keys instrumentation uses to encode commands as OTLP log records.
const (
	CommandKindKey = "rum.command"

	ViewTokenKey     = "rum.view.token"
	ViewTypeNameKey  = "rum.view.type_name"
	ViewIsInitialKey = "rum.view.is_initial"

	ResourceNameKey       = "rum.resource.name"
	ResourceURLKey        = "rum.resource.url"
	ResourceMethodKey     = "rum.resource.method"
	ResourceStatusCodeKey = "rum.resource.status_code"
	ResourceKindKey       = "rum.resource.kind"

	ActionTypeKey = "rum.action.type"
	ActionNameKey = "rum.action.name"

	ErrorMessageKey = "rum.error.message"
	ErrorSourceKey  = "rum.error.source"

	// CustomAttributePrefix marks free-form attributes forwarded into the
	// command's attributes bag with the prefix stripped.
	CustomAttributePrefix = "rum.attr."
)

const (
	startViewKind             = "start_view"
	stopViewKind              = "stop_view"
	startResourceKind         = "start_resource"
	stopResourceKind          = "stop_resource"
	stopResourceWithErrorKind = "stop_resource_with_error"
	startActionKind           = "start_action"
	stopActionKind            = "stop_action"
	addActionKind             = "add_action"
	addErrorKind              = "add_error"
	keepAliveKind             = "keep_alive"
)

// CommandFromLogRecord decodes one instrumentation log record into a command.
func CommandFromLogRecord(record *logsv1.LogRecord) (model.Command, error) {
	attributes := indexAttributes(record.Attributes)

	base := model.CommandBase{
		Time:       time.Unix(0, int64(record.TimeUnixNano)),
		Attributes: customAttributes(attributes),
	}

	kind := stringValue(attributes, CommandKindKey)
	switch kind {
	case startViewKind:
		return model.StartViewCommand{
			CommandBase: base,
			Identity: model.ViewIdentity{
				Token:    uint64(intValue(attributes, ViewTokenKey)),
				TypeName: stringValue(attributes, ViewTypeNameKey),
			},
			IsInitialView: boolValue(attributes, ViewIsInitialKey),
		}, nil
	case stopViewKind:
		return model.StopViewCommand{
			CommandBase: base,
			Identity: model.ViewIdentity{
				Token:    uint64(intValue(attributes, ViewTokenKey)),
				TypeName: stringValue(attributes, ViewTypeNameKey),
			},
		}, nil
	case startResourceKind:
		return model.StartResourceCommand{
			CommandBase:  base,
			ResourceName: stringValue(attributes, ResourceNameKey),
			URL:          stringValue(attributes, ResourceURLKey),
			Method:       stringValue(attributes, ResourceMethodKey),
		}, nil
	case stopResourceKind:
		return model.StopResourceCommand{
			CommandBase:  base,
			ResourceName: stringValue(attributes, ResourceNameKey),
			StatusCode:   intValue(attributes, ResourceStatusCodeKey),
			Kind:         stringValue(attributes, ResourceKindKey),
		}, nil
	case stopResourceWithErrorKind:
		return model.StopResourceWithErrorCommand{
			CommandBase:  base,
			ResourceName: stringValue(attributes, ResourceNameKey),
			ErrorMessage: stringValue(attributes, ErrorMessageKey),
			ErrorSource:  stringValue(attributes, ErrorSourceKey),
			StatusCode:   intValue(attributes, ResourceStatusCodeKey),
		}, nil
	case startActionKind:
		return model.StartActionCommand{
			CommandBase: base,
			ActionType:  model.ActionType(stringValue(attributes, ActionTypeKey)),
			Name:        stringValue(attributes, ActionNameKey),
		}, nil
	case stopActionKind:
		return model.StopActionCommand{
			CommandBase: base,
			ActionType:  model.ActionType(stringValue(attributes, ActionTypeKey)),
			Name:        stringValue(attributes, ActionNameKey),
		}, nil
	case addActionKind:
		return model.AddActionCommand{
			CommandBase: base,
			ActionType:  model.ActionType(stringValue(attributes, ActionTypeKey)),
			Name:        stringValue(attributes, ActionNameKey),
		}, nil
	case addErrorKind:
		return model.AddErrorCommand{
			CommandBase: base,
			Message:     stringValue(attributes, ErrorMessageKey),
			Source:      stringValue(attributes, ErrorSourceKey),
		}, nil
	case keepAliveKind:
		return model.KeepAliveCommand{CommandBase: base}, nil
	}
	return nil, fmt.Errorf("unknown command kind %q", kind)
}

func indexAttributes(attributes []*commonv1.KeyValue) map[string]*commonv1.AnyValue {
	indexed := make(map[string]*commonv1.AnyValue, len(attributes))
	for _, attribute := range attributes {
		indexed[attribute.Key] = attribute.Value
	}
	return indexed
}

func customAttributes(attributes map[string]*commonv1.AnyValue) map[string]string {
	var custom map[string]string
	for key, value := range attributes {
		if !strings.HasPrefix(key, CustomAttributePrefix) {
			continue
		}
		if custom == nil {
			custom = make(map[string]string)
		}
		custom[strings.TrimPrefix(key, CustomAttributePrefix)] = value.GetStringValue()
	}
	return custom
}

func stringValue(attributes map[string]*commonv1.AnyValue, key string) string {
	if value, ok := attributes[key]; ok {
		return value.GetStringValue()
	}
	return ""
}

func intValue(attributes map[string]*commonv1.AnyValue, key string) int64 {
	if value, ok := attributes[key]; ok {
		return value.GetIntValue()
	}
	return 0
}

func boolValue(attributes map[string]*commonv1.AnyValue, key string) bool {
	if value, ok := attributes[key]; ok {
		return value.GetBoolValue()
	}
	return false
}
