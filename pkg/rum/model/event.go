package model

import "time"

type EventType string

const (
	ViewEventType     EventType = "view"
	ActionEventType   EventType = "action"
	ResourceEventType EventType = "resource"
	ErrorEventType    EventType = "error"
)

// ViewEvent is one view-update emission. Version strictly increases across
// every emission for the same view so the backend can deduplicate and order
// out-of-order deliveries.
type ViewEvent struct {
	Id            string            `json:"_id,omitempty"`
	EventType     EventType         `json:"event_type"`
	ApplicationID string            `json:"application_id"`
	SessionID     string            `json:"session_id"`
	ViewID        string            `json:"view_id"`
	ViewURI       string            `json:"view_uri"`
	Timestamp     time.Time         `json:"timestamp"`
	TimeSpent     time.Duration     `json:"time_spent"`
	ActionCount   int64             `json:"action_count"`
	ResourceCount int64             `json:"resource_count"`
	ErrorCount    int64             `json:"error_count"`
	Version       int64             `json:"version"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// ActionEvent is the single terminal emission of one user action.
type ActionEvent struct {
	Id            string            `json:"_id,omitempty"`
	EventType     EventType         `json:"event_type"`
	ApplicationID string            `json:"application_id"`
	SessionID     string            `json:"session_id"`
	ViewID        string            `json:"view_id"`
	ViewURI       string            `json:"view_uri"`
	ActionID      string            `json:"action_id"`
	ActionType    ActionType        `json:"action_type"`
	Name          string            `json:"name,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	LoadingTime   time.Duration     `json:"loading_time"`
	ResourceCount int64             `json:"resource_count"`
	ErrorCount    int64             `json:"error_count"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// ResourceEvent is the single terminal emission of one completed resource.
type ResourceEvent struct {
	Id            string            `json:"_id,omitempty"`
	EventType     EventType         `json:"event_type"`
	ApplicationID string            `json:"application_id"`
	SessionID     string            `json:"session_id"`
	ViewID        string            `json:"view_id"`
	ViewURI       string            `json:"view_uri"`
	ResourceName  string            `json:"resource_name"`
	URL           string            `json:"url"`
	Method        string            `json:"method"`
	StatusCode    int64             `json:"status_code,omitempty"`
	Kind          string            `json:"kind,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	Duration      time.Duration     `json:"duration"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// ErrorEvent covers both free-standing errors and failed resources.
type ErrorEvent struct {
	Id            string            `json:"_id,omitempty"`
	EventType     EventType         `json:"event_type"`
	ApplicationID string            `json:"application_id"`
	SessionID     string            `json:"session_id"`
	ViewID        string            `json:"view_id"`
	ViewURI       string            `json:"view_uri"`
	Message       string            `json:"message"`
	Source        string            `json:"source,omitempty"`
	ResourceName  string            `json:"resource_name,omitempty"`
	StatusCode    int64             `json:"status_code,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}
