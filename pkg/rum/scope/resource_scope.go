package scope

import (
	"time"

	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

// ResourceScope tracks one in-flight resource load. It is terminal the
// instant it processes its matching stop command: exactly one resource event
// (or one error event when the stop carries failure information) is emitted
// and Process returns false.
type ResourceScope struct {
	deps       Dependencies
	parent     *ViewScope
	name       string
	url        string
	method     string
	startTime  time.Time
	attributes map[string]string
}

func NewResourceScope(
	deps Dependencies,
	parent *ViewScope,
	command model.StartResourceCommand,
) *ResourceScope {
	attributes := make(map[string]string)
	mergeAttributes(attributes, command.CommandAttributes())
	return &ResourceScope{
		deps:       deps,
		parent:     parent,
		name:       command.ResourceName,
		url:        command.URL,
		method:     command.Method,
		startTime:  command.CommandTime(),
		attributes: attributes,
	}
}

func (r *ResourceScope) Context() model.Context {
	return r.parent.Context()
}

func (r *ResourceScope) Process(command model.Command) bool {
	switch c := command.(type) {
	case model.StopResourceCommand:
		if c.ResourceName == r.name {
			mergeAttributes(r.attributes, c.CommandAttributes())
			r.emitResourceEvent(c)
			return false
		}
	case model.StopResourceWithErrorCommand:
		if c.ResourceName == r.name {
			mergeAttributes(r.attributes, c.CommandAttributes())
			r.emitErrorEvent(c)
			return false
		}
	}
	return true
}

func (r *ResourceScope) emitResourceEvent(command model.StopResourceCommand) {
	ctx := r.Context()
	r.deps.EventOutput.WriteResourceEvent(model.ResourceEvent{
		Id:            r.deps.IDGenerator.NewID(),
		EventType:     model.ResourceEventType,
		ApplicationID: ctx.ApplicationID,
		SessionID:     ctx.SessionID,
		ViewID:        ctx.ActiveViewID,
		ViewURI:       ctx.ActiveViewURI,
		ResourceName:  r.name,
		URL:           r.url,
		Method:        r.method,
		StatusCode:    command.StatusCode,
		Kind:          command.Kind,
		Timestamp:     r.startTime,
		Duration:      command.CommandTime().Sub(r.startTime),
		Attributes:    copyAttributes(r.attributes),
	})
}

func (r *ResourceScope) emitErrorEvent(command model.StopResourceWithErrorCommand) {
	ctx := r.Context()
	r.deps.EventOutput.WriteErrorEvent(model.ErrorEvent{
		Id:            r.deps.IDGenerator.NewID(),
		EventType:     model.ErrorEventType,
		ApplicationID: ctx.ApplicationID,
		SessionID:     ctx.SessionID,
		ViewID:        ctx.ActiveViewID,
		ViewURI:       ctx.ActiveViewURI,
		Message:       command.ErrorMessage,
		Source:        command.ErrorSource,
		ResourceName:  r.name,
		StatusCode:    command.StatusCode,
		Timestamp:     command.CommandTime(),
		Attributes:    copyAttributes(r.attributes),
	})
}
