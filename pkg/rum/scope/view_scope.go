package scope

import (
	"fmt"
	"time"

	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

// ViewScope tracks one logical screen instance. It owns zero or more keyed
// ResourceScopes and at most one UserActionScope, merges command attributes
// cumulatively, and stamps every update event with a strictly increasing
// version so the backend can order out-of-order deliveries.
type ViewScope struct {
	deps     Dependencies
	parent   *SessionScope
	identity model.ViewIdentity
	viewID   string
	uri      string

	startTime  time.Time
	attributes map[string]string

	version        int64
	actionsCount   int64
	resourcesCount int64
	errorsCount    int64

	resourceScopes  map[string]*ResourceScope
	userActionScope *UserActionScope

	isInitialView   bool
	appStartEmitted bool
}

func NewViewScope(
	deps Dependencies,
	parent *SessionScope,
	command model.StartViewCommand,
	isInitialView bool,
) *ViewScope {
	return &ViewScope{
		deps:           deps,
		parent:         parent,
		identity:       command.Identity,
		viewID:         deps.IDGenerator.NewID(),
		uri:            command.Identity.URI(),
		startTime:      command.CommandTime(),
		attributes:     make(map[string]string),
		resourceScopes: make(map[string]*ResourceScope),
		isInitialView:  isInitialView,
	}
}

func (v *ViewScope) Identity() model.ViewIdentity { return v.identity }

func (v *ViewScope) ViewID() string { return v.viewID }

func (v *ViewScope) Context() model.Context {
	ctx := v.parent.baseContext()
	ctx.ActiveViewID = v.viewID
	ctx.ActiveViewURI = v.uri
	ctx.ViewAttributes = copyAttributes(v.attributes)
	if v.userActionScope != nil {
		ctx.ActiveActionID = v.userActionScope.ActionID()
	}
	return ctx
}

func (v *ViewScope) Process(command model.Command) bool {
	mergeAttributes(v.attributes, command.CommandAttributes())
	alive := true

	switch c := command.(type) {
	case model.StartViewCommand:
		if c.Identity.Equals(v.identity) {
			if v.isInitialView && !v.appStartEmitted {
				v.appStartEmitted = true
				v.actionsCount++
				v.emitApplicationStartAction(c.CommandTime())
			}
			v.emitViewUpdate(c.CommandTime())
		} else {
			// another view is starting; flush the final update before the
			// session removes this scope
			v.emitViewUpdate(c.CommandTime())
			alive = false
		}
	case model.StopViewCommand:
		if c.Identity.Equals(v.identity) {
			v.emitViewUpdate(c.CommandTime())
			alive = false
		}
	case model.StartResourceCommand:
		// a start under an already-active name replaces the tracked scope
		// silently; the replaced scope never emits
		v.resourceScopes[c.ResourceName] = NewResourceScope(v.deps, v, c)
	case model.StartActionCommand:
		v.replaceUserAction(NewUserActionScope(
			v.deps, v, c.ActionType, c.Name, true, c.CommandTime(), c.CommandAttributes(),
		))
	case model.AddActionCommand:
		v.replaceUserAction(NewUserActionScope(
			v.deps, v, c.ActionType, c.Name, false, c.CommandTime(), c.CommandAttributes(),
		))
	case model.AddErrorCommand:
		v.errorsCount++
		v.emitErrorEvent(c)
		v.emitViewUpdate(c.CommandTime())
	}

	hadUserAction := v.userActionScope != nil

	if name, ok := commandResourceName(command); ok {
		if resource, tracked := v.resourceScopes[name]; tracked {
			if !resource.Process(command) {
				delete(v.resourceScopes, name)
				v.resourcesCount++
				v.emitViewUpdate(command.CommandTime())
			}
		}
	}

	if v.userActionScope != nil && !v.userActionScope.Process(command) {
		v.userActionScope = nil
	}
	if hadUserAction && v.userActionScope == nil {
		v.actionsCount++
		v.emitViewUpdate(command.CommandTime())
	}

	return alive
}

// replaceUserAction installs a new action scope, unconditionally superseding
// any current one. The superseded scope never emits; last writer wins.
func (v *ViewScope) replaceUserAction(action *UserActionScope) {
	v.userActionScope = action
}

func (v *ViewScope) emitViewUpdate(commandTime time.Time) {
	v.version++
	ctx := v.Context()
	v.deps.EventOutput.WriteViewEvent(model.ViewEvent{
		// deterministic id keyed by view and version so replayed deliveries
		// collapse onto the same document
		Id:            fmt.Sprintf("%s-%d", v.viewID, v.version),
		EventType:     model.ViewEventType,
		ApplicationID: ctx.ApplicationID,
		SessionID:     ctx.SessionID,
		ViewID:        v.viewID,
		ViewURI:       v.uri,
		Timestamp:     commandTime,
		TimeSpent:     commandTime.Sub(v.startTime),
		ActionCount:   v.actionsCount,
		ResourceCount: v.resourcesCount,
		ErrorCount:    v.errorsCount,
		Version:       v.version,
		Attributes:    copyAttributes(v.attributes),
	})
}

func (v *ViewScope) emitApplicationStartAction(commandTime time.Time) {
	ctx := v.Context()
	v.deps.EventOutput.WriteActionEvent(model.ActionEvent{
		Id:            v.deps.IDGenerator.NewID(),
		EventType:     model.ActionEventType,
		ApplicationID: ctx.ApplicationID,
		SessionID:     ctx.SessionID,
		ViewID:        v.viewID,
		ViewURI:       v.uri,
		ActionID:      v.deps.IDGenerator.NewID(),
		ActionType:    model.ActionTypeApplicationStart,
		Timestamp:     commandTime,
		Attributes:    copyAttributes(v.attributes),
	})
}

func (v *ViewScope) emitErrorEvent(command model.AddErrorCommand) {
	ctx := v.Context()
	v.deps.EventOutput.WriteErrorEvent(model.ErrorEvent{
		Id:            v.deps.IDGenerator.NewID(),
		EventType:     model.ErrorEventType,
		ApplicationID: ctx.ApplicationID,
		SessionID:     ctx.SessionID,
		ViewID:        v.viewID,
		ViewURI:       v.uri,
		Message:       command.Message,
		Source:        command.Source,
		Timestamp:     command.CommandTime(),
		Attributes:    copyAttributes(v.attributes),
	})
}

func commandResourceName(command model.Command) (string, bool) {
	switch c := command.(type) {
	case model.StartResourceCommand:
		return c.ResourceName, true
	case model.StopResourceCommand:
		return c.ResourceName, true
	case model.StopResourceWithErrorCommand:
		return c.ResourceName, true
	}
	return "", false
}
