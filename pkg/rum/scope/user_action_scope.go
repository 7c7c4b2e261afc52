package scope

import (
	"time"

	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

const (
	// DiscreteActionCompletionWindow is how long after its last activity a
	// discrete action keeps attributing resource and error completions.
	DiscreteActionCompletionWindow = 100 * time.Millisecond
	// ContinuousActionIdleTimeout ends a continuous action that saw no
	// qualifying activity. Evaluated while processing the next command; the
	// core runs no background timers.
	ContinuousActionIdleTimeout = 10 * time.Second
)

// UserActionScope tracks one in-flight user interaction. At most one exists
// per view; starting a new action replaces it without flushing an event for
// the superseded one. Exactly one action event is emitted on termination.
type UserActionScope struct {
	deps          Dependencies
	parent        *ViewScope
	actionID      string
	actionType    model.ActionType
	name          string
	continuous    bool
	startTime     time.Time
	lastActivity  time.Time
	resourceCount int64
	errorCount    int64
	attributes    map[string]string
}

func NewUserActionScope(
	deps Dependencies,
	parent *ViewScope,
	actionType model.ActionType,
	name string,
	continuous bool,
	startTime time.Time,
	attributes map[string]string,
) *UserActionScope {
	merged := make(map[string]string)
	mergeAttributes(merged, attributes)
	return &UserActionScope{
		deps:         deps,
		parent:       parent,
		actionID:     deps.IDGenerator.NewID(),
		actionType:   actionType,
		name:         name,
		continuous:   continuous,
		startTime:    startTime,
		lastActivity: startTime,
		attributes:   merged,
	}
}

func (a *UserActionScope) ActionID() string { return a.actionID }

func (a *UserActionScope) Context() model.Context {
	return a.parent.Context()
}

func (a *UserActionScope) Process(command model.Command) bool {
	if a.expired(command.CommandTime()) {
		a.emitActionEvent(a.lastActivity)
		return false
	}
	switch c := command.(type) {
	case model.StopActionCommand:
		if a.continuous {
			mergeAttributes(a.attributes, c.CommandAttributes())
			a.emitActionEvent(c.CommandTime())
			return false
		}
	case model.StopResourceCommand:
		a.resourceCount++
		a.lastActivity = c.CommandTime()
	case model.StopResourceWithErrorCommand:
		a.errorCount++
		a.lastActivity = c.CommandTime()
	case model.AddErrorCommand:
		a.errorCount++
		a.lastActivity = c.CommandTime()
	}
	return true
}

func (a *UserActionScope) expired(now time.Time) bool {
	window := DiscreteActionCompletionWindow
	if a.continuous {
		window = ContinuousActionIdleTimeout
	}
	return now.Sub(a.lastActivity) >= window
}

func (a *UserActionScope) emitActionEvent(endTime time.Time) {
	ctx := a.parent.Context()
	a.deps.EventOutput.WriteActionEvent(model.ActionEvent{
		Id:            a.deps.IDGenerator.NewID(),
		EventType:     model.ActionEventType,
		ApplicationID: ctx.ApplicationID,
		SessionID:     ctx.SessionID,
		ViewID:        ctx.ActiveViewID,
		ViewURI:       ctx.ActiveViewURI,
		ActionID:      a.actionID,
		ActionType:    a.actionType,
		Name:          a.name,
		Timestamp:     a.startTime,
		LoadingTime:   endTime.Sub(a.startTime),
		ResourceCount: a.resourceCount,
		ErrorCount:    a.errorCount,
		Attributes:    copyAttributes(a.attributes),
	})
}
