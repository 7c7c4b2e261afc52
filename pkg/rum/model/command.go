package model

import "time"

// ViewIdentity is the opaque handle the instrumentation layer mints for one
// concrete screen instance. Two commands refer to the same screen iff their
// tokens are equal. TypeName is the best-effort runtime name of the screen
// controller and becomes the view URI; it may be empty.
type ViewIdentity struct {
	Token    uint64
	TypeName string
}

func (v ViewIdentity) Equals(other ViewIdentity) bool {
	return v.Token == other.Token
}

// URI derives the human-readable view label. The token stays authoritative.
func (v ViewIdentity) URI() string {
	return v.TypeName
}

type ActionType string

const (
	ActionTypeTap              ActionType = "tap"
	ActionTypeScroll           ActionType = "scroll"
	ActionTypeSwipe            ActionType = "swipe"
	ActionTypeCustom           ActionType = "custom"
	ActionTypeApplicationStart ActionType = "application_start"
)

// Command is one immutable runtime event pushed by the instrumentation layer.
// The set of implementations is closed: scopes dispatch on the concrete type.
type Command interface {
	CommandTime() time.Time
	CommandAttributes() map[string]string
}

// CommandBase carries the fields shared by every command kind.
type CommandBase struct {
	Time       time.Time
	Attributes map[string]string
}

func (c CommandBase) CommandTime() time.Time               { return c.Time }
func (c CommandBase) CommandAttributes() map[string]string { return c.Attributes }

type StartViewCommand struct {
	CommandBase
	Identity ViewIdentity
	// IsInitialView marks the first screen the application ever shows.
	IsInitialView bool
}

type StopViewCommand struct {
	CommandBase
	Identity ViewIdentity
}

type StartResourceCommand struct {
	CommandBase
	ResourceName string
	URL          string
	Method       string
}

type StopResourceCommand struct {
	CommandBase
	ResourceName string
	StatusCode   int64
	Kind         string
}

type StopResourceWithErrorCommand struct {
	CommandBase
	ResourceName string
	ErrorMessage string
	ErrorSource  string
	StatusCode   int64
}

type StartActionCommand struct {
	CommandBase
	ActionType ActionType
	Name       string
}

type StopActionCommand struct {
	CommandBase
	ActionType ActionType
	Name       string
}

// AddActionCommand registers a discrete (instantaneous) user action.
type AddActionCommand struct {
	CommandBase
	ActionType ActionType
	Name       string
}

type AddErrorCommand struct {
	CommandBase
	Message string
	Source  string
}

// KeepAliveCommand carries no payload. It exists so producers can drive
// opportunistic timeout evaluation in the scope tree.
type KeepAliveCommand struct {
	CommandBase
}
