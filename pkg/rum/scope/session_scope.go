package scope

import (
	"time"

	"go.uber.org/zap"

	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

// SessionScope is the root of the hierarchy. It owns the sampling decision
// and at most one active ViewScope, routes every command downward, and never
// dies from a command; session renewal is driven by an external policy.
type SessionScope struct {
	deps      Dependencies
	sessionID string
	startTime time.Time
	sampled   bool

	activeView     *ViewScope
	trackedAnyView bool
}

// hasTrackedViews carries over across session renewals so the synthetic
// application-start action is only ever attached to the process's first view.
func NewSessionScope(
	deps Dependencies,
	sessionID string,
	startTime time.Time,
	sampled bool,
	hasTrackedViews bool,
) *SessionScope {
	return &SessionScope{
		deps:           deps,
		sessionID:      sessionID,
		startTime:      startTime,
		sampled:        sampled,
		trackedAnyView: hasTrackedViews,
	}
}

func (s *SessionScope) SessionID() string    { return s.sessionID }
func (s *SessionScope) StartTime() time.Time { return s.startTime }
func (s *SessionScope) Sampled() bool        { return s.sampled }
func (s *SessionScope) TrackedViews() bool   { return s.trackedAnyView }

func (s *SessionScope) baseContext() model.Context {
	return model.Context{
		ApplicationID: s.deps.ApplicationID,
		SessionID:     s.sessionID,
	}
}

func (s *SessionScope) Context() model.Context {
	if s.activeView != nil {
		return s.activeView.Context()
	}
	return s.baseContext()
}

// Process always returns true: the root never dies from a command.
func (s *SessionScope) Process(command model.Command) bool {
	if start, ok := command.(model.StartViewCommand); ok {
		if s.activeView != nil && !s.activeView.Identity().Equals(start.Identity) {
			// the active view flushes its final update and reports dead
			// before the replacement starts
			if !s.activeView.Process(command) {
				s.activeView = nil
			} else {
				s.deps.Logger.Error("Active view survived a start command for another view",
					zap.String("view_id", s.activeView.ViewID()),
				)
				s.activeView = nil
			}
		}
		if s.activeView == nil {
			view := NewViewScope(s.deps, s, start, start.IsInitialView && !s.trackedAnyView)
			s.trackedAnyView = true
			s.activeView = view
			if !view.Process(command) {
				s.activeView = nil
			}
			return true
		}
	}

	if s.activeView != nil && !s.activeView.Process(command) {
		s.activeView = nil
	}
	return true
}
