package event

import (
	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

// Output receives every event the scope tree emits, exactly once per
// emission. Implementations own their buffering and threading and must not
// block the caller.
type Output interface {
	WriteViewEvent(event model.ViewEvent)
	WriteActionEvent(event model.ActionEvent)
	WriteResourceEvent(event model.ResourceEvent)
	WriteErrorEvent(event model.ErrorEvent)
}

// NopOutput discards everything. Sessions whose sampling decision is
// "dropped" run the full state machine against it.
type NopOutput struct{}

func NewNopOutput() *NopOutput { return &NopOutput{} }

func (n *NopOutput) WriteViewEvent(event model.ViewEvent)         {}
func (n *NopOutput) WriteActionEvent(event model.ActionEvent)     {}
func (n *NopOutput) WriteResourceEvent(event model.ResourceEvent) {}
func (n *NopOutput) WriteErrorEvent(event model.ErrorEvent)       {}
