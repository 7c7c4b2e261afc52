package scope

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

var testStart = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return testStart.Add(offset)
}

// recordingOutput captures every emission in arrival order.
type recordingOutput struct {
	viewEvents     []model.ViewEvent
	actionEvents   []model.ActionEvent
	resourceEvents []model.ResourceEvent
	errorEvents    []model.ErrorEvent
}

func (r *recordingOutput) WriteViewEvent(event model.ViewEvent) {
	r.viewEvents = append(r.viewEvents, event)
}

func (r *recordingOutput) WriteActionEvent(event model.ActionEvent) {
	r.actionEvents = append(r.actionEvents, event)
}

func (r *recordingOutput) WriteResourceEvent(event model.ResourceEvent) {
	r.resourceEvents = append(r.resourceEvents, event)
}

func (r *recordingOutput) WriteErrorEvent(event model.ErrorEvent) {
	r.errorEvents = append(r.errorEvents, event)
}

// sequenceIDGenerator mints predictable ids for assertions.
type sequenceIDGenerator struct {
	next int
}

func (g *sequenceIDGenerator) NewID() string {
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

func newTestSessionScope() (*SessionScope, *recordingOutput) {
	output := &recordingOutput{}
	deps := Dependencies{
		ApplicationID: "app-1",
		IDGenerator:   &sequenceIDGenerator{},
		EventOutput:   output,
		Logger:        zap.NewNop(),
	}
	return NewSessionScope(deps, "session-1", testStart, true, false), output
}

func startView(token uint64, name string, initial bool, offset time.Duration) model.StartViewCommand {
	return model.StartViewCommand{
		CommandBase:   model.CommandBase{Time: at(offset)},
		Identity:      model.ViewIdentity{Token: token, TypeName: name},
		IsInitialView: initial,
	}
}

func stopView(token uint64, offset time.Duration) model.StopViewCommand {
	return model.StopViewCommand{
		CommandBase: model.CommandBase{Time: at(offset)},
		Identity:    model.ViewIdentity{Token: token},
	}
}

func startResource(name string, offset time.Duration) model.StartResourceCommand {
	return model.StartResourceCommand{
		CommandBase:  model.CommandBase{Time: at(offset)},
		ResourceName: name,
		URL:          "https://api.example.com/" + name,
		Method:       "GET",
	}
}

func stopResource(name string, offset time.Duration) model.StopResourceCommand {
	return model.StopResourceCommand{
		CommandBase:  model.CommandBase{Time: at(offset)},
		ResourceName: name,
		StatusCode:   200,
	}
}

func keepAlive(offset time.Duration) model.KeepAliveCommand {
	return model.KeepAliveCommand{CommandBase: model.CommandBase{Time: at(offset)}}
}
