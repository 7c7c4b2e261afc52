package scope

import (
	"go.uber.org/zap"

	"github.com/beacon-mobile/beacon/pkg/event"
	"github.com/beacon-mobile/beacon/pkg/idgen"
	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

// Scope is one stateful node in the Session -> View -> {Resource, UserAction}
// hierarchy. Process applies one command and returns whether the scope is
// still alive; false means the parent must remove it after this call, its own
// terminal event having already been emitted inside Process.
//
// The tree assumes a single logical writer; see service.Monitor for the
// serialization point.
type Scope interface {
	Context() model.Context
	Process(command model.Command) bool
}

// Dependencies is the immutable capability set handed to every scope at
// construction. There is no ambient state: scopes reach collaborators only
// through this struct.
type Dependencies struct {
	ApplicationID string
	IDGenerator   idgen.Generator
	EventOutput   event.Output
	Logger        *zap.Logger
}

func mergeAttributes(dst map[string]string, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

func copyAttributes(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
