package scope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

func TestResourceScope_StopEmitsResourceEvent(t *testing.T) {
	session, output := newTestSessionScope()

	session.Process(startView(1, "HomeViewController", false, 0))
	session.Process(startResource("profile", 1*time.Millisecond))
	session.Process(stopResource("profile", 6*time.Millisecond))

	require.Len(t, output.resourceEvents, 1)
	event := output.resourceEvents[0]
	assert.Equal(t, "profile", event.ResourceName)
	assert.Equal(t, "https://api.example.com/profile", event.URL)
	assert.Equal(t, "GET", event.Method)
	assert.Equal(t, int64(200), event.StatusCode)
	assert.Equal(t, 5*time.Millisecond, event.Duration)
	assert.Equal(t, "session-1", event.SessionID)
	assert.NotEmpty(t, event.ViewID)
}

func TestResourceScope_StopWithErrorEmitsErrorEvent(t *testing.T) {
	session, output := newTestSessionScope()

	session.Process(startView(1, "HomeViewController", false, 0))
	session.Process(startResource("profile", 1*time.Millisecond))
	session.Process(model.StopResourceWithErrorCommand{
		CommandBase:  model.CommandBase{Time: at(4 * time.Millisecond)},
		ResourceName: "profile",
		ErrorMessage: "connection reset",
		ErrorSource:  "network",
		StatusCode:   502,
	})

	t.Run("Emits an error event instead of a resource event", func(t *testing.T) {
		assert.Empty(t, output.resourceEvents)
		require.Len(t, output.errorEvents, 1)
		assert.Equal(t, "connection reset", output.errorEvents[0].Message)
		assert.Equal(t, "profile", output.errorEvents[0].ResourceName)
		assert.Equal(t, int64(502), output.errorEvents[0].StatusCode)
	})

	t.Run("Still counts as a completed resource on the view", func(t *testing.T) {
		last := output.viewEvents[len(output.viewEvents)-1]
		assert.Equal(t, int64(1), last.ResourceCount)
	})
}

func TestResourceScope_StopForUnknownNameIsDropped(t *testing.T) {
	session, output := newTestSessionScope()

	session.Process(startView(1, "HomeViewController", false, 0))
	emitted := len(output.viewEvents)

	session.Process(stopResource("never-started", 1*time.Millisecond))

	assert.Empty(t, output.resourceEvents)
	assert.Len(t, output.viewEvents, emitted)
}
