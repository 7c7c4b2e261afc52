package scope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionScope_RootNeverDies(t *testing.T) {
	session, _ := newTestSessionScope()

	assert.True(t, session.Process(startView(1, "HomeViewController", false, 0)))
	assert.True(t, session.Process(stopView(1, 1*time.Millisecond)))
	assert.True(t, session.Process(keepAlive(2*time.Millisecond)))
}

func TestSessionScope_ContextBeforeAnyView(t *testing.T) {
	session, _ := newTestSessionScope()

	ctx := session.Context()
	assert.Equal(t, "app-1", ctx.ApplicationID)
	assert.Equal(t, "session-1", ctx.SessionID)
	assert.Empty(t, ctx.ActiveViewID)
}

func TestSessionScope_ContextTracksActiveView(t *testing.T) {
	session, _ := newTestSessionScope()

	session.Process(startView(1, "HomeViewController", false, 0))

	ctx := session.Context()
	assert.NotEmpty(t, ctx.ActiveViewID)
	assert.Equal(t, "HomeViewController", ctx.ActiveViewURI)

	session.Process(stopView(1, 1*time.Millisecond))
	assert.Empty(t, session.Context().ActiveViewID)
}

func TestSessionScope_StartViewReplacesActiveView(t *testing.T) {
	session, output := newTestSessionScope()

	session.Process(startView(1, "HomeViewController", false, 0))
	firstViewID := session.Context().ActiveViewID

	session.Process(startView(2, "DetailsViewController", false, 5*time.Millisecond))

	t.Run("Activates the new view", func(t *testing.T) {
		ctx := session.Context()
		assert.NotEqual(t, firstViewID, ctx.ActiveViewID)
		assert.Equal(t, "DetailsViewController", ctx.ActiveViewURI)
	})

	t.Run("Flushes the final update of the replaced view", func(t *testing.T) {
		var finalUpdate bool
		for _, event := range output.viewEvents {
			if event.ViewID == firstViewID && event.TimeSpent == 5*time.Millisecond {
				finalUpdate = true
			}
		}
		assert.True(t, finalUpdate)
	})
}

func TestSessionScope_RestartOfSameViewEmitsUpdate(t *testing.T) {
	session, output := newTestSessionScope()

	session.Process(startView(1, "HomeViewController", false, 0))
	viewID := session.Context().ActiveViewID

	session.Process(startView(1, "HomeViewController", false, 2*time.Millisecond))

	assert.Equal(t, viewID, session.Context().ActiveViewID)
	require.Len(t, output.viewEvents, 2)
	assert.Equal(t, int64(2), output.viewEvents[1].Version)
}
