package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.NewID()
	second := g.NewID()

	require.NoError(t, uuid.Validate(first))
	assert.NotEqual(t, first, second)
}

func TestBaseID_Deterministic(t *testing.T) {
	t.Run("Same UUID folds to the same base id", func(t *testing.T) {
		id := uuid.NewString()
		assert.Equal(t, BaseID(id), BaseID(id))
	})

	t.Run("Different UUIDs fold to different base ids", func(t *testing.T) {
		assert.NotEqual(t, BaseID(uuid.NewString()), BaseID(uuid.NewString()))
	})

	t.Run("Non-UUID identifiers still fold deterministically", func(t *testing.T) {
		assert.Equal(t, BaseID("custom-session"), BaseID("custom-session"))
		assert.NotEqual(t, BaseID("custom-session"), BaseID("other-session"))
	})
}
