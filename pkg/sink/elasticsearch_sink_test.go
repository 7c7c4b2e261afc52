package sink

import (
	"testing"

	"github.com/dgraph-io/ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beacon-mobile/beacon/pkg/cache"
	"github.com/beacon-mobile/beacon/pkg/rum/model"
)

type recordingBuffer struct {
	written []any
}

func (b *recordingBuffer) WriteToBuffer(value []any) {
	b.written = append(b.written, value...)
}

func (b *recordingBuffer) Flush() error { return nil }

func newTestSink() (*ElasticsearchSink, *recordingBuffer) {
	ristrettoCache, _ := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100,
		MaxCost:     1 << 10,
		BufferItems: 64,
	})
	buffer := &recordingBuffer{}
	s := NewElasticsearchSink(
		cache.NewWriteBehindCacheImpl[model.ViewEvent](ristrettoCache),
		buffer,
		zap.NewNop(),
	)
	return s, buffer
}

func viewUpdate(viewID string, version int64) model.ViewEvent {
	return model.ViewEvent{
		EventType: model.ViewEventType,
		ViewID:    viewID,
		Version:   version,
	}
}

func TestElasticsearchSink_AcceptsNewerVersions(t *testing.T) {
	s, buffer := newTestSink()

	require.NoError(t, s.handleViewEvent(viewUpdate("view-1", 1)))
	require.NoError(t, s.handleViewEvent(viewUpdate("view-1", 2)))

	assert.Len(t, buffer.written, 2)
}

func TestElasticsearchSink_DropsStaleAndDuplicateVersions(t *testing.T) {
	s, buffer := newTestSink()

	require.NoError(t, s.handleViewEvent(viewUpdate("view-1", 2)))
	require.NoError(t, s.handleViewEvent(viewUpdate("view-1", 2)))
	require.NoError(t, s.handleViewEvent(viewUpdate("view-1", 1)))

	assert.Len(t, buffer.written, 1)
}

func TestElasticsearchSink_GuardsPerView(t *testing.T) {
	s, buffer := newTestSink()

	require.NoError(t, s.handleViewEvent(viewUpdate("view-1", 3)))
	require.NoError(t, s.handleViewEvent(viewUpdate("view-2", 1)))

	assert.Len(t, buffer.written, 2)
}

func TestElasticsearchSink_PassesThroughTerminalEvents(t *testing.T) {
	s, buffer := newTestSink()

	require.NoError(t, s.handleActionEvent(model.ActionEvent{EventType: model.ActionEventType}))
	require.NoError(t, s.handleResourceEvent(model.ResourceEvent{EventType: model.ResourceEventType}))
	require.NoError(t, s.handleErrorEvent(model.ErrorEvent{EventType: model.ErrorEventType}))

	assert.Len(t, buffer.written, 3)
}
