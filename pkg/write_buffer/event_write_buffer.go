package write_buffer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/beacon-mobile/beacon/pkg/elasticsearch/client"
)

const WriteQueueSize = 30
const flushTimeOut = 10 * time.Second

// EventWriteBuffer batches emitted events ahead of bulk indexing so the scope
// tree never waits on Elasticsearch.
type EventWriteBuffer[ValueType any] interface {
	WriteToBuffer(value []ValueType)
	Flush() error
}

type EventWriteBufferImpl[ValueType any] struct {
	writeQueue  []ValueType
	bc          client.BeaconClient
	esIndexName string
	logger      *zap.Logger
	mu          sync.Mutex
}

func NewEventWriteBufferImpl[ValueType any](
	bc client.BeaconClient,
	esIndexName string,
	logger *zap.Logger,
) *EventWriteBufferImpl[ValueType] {
	return &EventWriteBufferImpl[ValueType]{
		writeQueue:  []ValueType{},
		bc:          bc,
		esIndexName: esIndexName,
		logger:      logger,
	}
}

func (wb *EventWriteBufferImpl[ValueType]) WriteToBuffer(
	value []ValueType,
) {
	wb.mu.Lock()
	wb.writeQueue = append(wb.writeQueue, value...)
	pending := len(wb.writeQueue)
	wb.mu.Unlock()
	if pending > WriteQueueSize {
		go func() {
			err := wb.Flush()
			if err != nil {
				wb.logger.Error("Failed to flush to Elasticsearch", zap.Error(err))
			}
		}()
	}
}

func (wb *EventWriteBufferImpl[ValueType]) Flush() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	ctx := context.Background()
	bulkCtx, cancel := context.WithTimeout(ctx, flushTimeOut)
	defer cancel()
	metaMap, dataMap, err := client.ToMetaAndDataMap(wb.writeQueue)
	if err != nil {
		return fmt.Errorf("error converting write queue to meta and data map: %w", err)
	}
	if len(metaMap) == 0 {
		wb.writeQueue = []ValueType{}
		return nil
	}
	err = wb.bc.BulkIndex(
		bulkCtx,
		metaMap,
		dataMap,
		wb.esIndexName,
	)
	wb.writeQueue = []ValueType{}
	if err != nil {
		return fmt.Errorf("error bulk indexing to Elasticsearch: %w", err)
	}
	return nil
}
