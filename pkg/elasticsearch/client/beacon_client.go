package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
)

type RefreshRate string

const (
	// Wait for the changes made by the request to be made visible by a refresh before replying.
	Wait RefreshRate = "wait_for"
	// Immediate Refresh the relevant primary and replica shards (not the whole index) immediately after the operation occurs.
	Immediate RefreshRate = "true"
	// Async Take no refresh related actions. The changes made by this request will be made visible at some point after the request returns.
	Async RefreshRate = "false"
)

type BeaconClient interface {
	// BulkIndex indexes (inserts) multiple documents in the same index
	// https://www.elastic.co/guide/en/elasticsearch/reference/master/docs-bulk.html
	BulkIndex(ctx context.Context, metaInfo []MetaMap, documentInfo []DocumentMap, index string) error
	// Index indexes (inserts) a single document in the index
	// https://www.elastic.co/guide/en/elasticsearch/reference/master/docs-index_.html
	Index(ctx context.Context, documentInfo DocumentMap, index string, id string) error
}

type BeaconClientImpl struct {
	es          *elasticsearch.Client
	refreshRate string
}

func NewBeaconClientImpl(es *elasticsearch.Client, refreshRate RefreshRate) *BeaconClientImpl {
	return &BeaconClientImpl{es: es, refreshRate: string(refreshRate)}
}

func (b *BeaconClientImpl) BulkIndex(
	ctx context.Context,
	metaInfo []MetaMap,
	documentInfo []DocumentMap,
	index string,
) error {
	var buf bytes.Buffer
	for i, document := range documentInfo {
		var meta MetaMap
		if metaInfo != nil && i < len(metaInfo) {
			meta = metaInfo[i]
		} else {
			// empty meta for bulk index
			meta = MetaMap{"index": map[string]interface{}{}}
		}
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("error marshaling meta to bulk index: %w", err)
		}
		buf.Write(metaJSON)
		buf.WriteByte('\n')

		documentJSON, err := json.Marshal(document)
		if err != nil {
			return fmt.Errorf("error marshaling document to bulk index: %w", err)
		}
		buf.Write(documentJSON)
		buf.WriteByte('\n')
	}

	res, err := b.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		b.es.Bulk.WithIndex(index),
		b.es.Bulk.WithContext(ctx),
		b.es.Bulk.WithRefresh(b.refreshRate),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk index in Elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index error: %s", res.String())
	}
	return nil
}

func (b *BeaconClientImpl) Index(
	ctx context.Context,
	documentInfo DocumentMap,
	index string,
	id string,
) error {
	documentJSON, err := json.Marshal(documentInfo)
	if err != nil {
		return fmt.Errorf("error marshaling document to index: %w", err)
	}

	res, err := b.es.Index(
		index,
		bytes.NewReader(documentJSON),
		b.es.Index.WithDocumentID(id),
		b.es.Index.WithContext(ctx),
		b.es.Index.WithRefresh(b.refreshRate),
	)
	if err != nil {
		return fmt.Errorf("failed to index in Elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}
