package asset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// metadataKey returns the meta bucket key for an asset id
func metadataKey(id string) string {
	return fmt.Sprintf("metadata/%s.json", id)
}

// storeMetadata writes the immutable JSON descriptor to the meta bucket
func (p *Processor) storeMetadata(ctx context.Context, record *Asset) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return p.meta.Put(ctx, metadataKey(record.ID), bytes.NewReader(data), "application/json")
}

// LoadMetadata reads an asset descriptor back from the meta bucket
func (p *Processor) LoadMetadata(ctx context.Context, id string) (*Asset, error) {
	exists, err := p.meta.Exists(ctx, metadataKey(id))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrAssetNotFound
	}

	reader, err := p.meta.Get(ctx, metadataKey(id))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	var record Asset
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return &record, nil
}

// sniffContentType detects the MIME type from magic bytes
func sniffContentType(data []byte) string {
	return http.DetectContentType(data)
}
