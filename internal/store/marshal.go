package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/tfscope/internal/record"
)

// timestampLayout is the column encoding for timestamps. RFC3339Nano
// in UTC sorts lexicographically in timestamp order.
const timestampLayout = time.RFC3339Nano

func marshalRawFields(fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("marshal raw fields: %w", err)
	}
	return string(data), nil
}

func unmarshalRawFields(data string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, fmt.Errorf("unmarshal raw fields: %w", err)
	}
	return fields, nil
}

func marshalBlocks(blocks []record.EmbeddedBlock) (string, error) {
	if blocks == nil {
		blocks = []record.EmbeddedBlock{}
	}
	data, err := json.Marshal(blocks)
	if err != nil {
		return "", fmt.Errorf("marshal blocks: %w", err)
	}
	return string(data), nil
}

func unmarshalBlocks(data string) ([]record.EmbeddedBlock, error) {
	var blocks []record.EmbeddedBlock
	if err := json.Unmarshal([]byte(data), &blocks); err != nil {
		return nil, fmt.Errorf("unmarshal blocks: %w", err)
	}
	if len(blocks) == 0 {
		return nil, nil
	}
	return blocks, nil
}

func marshalTimestamp(ts time.Time) string {
	return ts.UTC().Format(timestampLayout)
}

func unmarshalTimestamp(data string) (time.Time, error) {
	ts, err := time.Parse(timestampLayout, data)
	if err != nil {
		return time.Time{}, fmt.Errorf("unmarshal timestamp: %w", err)
	}
	return ts, nil
}
