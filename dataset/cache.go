package dataset

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
)

// SerializeIndex encodes an Index to bytes using gob encoding, for
// disk-based caching of parsed datasets.
//
// Thread safety: safe for concurrent use once the index is fully
// constructed.
func SerializeIndex(index *Index) ([]byte, error) {
	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(index); err != nil {
		return nil, fmt.Errorf("failed to encode dataset index: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeIndex decodes an Index previously produced by SerializeIndex.
// On error the cache should be treated as stale and the dataset re-parsed
// from source.
func DeserializeIndex(data []byte) (*Index, error) {
	decoder := gob.NewDecoder(bytes.NewReader(data))
	var index Index
	if err := decoder.Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to decode dataset index: %w", err)
	}
	return &index, nil
}

// SerializeIndexToFile writes an Index snapshot to a file.
func SerializeIndexToFile(index *Index, filepath string) error {
	data, err := SerializeIndex(index)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// DeserializeIndexFromFile reads an Index snapshot from a file.
func DeserializeIndexFromFile(filepath string) (*Index, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return DeserializeIndex(data)
}
