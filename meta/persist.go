package meta

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ErrCorruptMetadata is returned when persisted bytes cannot be decoded.
// The caller must treat the load as "no metadata available".
var ErrCorruptMetadata = errors.New("corrupt metadata")

// Save encodes the tree as zstd-compressed JSON.
func Save(file *FileNode) ([]byte, error) {
	raw, err := json.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	defer func() { _ = enc.Close() }()

	return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

// Load decodes a tree previously produced by Save. Corrupt input of any
// kind surfaces ErrCorruptMetadata; no partially decoded tree is ever
// returned.
func Load(data []byte) (*FileNode, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}

	file := &FileNode{}
	if err := json.Unmarshal(raw, file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}
	return file, nil
}
