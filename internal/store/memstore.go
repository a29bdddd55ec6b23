package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// MemStore holds the snapshot in memory, round-tripped through JSON so saved
// state is detached from the live snapshot. Used by tests.
type MemStore struct {
	data  []byte
	Saves int
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (ms *MemStore) Load(ctx context.Context) (*Snapshot, error) {
	if ms.data == nil {
		return NewSnapshot(), nil
	}
	var snap Snapshot
	if err := json.Unmarshal(ms.data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

func (ms *MemStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	ms.data = data
	ms.Saves++
	return nil
}
