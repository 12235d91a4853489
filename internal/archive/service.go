package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"backend-geolog/internal/kv"
)

// Service reads and mutates the saved-location archive: one fixed store key
// holding the whole record sequence as a single JSON array.
type Service struct {
	store kv.Store
	key   string
}

func NewService(store kv.Store, key string) *Service {
	return &Service{store: store, key: key}
}

// Load returns every persisted record in save order. An absent key is an
// empty archive, not an error.
func (s *Service) Load(ctx context.Context) ([]LocationRecord, error) {
	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []LocationRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var records []LocationRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if records == nil {
		records = []LocationRecord{}
	}
	return records, nil
}

// Append rewrites the archive with record added at the end. The rewrite is
// whole-array, so a failed write leaves the stored sequence untouched.
// Overlapping appends race last-write-wins; callers issue saves one at a time.
func (s *Service) Append(ctx context.Context, record LocationRecord) error {
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(append(records, record))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.store.Set(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Clear removes the archive key. Clearing an absent archive is a no-op.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
