package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"resumind-backend/internal/shared/storage/kv"
)

const (
	recordKeyPrefix = "resume:"
	indexKeyPrefix  = "resume_ids:"
)

// RecordStore persists resume records over the key-value store. Records live
// under `resume:{id}`; a per-user index under `resume_ids:{userId}` backs
// listing, since the KV contract has no scan.
type RecordStore struct {
	kv kv.Store
}

// NewRecordStore wraps a key-value store.
func NewRecordStore(store kv.Store) *RecordStore {
	return &RecordStore{kv: store}
}

// Put writes the record under its key. Both the pending checkpoint and the
// populated overwrite go through here; same key, whole-value replacement.
func (s *RecordStore) Put(ctx context.Context, record ResumeRecord) error {
	if record.ID == "" {
		return errors.New("record id is required")
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("serialize record: %w", err)
	}
	return s.kv.Set(ctx, recordKeyPrefix+record.ID, string(payload))
}

// Get loads one record by id.
func (s *RecordStore) Get(ctx context.Context, id string) (ResumeRecord, error) {
	raw, err := s.kv.Get(ctx, recordKeyPrefix+id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return ResumeRecord{}, ErrNotFound
		}
		return ResumeRecord{}, err
	}
	var record ResumeRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return ResumeRecord{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return record, nil
}

// Index appends the record id to the user's listing index. Idempotent.
func (s *RecordStore) Index(ctx context.Context, userID, id string) error {
	ids, err := s.readIndex(ctx, userID)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	ids = append(ids, id)
	payload, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, indexKeyPrefix+userID, string(payload))
}

// ListByUser returns the user's records, newest first. Ids in the index
// whose record has since vanished are skipped.
func (s *RecordStore) ListByUser(ctx context.Context, userID string) ([]ResumeRecord, error) {
	ids, err := s.readIndex(ctx, userID)
	if err != nil {
		return nil, err
	}
	records := make([]ResumeRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *RecordStore) readIndex(ctx context.Context, userID string) ([]string, error) {
	raw, err := s.kv.Get(ctx, indexKeyPrefix+userID)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode index for %s: %w", userID, err)
	}
	return ids, nil
}
