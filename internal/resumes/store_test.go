package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"resumind-backend/internal/shared/storage/kv"
)

func TestRecordStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(kv.NewMemoryStore())

	record := ResumeRecord{
		ID:          "r1",
		UserID:      "u1",
		ResumePath:  "users/u1/resume.pdf",
		ImagePath:   "users/u1/resume.pdf.preview.png",
		CompanyName: "Acme",
		JobTitle:    "Backend Engineer",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ResumePath != record.ResumePath || got.CompanyName != "Acme" {
		t.Fatalf("Get = %+v", got)
	}
	if !got.Feedback.Pending() {
		t.Fatal("fresh record should be pending")
	}
}

func TestRecordStoreGetNotFound(t *testing.T) {
	store := NewRecordStore(kv.NewMemoryStore())
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get err = %v, want ErrNotFound", err)
	}
}

func TestRecordStorePutRequiresID(t *testing.T) {
	store := NewRecordStore(kv.NewMemoryStore())
	if err := store.Put(context.Background(), ResumeRecord{}); err == nil {
		t.Fatal("Put accepted a record without an id")
	}
}

func TestRecordStoreOverwriteSameKey(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(kv.NewMemoryStore())

	record := ResumeRecord{ID: "r1", UserID: "u1", ResumePath: "users/u1/resume.pdf"}
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put pending: %v", err)
	}

	report, err := ParseReport(validReportJSON)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	record.Feedback = Populated(report)
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put populated: %v", err)
	}

	got, err := store.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Feedback.Pending() {
		t.Fatal("overwrite did not replace the pending record")
	}
}

func TestRecordStoreListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(kv.NewMemoryStore())

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		record := ResumeRecord{
			ID:         id,
			UserID:     "u1",
			ResumePath: "users/u1/" + id + ".pdf",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("Put %s: %v", id, err)
		}
		if err := store.Index(ctx, "u1", id); err != nil {
			t.Fatalf("Index %s: %v", id, err)
		}
	}

	records, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ListByUser returned %d records", len(records))
	}
	if records[0].ID != "new" || records[2].ID != "old" {
		t.Fatalf("order = %s,%s,%s", records[0].ID, records[1].ID, records[2].ID)
	}
}

func TestRecordStoreIndexIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(kv.NewMemoryStore())

	record := ResumeRecord{ID: "r1", UserID: "u1", ResumePath: "p"}
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := store.Index(ctx, "u1", "r1"); err != nil {
			t.Fatalf("Index: %v", err)
		}
	}

	records, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("duplicate index entries: %d records", len(records))
	}
}

func TestRecordStoreListSkipsVanishedRecords(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(kv.NewMemoryStore())

	if err := store.Index(ctx, "u1", "ghost"); err != nil {
		t.Fatalf("Index: %v", err)
	}
	records, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("ghost record surfaced: %+v", records)
	}
}

func TestRecordStoreListEmptyUser(t *testing.T) {
	store := NewRecordStore(kv.NewMemoryStore())
	records, err := store.ListByUser(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
