package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/storborg/gologic/storage"
	"github.com/storborg/gologic/storage/kvbackend"
)

func TestJournal_AppendGet(t *testing.T) {
	j := &storage.Journal{Backend: &kvbackend.Memory{}}
	ctx := context.Background()

	rec, err := j.Append(ctx, storage.Record{
		Device:      "Logic Pro 16",
		Samples:     1000000,
		DigitalRate: 16000000,
		File:        "/tmp/cap.logicdata",
		Duration:    2 * time.Second,
	})
	if err != nil {
		t.Fatalf("Append() err = %v", err)
	}
	if rec.ID == "" {
		t.Error("Append() did not assign an ID")
	}
	if rec.Time.IsZero() {
		t.Error("Append() did not assign a time")
	}

	got, err := j.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() err = %v", err)
	}
	if diff := cmp.Diff(got, rec); diff != "" {
		t.Errorf("Get() (-got +want)\n%s", diff)
	}
}

func TestJournal_ListSorted(t *testing.T) {
	j := &storage.Journal{Backend: &kvbackend.Memory{}}
	ctx := context.Background()

	base := time.Date(2019, 8, 1, 12, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		if _, err := j.Append(ctx, storage.Record{Time: base.Add(offset)}); err != nil {
			t.Fatalf("Append() err = %v", err)
		}
	}

	recs, err := j.List(ctx)
	if err != nil {
		t.Fatalf("List() err = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Time.Before(recs[i-1].Time) {
			t.Errorf("List() not sorted: %v before %v", recs[i].Time, recs[i-1].Time)
		}
	}
}

func TestJournal_Delete(t *testing.T) {
	j := &storage.Journal{Backend: &kvbackend.Memory{}}
	ctx := context.Background()

	rec, err := j.Append(ctx, storage.Record{})
	if err != nil {
		t.Fatalf("Append() err = %v", err)
	}
	if err := j.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() err = %v", err)
	}
	if _, err := j.Get(ctx, rec.ID); err != storage.ErrNotFound {
		t.Errorf("Get() after delete err = %v, want ErrNotFound", err)
	}
	if err := j.Delete(ctx, rec.ID); err != storage.ErrNotFound {
		t.Errorf("Delete() twice err = %v, want ErrNotFound", err)
	}
}
