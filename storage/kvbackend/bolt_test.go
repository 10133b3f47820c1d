package kvbackend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/storborg/gologic/storage"
)

func Test_splitKey(t *testing.T) {
	tests := []struct {
		input      string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{input: "", wantErr: true},
		{input: "captures", wantErr: true},
		{input: "/captures", wantErr: true},
		{input: "captures/", wantErr: true},
		{input: "captures/abc", wantBucket: "captures", wantKey: "abc"},
		{input: "a/b/c", wantBucket: "a/b", wantKey: "c"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bucket, key, err := splitKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if string(bucket) != tt.wantBucket {
				t.Errorf("bucket = %q, want = %q", bucket, tt.wantBucket)
			}
			if string(key) != tt.wantKey {
				t.Errorf("key = %q, want = %q", key, tt.wantKey)
			}
		})
	}
}

func TestBolt(t *testing.T) {
	b, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() err = %v", err)
	}
	defer b.Close()

	ctx := context.Background()

	if _, err := b.Get(ctx, "captures/nope"); err != storage.ErrNotFound {
		t.Errorf("Get() on empty db err = %v, want ErrNotFound", err)
	}

	if err := b.Put(ctx, "captures/a", []byte("1")); err != nil {
		t.Fatalf("Put() err = %v", err)
	}
	if err := b.Put(ctx, "captures/b", []byte("2")); err != nil {
		t.Fatalf("Put() err = %v", err)
	}

	got, err := b.Get(ctx, "captures/a")
	if err != nil {
		t.Fatalf("Get() err = %v", err)
	}
	if string(got) != "1" {
		t.Errorf("Get() = %q, want = %q", got, "1")
	}

	scan, err := b.Scan(ctx, "captures")
	if err != nil {
		t.Fatalf("Scan() err = %v", err)
	}
	want := map[string][]byte{
		"captures/a": []byte("1"),
		"captures/b": []byte("2"),
	}
	if diff := cmp.Diff(scan, want); diff != "" {
		t.Errorf("Scan() (-got +want)\n%s", diff)
	}

	if err := b.Delete(ctx, "captures/a"); err != nil {
		t.Fatalf("Delete() err = %v", err)
	}
	if err := b.Delete(ctx, "captures/a"); err != storage.ErrNotFound {
		t.Errorf("Delete() twice err = %v, want ErrNotFound", err)
	}
}

func TestMemory(t *testing.T) {
	m := &Memory{}
	ctx := context.Background()

	if _, err := m.Get(ctx, "captures/x"); err != storage.ErrNotFound {
		t.Errorf("Get() on empty store err = %v, want ErrNotFound", err)
	}
	if err := m.Delete(ctx, "captures/x"); err != storage.ErrNotFound {
		t.Errorf("Delete() on empty store err = %v, want ErrNotFound", err)
	}

	if err := m.Put(ctx, "captures/x", []byte("v")); err != nil {
		t.Fatalf("Put() err = %v", err)
	}
	got, err := m.Get(ctx, "captures/x")
	if err != nil {
		t.Fatalf("Get() err = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want = %q", got, "v")
	}

	scan, err := m.Scan(ctx, "captures")
	if err != nil {
		t.Fatalf("Scan() err = %v", err)
	}
	if len(scan) != 1 {
		t.Errorf("Scan() returned %d entries, want 1", len(scan))
	}
}
