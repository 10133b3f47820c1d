// Package storage persists the capture journal: a record of every capture
// taken through the CLI, so past runs can be listed and traced back to their
// output files.
package storage

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// journalPrefix namespaces journal keys in the backend.
const journalPrefix = "captures"

// The KVBackend is used for persisting key-value data.
type KVBackend interface {
	// Put creates or updates a key.
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the given key. Returns ErrNotFound if the given key does
	// not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete deletes a key. Returns ErrNotFound if the given key does not
	// exist.
	Delete(ctx context.Context, key string) error

	// Scan returns a key-value map of all keys matching the given prefix.
	Scan(ctx context.Context, prefix string) (map[string][]byte, error)
}

// A Record describes a single capture.
type Record struct {
	// ID is a generated, time sortable identifier. Assigned by Append.
	ID string `json:"id"`

	// Time is when the capture was started.
	Time time.Time `json:"time"`

	// Device is the name of the device the capture ran on, when known.
	Device string `json:"device,omitempty"`

	// Samples is the configured sample count, 0 when left at the software
	// default.
	Samples int `json:"samples,omitempty"`

	// DigitalRate and AnalogRate are the configured sample rates.
	DigitalRate int `json:"digital_rate,omitempty"`
	AnalogRate  int `json:"analog_rate,omitempty"`

	// File is the path the capture was saved to, empty for captures left in
	// the software.
	File string `json:"file,omitempty"`

	// Duration is how long the capture command took to complete.
	Duration time.Duration `json:"duration,omitempty"`
}

// A Journal stores capture records.
type Journal struct {
	Backend KVBackend
}

// Append stores a new record. The record's ID, and Time when unset, are
// assigned. The stored record is returned.
func (j *Journal) Append(ctx context.Context, rec Record) (Record, error) {
	rec.ID = ksuid.New().String()
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return Record{}, errors.Wrap(err, "marshal record")
	}
	if err := j.Backend.Put(ctx, journalPrefix+"/"+rec.ID, data); err != nil {
		return Record{}, errors.Wrap(err, "store record")
	}
	return rec, nil
}

// Get returns a single record by ID.
func (j *Journal) Get(ctx context.Context, id string) (Record, error) {
	data, err := j.Backend.Get(ctx, journalPrefix+"/"+id)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Wrap(err, "unmarshal record")
	}
	return rec, nil
}

// Delete removes a record by ID.
func (j *Journal) Delete(ctx context.Context, id string) error {
	return j.Backend.Delete(ctx, journalPrefix+"/"+id)
}

// List returns all records, oldest first.
func (j *Journal) List(ctx context.Context) ([]Record, error) {
	values, err := j.Backend.Scan(ctx, journalPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "scan journal")
	}
	recs := make([]Record, 0, len(values))
	for _, v := range values {
		var rec Record
		if err := json.Unmarshal(v, &rec); err != nil {
			return nil, errors.Wrap(err, "unmarshal stored record")
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, k int) bool {
		if recs[i].Time.Equal(recs[k].Time) {
			return recs[i].ID < recs[k].ID
		}
		return recs[i].Time.Before(recs[k].Time)
	})
	return recs, nil
}
