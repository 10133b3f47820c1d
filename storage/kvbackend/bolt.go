// Package kvbackend provides key-value backends for the capture journal.
package kvbackend

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/storborg/gologic/storage"
)

// Bolt stores key-value pairs in a bolt database file.
type Bolt struct {
	db *bolt.DB
}

// DefaultFile returns the default journal database location,
// ~/.gologic/journal.db.
func DefaultFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home dir")
	}
	return filepath.Join(home, ".gologic", "journal.db"), nil
}

// Open creates and opens a database at the given file. The file and its
// directory are created if they do not exist.
func Open(file string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return nil, errors.Wrapf(err, "ensure dir exists: %s", filepath.Dir(file))
	}
	db, err := bolt.Open(file, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open bolt db")
	}
	return &Bolt{db: db}, nil
}

// Close closes the store and releases all resources.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// Put creates or updates a value.
func (b *Bolt) Put(ctx context.Context, key string, value []byte) error {
	bucket, k, err := splitKey(key)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		buc, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return errors.Wrap(err, "ensure bucket exists")
		}
		return buc.Put(k, value)
	})
}

// Get returns a single value. Returns storage.ErrNotFound if the key does
// not exist.
func (b *Bolt) Get(ctx context.Context, key string) ([]byte, error) {
	bucket, k, err := splitKey(key)
	if err != nil {
		return nil, err
	}
	var out []byte
	err = b.db.View(func(tx *bolt.Tx) error {
		buc := tx.Bucket(bucket)
		if buc == nil {
			return storage.ErrNotFound
		}
		data := buc.Get(k)
		if len(data) == 0 {
			return storage.ErrNotFound
		}
		out = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete deletes a key. Returns storage.ErrNotFound if the key does not
// exist.
func (b *Bolt) Delete(ctx context.Context, key string) error {
	bucket, k, err := splitKey(key)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		buc := tx.Bucket(bucket)
		if buc == nil || len(buc.Get(k)) == 0 {
			return storage.ErrNotFound
		}
		return errors.Wrap(buc.Delete(k), "delete key")
	})
}

// Scan returns all values under the given prefix. The prefix must name a
// bucket, that is, a key up to its last / separator.
func (b *Bolt) Scan(ctx context.Context, prefix string) (map[string][]byte, error) {
	if strings.HasSuffix(prefix, "/") {
		return nil, errors.New("prefix must not end with /")
	}
	out := make(map[string][]byte)
	err := b.db.View(func(tx *bolt.Tx) error {
		buc := tx.Bucket([]byte(prefix))
		if buc == nil {
			return nil
		}
		return buc.ForEach(func(k, v []byte) error {
			out[prefix+"/"+string(k)] = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// splitKey splits a key into its bucket and in-bucket key at the last /
// separator:
//
//   captures/1HsLAt -> bucket "captures", key "1HsLAt"
//
// Keys without a separator, or with a leading or trailing separator, are
// rejected.
func splitKey(key string) (bucket, k []byte, err error) {
	i := strings.LastIndex(key, "/")
	if i <= 0 || i == len(key)-1 {
		return nil, nil, errors.Errorf("invalid key: %q", key)
	}
	return []byte(key[:i]), []byte(key[i+1:]), nil
}
