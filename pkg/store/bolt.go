package store

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// DefaultBucket is the bucket Bolt stores context values in.
const DefaultBucket = "recycler"

// Bolt is a context store backed by a bbolt database file.
type Bolt struct {
	db     *bbolt.DB
	bucket []byte
}

// BoltOption configures OpenBolt.
type BoltOption func(*boltConfig) error

type boltConfig struct {
	bucket  string
	timeout time.Duration
}

// WithBucket stores values in the named bucket instead of DefaultBucket.
func WithBucket(name string) BoltOption {
	return func(c *boltConfig) error {
		if name == "" {
			return fmt.Errorf("bucket name cannot be empty")
		}
		c.bucket = name
		return nil
	}
}

// WithLockTimeout bounds how long OpenBolt waits for the file lock.
// Default is one second.
func WithLockTimeout(d time.Duration) BoltOption {
	return func(c *boltConfig) error {
		if d <= 0 {
			return fmt.Errorf("lock timeout must be positive")
		}
		c.timeout = d
		return nil
	}
}

// OpenBolt opens (creating if needed) the database at path.
func OpenBolt(path string, opts ...BoltOption) (*Bolt, error) {
	cfg := boltConfig{bucket: DefaultBucket, timeout: time.Second}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: cfg.timeout})
	if err != nil {
		return nil, fmt.Errorf("open context store %s: %w", path, err)
	}
	bucket := []byte(cfg.bucket)
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket %q: %w", cfg.bucket, err)
	}
	return &Bolt{db: db, bucket: bucket}, nil
}

// Save stores value under key.
func (s *Bolt) Save(key string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
}

// Get returns the value saved under key. The returned slice is owned by the
// caller.
func (s *Bolt) Get(key string) ([]byte, bool, error) {
	var out []byte
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v != nil {
			out = append([]byte(nil), v...)
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

// Remove deletes key.
func (s *Bolt) Remove(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Keys returns every stored key in byte order.
func (s *Bolt) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Close closes the database file.
func (s *Bolt) Close() error {
	return s.db.Close()
}
