package repos

import (
	"time"

	bolt "github.com/boltdb/bolt"
)

const bucketName = "kv"

// BoltKV stores keys in a single bolt bucket. The whole store is one file,
// so no external database process is needed.
type BoltKV struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the bolt file and its bucket.
func OpenBolt(path string) (*BoltKV, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltKV{db: db}, nil
}

func (s *BoltKV) Close() error { return s.db.Close() }

func (s *BoltKV) Get(key string) (string, bool, error) {
	var (
		v  string
		ok bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if raw == nil {
			return nil
		}
		// raw is only valid inside the transaction.
		v, ok = string(raw), true
		return nil
	})
	return v, ok, err
}

// Set skips the write when the stored value is already identical.
func (s *BoltKV) Set(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if existing := b.Get([]byte(key)); existing != nil && string(existing) == value {
			return nil
		}
		return b.Put([]byte(key), []byte(value))
	})
}
