package reportdb

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"
	bolt "go.etcd.io/bbolt"

	"github.com/objtrace/objtrace/helper/common"
	"github.com/objtrace/objtrace/tracer"
)

/*
Finished session reports are persisted in a bolt database. The schema
looks as follows:

reports/
|--> report.ID -> *SavedReport (json marshalled)

labels/
|--> label -> report.ID
*/

var (
	reportsBucket = []byte("reports")
	labelsBucket  = []byte("labels")

	parentBuckets = [][]byte{reportsBucket, labelsBucket}

	// ErrNotFound is returned when the requested report is not stored
	ErrNotFound = errors.New("report not found")
)

// cacheSize bounds the number of recently fetched reports kept in memory
const cacheSize = 32

// SavedReport is a persisted session report together with its
// storage metadata
type SavedReport struct {
	ID        uint64         `json:"id"`
	Label     string         `json:"label,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Report    *tracer.Report `json:"report"`
}

// Store is the bolt backed report database
type Store struct {
	db     *bolt.DB
	logger hclog.Logger

	// recently fetched reports, keyed by id
	cache *lru.Cache
}

// New opens the report database at the given path, creating it along
// with its parent directory and buckets when missing
func New(path string, logger hclog.Logger) (*Store, error) {
	if err := common.SetupDataDir(filepath.Dir(path), nil); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0666, nil)
	if err != nil {
		return nil, err
	}

	if err = initStoreBuckets(db); err != nil {
		return nil, err
	}

	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: logger.Named("reportdb"),
		cache:  cache,
	}, nil
}

// initStoreBuckets creates the predefined buckets in the bolt database
// if they don't exist already
func initStoreBuckets(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range parentBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}

		return nil
	})
}

// Insert persists the report under a freshly assigned id and returns
// it. A non-empty label additionally indexes the report, with a reused
// label pointing at the newest report inserted under it.
func (s *Store) Insert(label string, report *tracer.Report) (uint64, error) {
	var id uint64

	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(reportsBucket)

		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}

		saved := &SavedReport{
			ID:        seq,
			Label:     label,
			CreatedAt: time.Now().UTC(),
			Report:    report,
		}

		raw, err := json.Marshal(saved)
		if err != nil {
			return err
		}

		if err := bucket.Put(common.EncodeUint64ToBytes(seq), raw); err != nil {
			return err
		}

		if label != "" {
			if err := tx.Bucket(labelsBucket).Put([]byte(label), common.EncodeUint64ToBytes(seq)); err != nil {
				return err
			}
		}

		id = seq

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("report persisted", "id", id, "label", label, "rows", len(report.Rows))

	return id, nil
}

// Get returns the report with the given id
func (s *Store) Get(id uint64) (*SavedReport, error) {
	if cached, ok := s.cache.Get(id); ok {
		if saved, ok := cached.(*SavedReport); ok {
			return saved, nil
		}
	}

	var saved *SavedReport

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(reportsBucket).Get(common.EncodeUint64ToBytes(id))
		if v == nil {
			return ErrNotFound
		}

		return json.Unmarshal(v, &saved)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Add(id, saved)

	return saved, nil
}

// GetByLabel returns the newest report inserted under the given label
func (s *Store) GetByLabel(label string) (*SavedReport, error) {
	var id uint64

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(labelsBucket).Get([]byte(label))
		if v == nil {
			return ErrNotFound
		}

		id = common.EncodeBytesToUint64(v)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// List returns all stored reports in ascending id order
func (s *Store) List() ([]*SavedReport, error) {
	var saved []*SavedReport

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(reportsBucket).ForEach(func(k, v []byte) error {
			var report *SavedReport

			if err := json.Unmarshal(v, &report); err != nil {
				return err
			}

			saved = append(saved, report)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// Delete removes the report with the given id, along with any label
// pointing at it
func (s *Store) Delete(id uint64) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		key := common.EncodeUint64ToBytes(id)

		bucket := tx.Bucket(reportsBucket)
		if bucket.Get(key) == nil {
			return ErrNotFound
		}

		if err := bucket.Delete(key); err != nil {
			return err
		}

		labels := tx.Bucket(labelsBucket)

		var stale [][]byte

		if err := labels.ForEach(func(label, ref []byte) error {
			if common.EncodeBytesToUint64(ref) == id {
				stale = append(stale, append([]byte(nil), label...))
			}

			return nil
		}); err != nil {
			return err
		}

		for _, label := range stale {
			if err := labels.Delete(label); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Remove(id)
	s.logger.Debug("report deleted", "id", id)

	return nil
}

// Close releases the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
