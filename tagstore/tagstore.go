package tagstore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/hypergopher/sitesearch"
)

const (
	bucketEntries = "entries"
	bucketOrder   = "order"
	bucketTags    = "tags"
)

var (
	ErrEntryNotFound    = errors.New("entry not found")
	ErrMissingPermalink = errors.New("entry has no permalink")
)

// TagCount is a tag of the vocabulary and the number of entries carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Store is a bbolt catalogue of the last built search index and its tag vocabulary.
type Store struct {
	db     *bbolt.DB
	logger *slog.Logger
	path   string
}

// Open opens or creates the catalogue at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt catalogue: %w", err)
	}

	s := &Store{db: db, logger: logger, path: path}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) init() error {
	if err := s.db.Update(createBuckets); err != nil {
		return fmt.Errorf("failed to create buckets: %w", err)
	}
	return nil
}

func createBuckets(tx *bbolt.Tx) error {
	for _, name := range []string{bucketEntries, bucketOrder, bucketTags} {
		if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
			return fmt.Errorf("failed to create %s bucket: %w", name, err)
		}
	}
	return nil
}

func clearBuckets(tx *bbolt.Tx) error {
	for _, name := range []string{bucketEntries, bucketOrder, bucketTags} {
		if err := tx.DeleteBucket([]byte(name)); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("failed to delete %s bucket: %w", name, err)
		}
	}
	return createBuckets(tx)
}

// Path returns the catalogue file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the catalogue.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Clear removes every entry and tag.
func (s *Store) Clear() error {
	if err := s.db.Update(clearBuckets); err != nil {
		return fmt.Errorf("failed to clear catalogue: %w", err)
	}
	return nil
}

// Replace clears the catalogue and stores entries in the given order. Either every entry is stored or the
// catalogue is left as it was.
func (s *Store) Replace(entries []sitesearch.Entry) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := clearBuckets(tx); err != nil {
			return err
		}
		for _, e := range entries {
			if err := s.put(tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace catalogue: %w", err)
	}

	s.logger.Debug("Catalogue replaced", slog.Int("entries", len(entries)))
	return nil
}

// Put stores entry under its permalink. Tag counts are adjusted against the previous version of the entry.
// New permalinks are appended to the index order; existing ones keep their position.
func (s *Store) Put(entry sitesearch.Entry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return s.put(tx, entry)
	})
}

func (s *Store) put(tx *bbolt.Tx, entry sitesearch.Entry) error {
	if entry.Permalink == "" {
		return ErrMissingPermalink
	}

	if err := s.storeEntry(tx, entry); err != nil {
		return fmt.Errorf("failed to store entry %s: %w", entry.Permalink, err)
	}
	return nil
}

// storeEntry writes entry and adjusts the tag counts against its previous version.
func (s *Store) storeEntry(tx *bbolt.Tx, entry sitesearch.Entry) error {
	entries := tx.Bucket([]byte(bucketEntries))
	order := tx.Bucket([]byte(bucketOrder))

	key := []byte(entry.Permalink)
	previous, err := decodeEntry(entries.Get(key))
	if err != nil {
		return err
	}

	if previous != nil {
		for _, tag := range uniqueTags(previous.Tags) {
			if !slices.Contains(entry.Tags, tag) {
				if err := updateTagCount(tx, tag, -1); err != nil {
					s.logger.Error("failed to update tag count",
						slog.String("tag", tag),
						slog.String("error", err.Error()))
				}
			}
		}
	} else {
		seq, err := order.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate position: %w", err)
		}
		if err := order.Put(itob(seq), key); err != nil {
			return fmt.Errorf("failed to record position: %w", err)
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize entry: %w", err)
	}

	if err := entries.Put(key, data); err != nil {
		return fmt.Errorf("failed to put entry in bucket: %w", err)
	}

	for _, tag := range uniqueTags(entry.Tags) {
		if previous != nil && slices.Contains(previous.Tags, tag) {
			continue
		}
		if err := updateTagCount(tx, tag, 1); err != nil {
			s.logger.Error("failed to update tag count",
				slog.String("tag", tag),
				slog.String("error", err.Error()))
		}
	}

	return nil
}

// Delete removes the entry with permalink. Deleting a missing entry is not an error.
func (s *Store) Delete(permalink string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(bucketEntries))

		key := []byte(permalink)
		previous, err := decodeEntry(entries.Get(key))
		if err != nil || previous == nil {
			return err
		}

		if err := entries.Delete(key); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		order := tx.Bucket([]byte(bucketOrder))
		c := order.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if string(v) == permalink {
				if err := c.Delete(); err != nil {
					return fmt.Errorf("failed to delete position: %w", err)
				}
				break
			}
		}

		for _, tag := range uniqueTags(previous.Tags) {
			if err := updateTagCount(tx, tag, -1); err != nil {
				s.logger.Error("failed to update tag count",
					slog.String("tag", tag),
					slog.String("error", err.Error()))
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", permalink, err)
	}

	return nil
}

// Get returns the entry with permalink.
func (s *Store) Get(permalink string) (*sitesearch.Entry, error) {
	var entry *sitesearch.Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		entry, err = decodeEntry(tx.Bucket([]byte(bucketEntries)).Get([]byte(permalink)))
		if err != nil {
			return err
		}
		if entry == nil {
			return ErrEntryNotFound
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error getting entry %s: %w", permalink, err)
	}

	return entry, nil
}

// Entries returns every stored entry in index order.
func (s *Store) Entries() ([]sitesearch.Entry, error) {
	var out []sitesearch.Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		entries := tx.Bucket([]byte(bucketEntries))
		return tx.Bucket([]byte(bucketOrder)).ForEach(func(_, permalink []byte) error {
			entry, err := decodeEntry(entries.Get(permalink))
			if err != nil {
				return err
			}
			if entry != nil {
				out = append(out, *entry)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}

	return out, nil
}

// Tags returns the tag vocabulary with counts, sorted by tag.
func (s *Store) Tags() ([]TagCount, error) {
	var tags []TagCount
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketTags)).ForEach(func(k, v []byte) error {
			tags = append(tags, TagCount{Tag: string(k), Count: int(binary.BigEndian.Uint64(v))})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("error listing tags: %w", err)
	}

	slices.SortFunc(tags, func(a, b TagCount) int {
		return strings.Compare(a.Tag, b.Tag)
	})
	return tags, nil
}

// TagNames returns the tag vocabulary without counts.
func (s *Store) TagNames() ([]string, error) {
	tags, err := s.Tags()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Tag)
	}
	return names, nil
}

func updateTagCount(tx *bbolt.Tx, tag string, delta int) error {
	b := tx.Bucket([]byte(bucketTags))
	if b == nil {
		return fmt.Errorf("bucket not found")
	}

	count := 0
	key := []byte(tag)
	if countBytes := b.Get(key); countBytes != nil {
		count = int(binary.BigEndian.Uint64(countBytes))
	}

	count += delta
	if count <= 0 {
		return b.Delete(key)
	}

	return b.Put(key, itob(uint64(count)))
}

func decodeEntry(data []byte) (*sitesearch.Entry, error) {
	if data == nil {
		return nil, nil
	}

	var entry sitesearch.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("error deserializing entry: %w", err)
	}
	return &entry, nil
}

func uniqueTags(tags []string) []string {
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
