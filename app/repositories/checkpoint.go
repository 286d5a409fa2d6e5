package repositories

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"blogstore/app/models"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
)

// BadgerCheckpoint implements Checkpointer using BadgerDB. It remembers a hash
// of every post it last wrote or read so that Save touches only what changed.
type BadgerCheckpoint struct {
	db *badger.DB

	mu    sync.Mutex
	saved map[uint64]uint64 // post id -> xxhash of the stored JSON; nil until primed
}

// OpenBadger opens the database at path, or an in-memory instance when
// inMemory is set.
func OpenBadger(path string, inMemory bool) (*badger.DB, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil).WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return db, nil
}

// NewBadgerCheckpoint creates a BadgerCheckpoint
func NewBadgerCheckpoint(db *badger.DB) *BadgerCheckpoint {
	return &BadgerCheckpoint{db: db}
}

// Save writes snapshot, removing posts that no longer exist. Only posts whose
// encoding changed since the last Save or Load are rewritten. Writes go
// through a WriteBatch, so a snapshot larger than one transaction is committed
// in several chunks: posts first, then stale deletions, then config and the
// sequences.
func (c *BadgerCheckpoint) Save(snapshot models.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.saved == nil {
		saved, err := c.scanPosts()
		if err != nil {
			return err
		}
		c.saved = saved
	}

	wb := c.db.NewWriteBatch()
	defer wb.Cancel()

	current := make(map[uint64]uint64, len(snapshot.Posts))
	for _, post := range snapshot.Posts {
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		sum := xxhash.Sum64(data)
		current[post.ID] = sum
		if prev, ok := c.saved[post.ID]; ok && prev == sum {
			continue
		}
		if err := wb.Set(postKey(post.ID), data); err != nil {
			c.saved = nil
			return fmt.Errorf("failed to save post %d: %w", post.ID, err)
		}
	}

	for id := range c.saved {
		if _, ok := current[id]; ok {
			continue
		}
		if err := wb.Delete(postKey(id)); err != nil {
			c.saved = nil
			return fmt.Errorf("failed to delete post %d: %w", id, err)
		}
	}

	data, err := marshalEntity(snapshot.Config)
	if err != nil {
		c.saved = nil
		return err
	}
	if err := wb.Set([]byte(ConfigKey), data); err != nil {
		c.saved = nil
		return fmt.Errorf("failed to save config: %w", err)
	}
	if err := wb.Set([]byte(PostSeqKey), encodeUint64(snapshot.NextPostID)); err != nil {
		c.saved = nil
		return fmt.Errorf("failed to update sequence: %w", err)
	}
	if err := wb.Set([]byte(CommentSeqKey), encodeUint64(snapshot.NextCommentID)); err != nil {
		c.saved = nil
		return fmt.Errorf("failed to update sequence: %w", err)
	}
	if err := wb.Flush(); err != nil {
		c.saved = nil
		return fmt.Errorf("failed to flush checkpoint: %w", err)
	}
	c.saved = current
	return nil
}

// scanPosts hashes every stored post, keyed by id.
func (c *BadgerCheckpoint) scanPosts() (map[uint64]uint64, error) {
	saved := make(map[uint64]uint64)
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id, err := parsePostKey(item.Key())
			if err != nil {
				return err
			}
			if err := item.Value(func(val []byte) error {
				saved[id] = xxhash.Sum64(val)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan posts: %w", err)
	}
	return saved, nil
}

// Load reads the last saved snapshot. The boolean is false when nothing has
// been checkpointed yet.
//
// The sequences are raised past the highest stored post and comment ids, so a
// Save that was interrupted halfway never leads to id reuse.
func (c *BadgerCheckpoint) Load() (models.Snapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var snapshot models.Snapshot
	found := true
	saved := make(map[uint64]uint64)

	err := c.db.View(func(txn *badger.Txn) error {
		nextPost, err := readSequence(txn, PostSeqKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		nextComment, err := readSequence(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		snapshot.NextPostID = nextPost
		snapshot.NextCommentID = nextComment

		item, err := txn.Get([]byte(ConfigKey))
		if err != nil {
			return fmt.Errorf("failed to get config: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &snapshot.Config)
		}); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		snapshot.Posts = []models.Blog{}
		for it.Rewind(); it.Valid(); it.Next() {
			var post models.Blog
			err := it.Item().Value(func(val []byte) error {
				if err := unmarshalEntity(val, &post); err != nil {
					return err
				}
				saved[post.ID] = xxhash.Sum64(val)
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			snapshot.Posts = append(snapshot.Posts, post)
		}
		return nil
	})
	if err != nil {
		c.saved = nil
		return models.Snapshot{}, false, err
	}
	if !found {
		c.saved = nil
		return snapshot, false, nil
	}
	c.saved = saved
	reconcileSequences(&snapshot)
	return snapshot, found, nil
}

func reconcileSequences(snapshot *models.Snapshot) {
	for _, post := range snapshot.Posts {
		if post.ID >= snapshot.NextPostID {
			snapshot.NextPostID = post.ID + 1
		}
		for _, comment := range post.Comments {
			if comment.ID >= snapshot.NextCommentID {
				snapshot.NextCommentID = comment.ID + 1
			}
		}
	}
}

// Backup streams a full backup of the database to w.
func (c *BadgerCheckpoint) Backup(w io.Writer) error {
	if _, err := c.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to backup database: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup.
func (c *BadgerCheckpoint) Restore(r io.Reader) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saved = nil
	if err := c.db.Load(r, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

func readSequence(txn *badger.Txn, key string) (uint64, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return 0, err
	}
	var v uint64
	err = item.Value(func(val []byte) error {
		v, err = decodeUint64(val)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse sequence %s: %w", key, err)
	}
	return v, nil
}
