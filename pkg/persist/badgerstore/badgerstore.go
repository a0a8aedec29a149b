// Package badgerstore implements persist.Store on top of an embedded
// BadgerDB instance: the on-disk backend used outside tests.
package badgerstore

import (
	"context"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/keyerr"
)

// Store wraps a BadgerDB handle.
type Store struct {
	db *badgerdb.DB
}

// Open opens (creating if necessary) a BadgerDB database rooted at dir.
func Open(dir string) (*Store, error) {
	opts := badgerdb.DefaultOptions(dir).WithLogger(nil)
	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.PersistenceIO, "failed to open badger database", err)
	}
	return &Store{db: db}, nil
}

// Get retrieves the value stored at key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var value []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, false, keyerr.Wrap(keyerr.PersistenceIO, "get failed", err)
	}
	return value, value != nil, nil
}

// Put writes value at key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return keyerr.Wrap(keyerr.PersistenceIO, "put failed", err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		err := txn.Delete([]byte(key))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		return err
	})
	if err != nil {
		return keyerr.Wrap(keyerr.PersistenceIO, "delete failed", err)
	}
	return nil
}

// IteratePrefix calls fn once per key under prefix.
func (s *Store) IteratePrefix(ctx context.Context, prefix string, fn func(key string, value []byte) error) error {
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			key := string(item.KeyCopy(nil))
			var value []byte
			if err := item.Value(func(val []byte) error {
				value = append([]byte(nil), val...)
				return nil
			}); err != nil {
				return err
			}
			if err := fn(key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return keyerr.Wrap(keyerr.PersistenceIO, "iterate failed", err)
	}
	return nil
}

// Close releases the underlying BadgerDB handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		logger.Error("failed to close badger store", logger.Err(err))
		return keyerr.Wrap(keyerr.PersistenceIO, "close failed", err)
	}
	return nil
}
