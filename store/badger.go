package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"

	"qsortbench/bench"
)

type badgerStore struct {
	db *badger.DB
}

func openBadger(dir string) (*badgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger %s", dir)
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) Put(ctx context.Context, r bench.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, value, err := encodeRecord(r)
	if err != nil {
		return err
	}

	return errors.Wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	}), "badger put")
}

func (s *badgerStore) List(ctx context.Context) ([]bench.Report, error) {
	var reports []bench.Report
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			r, err := decodeValue(value)
			if err != nil {
				return err
			}
			reports = append(reports, r)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "badger list")
	}
	return reports, nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
