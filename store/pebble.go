package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"

	"qsortbench/bench"
)

type pebbleStore struct {
	db *pebble.DB
}

func openPebble(dir string) (*pebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open pebble %s", dir)
	}
	return &pebbleStore{db: db}, nil
}

func (s *pebbleStore) Put(ctx context.Context, r bench.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, value, err := encodeRecord(r)
	if err != nil {
		return err
	}
	return errors.Wrap(s.db.Set(key, value, pebble.Sync), "pebble put")
}

func (s *pebbleStore) List(ctx context.Context) (reports []bench.Report, err error) {
	it, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "pebble iterator")
	}
	defer func() {
		if cerr := it.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close pebble iterator")
		}
	}()

	for it.First(); it.Valid(); it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Value 는 다음 이동 전까지만 유효하지만 decodeValue 가 바로 복사한다.
		r, err := decodeValue(it.Value())
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (s *pebbleStore) Close() error {
	return s.db.Close()
}
