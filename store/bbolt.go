package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.etcd.io/bbolt"

	"qsortbench/bench"
)

type boltStore struct {
	db *bbolt.DB
}

func openBolt(path string) (*boltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bbolt %s", path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create bbolt bucket")
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Put(ctx context.Context, r bench.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, value, err := encodeRecord(r)
	if err != nil {
		return err
	}

	return errors.Wrap(s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put(key, value)
	}), "bbolt put")
}

func (s *boltStore) List(ctx context.Context) ([]bench.Report, error) {
	var reports []bench.Report
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketName)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := decodeValue(v)
			if err != nil {
				return err
			}
			reports = append(reports, r)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "bbolt list")
	}
	return reports, nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
