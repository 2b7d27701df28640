// Package store 벤치마크 실행 이력 저장소.
//
// 키는 시작 시각(유닉스 나노초, 빅엔디언 8바이트) + 실행 UUID(16바이트)라서
// 키 순서대로 읽으면 시간순이 된다. 값은 bench.Report 의 JSON 이다.
package store

import (
	"context"
	"encoding/binary"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"qsortbench/bench"
)

// 지원하는 백엔드
const (
	KindNone   = "none"
	KindBbolt  = "bbolt"
	KindBadger = "badger"
	KindPebble = "pebble"
)

const (
	keySize    = 24
	bucketName = "qsort_runs"
)

// ErrUnknownBackend 알 수 없는 백엔드 이름
var ErrUnknownBackend = errors.New("unknown store backend")

// Kinds 선택 가능한 백엔드 이름
var Kinds = []string{KindNone, KindBbolt, KindBadger, KindPebble}

// Store 실행 이력 저장소
type Store interface {
	Put(ctx context.Context, r bench.Report) error
	List(ctx context.Context) ([]bench.Report, error)
	Close() error
}

// Open kind 백엔드를 path 에 연다. bbolt 는 파일, badger/pebble 은 디렉터리 경로다.
func Open(kind, path string) (Store, error) {
	switch kind {
	case KindNone, "":
		return nopStore{}, nil
	case KindBbolt:
		return openBolt(path)
	case KindBadger:
		return openBadger(path)
	case KindPebble:
		return openPebble(path)
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q (want one of %v)", kind, Kinds)
	}
}

// encodeKey 시작 시각 + 실행 UUID
func encodeKey(r bench.Report) ([]byte, error) {
	id, err := uuid.Parse(r.RunID)
	if err != nil {
		return nil, errors.Wrapf(err, "parse run id %q", r.RunID)
	}

	key := make([]byte, keySize)
	binary.BigEndian.PutUint64(key[:8], uint64(r.StartedAt.UnixNano()))
	copy(key[8:], id[:])
	return key, nil
}

func encodeRecord(r bench.Report) (key, value []byte, err error) {
	key, err = encodeKey(r)
	if err != nil {
		return nil, nil, err
	}
	value, err = json.Marshal(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "marshal report")
	}
	return key, value, nil
}

func decodeValue(value []byte) (bench.Report, error) {
	var r bench.Report
	if err := json.Unmarshal(value, &r); err != nil {
		return bench.Report{}, errors.Wrap(err, "unmarshal report")
	}
	return r, nil
}

// nopStore 저장하지 않는 저장소
type nopStore struct{}

func (nopStore) Put(ctx context.Context, _ bench.Report) error { return ctx.Err() }

func (nopStore) List(ctx context.Context) ([]bench.Report, error) { return nil, ctx.Err() }

func (nopStore) Close() error { return nil }
