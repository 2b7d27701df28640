package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsortbench/bench"
)

func testReport(started time.Time, workers int) bench.Report {
	return bench.Report{
		RunID:      uuid.NewString(),
		StartedAt:  started,
		Workers:    workers,
		PoolSize:   workers,
		ArraySize:  1_000,
		Stages:     2,
		Sequential: bench.Timing{Engine: "sequential", Average: 30 * time.Millisecond},
		Parallel:   bench.Timing{Engine: "parallel", Average: 10 * time.Millisecond},
		Speedup:    3,
	}
}

func openTestStore(t *testing.T, kind string) Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), kind)
	s, err := Open(kind, path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	for _, kind := range []string{KindBbolt, KindBadger, KindPebble} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			s := openTestStore(t, kind)

			base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
			later := testReport(base.Add(2*time.Hour), 8)
			earlier := testReport(base, 2)
			middle := testReport(base.Add(time.Hour), 4)

			// 넣은 순서와 무관하게 시간순으로 나온다.
			for _, r := range []bench.Report{later, earlier, middle} {
				require.NoError(t, s.Put(ctx, r))
			}

			got, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 3)

			assert.Equal(t, earlier.RunID, got[0].RunID)
			assert.Equal(t, middle.RunID, got[1].RunID)
			assert.Equal(t, later.RunID, got[2].RunID)
			assert.Equal(t, 8, got[2].Workers)
			assert.Equal(t, 10*time.Millisecond, got[2].Parallel.Average)
			assert.True(t, base.Equal(got[0].StartedAt))
		})
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	for _, kind := range []string{KindBbolt, KindBadger, KindPebble} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), kind)

			s, err := Open(kind, path)
			require.NoError(t, err)
			r := testReport(time.Now().UTC(), 4)
			require.NoError(t, s.Put(ctx, r))
			require.NoError(t, s.Close())

			s, err = Open(kind, path)
			require.NoError(t, err)
			defer s.Close()

			got, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, r.RunID, got[0].RunID)
		})
	}
}

func TestStoreRejectsBadRunID(t *testing.T) {
	s := openTestStore(t, KindBbolt)
	r := testReport(time.Now(), 1)
	r.RunID = "not-a-uuid"
	assert.Error(t, s.Put(context.Background(), r))
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	s := openTestStore(t, KindPebble)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Put(ctx, testReport(time.Now(), 1))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestOpenNone(t *testing.T) {
	for _, kind := range []string{"", KindNone} {
		s, err := Open(kind, "")
		require.NoError(t, err)
		require.NoError(t, s.Put(context.Background(), testReport(time.Now(), 1)))

		got, err := s.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, s.Close())
	}
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open("sqlite", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownBackend))
	assert.Contains(t, err.Error(), `"sqlite"`)
}

func TestEncodeKeyOrdersByTime(t *testing.T) {
	a, err := encodeKey(testReport(time.Unix(100, 0), 1))
	require.NoError(t, err)
	b, err := encodeKey(testReport(time.Unix(200, 0), 1))
	require.NoError(t, err)

	assert.Len(t, a, keySize)
	assert.Less(t, string(a), string(b))
}
