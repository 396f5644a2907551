package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both non-network backends must satisfy the same contract.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := OpenFile(t.TempDir())
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
}

func TestGetAbsentKey(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			value, rev, err := store.Get(context.Background(), "missing")
			require.NoError(t, err)
			assert.Nil(t, value)
			assert.Equal(t, NoRevision, rev)
		})
	}
}

func TestCompareAndSwapCreatesWhenAbsent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.CompareAndSwap(ctx, "k", []byte(`1`), NoRevision))

			value, rev, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte(`1`), value)
			assert.NotEqual(t, NoRevision, rev)

			// Creating again must fail: the key exists now.
			err = store.CompareAndSwap(ctx, "k", []byte(`2`), NoRevision)
			require.ErrorIs(t, err, ErrRevisionMismatch)
		})
	}
}

func TestCompareAndSwapRejectsStaleRevision(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "k", []byte(`1`)))

			_, rev, err := store.Get(ctx, "k")
			require.NoError(t, err)

			// Another writer sneaks in.
			require.NoError(t, store.Put(ctx, "k", []byte(`2`)))

			err = store.CompareAndSwap(ctx, "k", []byte(`3`), rev)
			require.ErrorIs(t, err, ErrRevisionMismatch)

			value, _, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte(`2`), value, "losing write must not clobber")
		})
	}
}

func TestCompareAndSwapSucceedsWithFreshRevision(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "k", []byte(`1`)))

			_, rev, err := store.Get(ctx, "k")
			require.NoError(t, err)
			require.NoError(t, store.CompareAndSwap(ctx, "k", []byte(`2`), rev))

			value, _, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte(`2`), value)
		})
	}
}

func TestConcurrentSwapsSingleWinner(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "k", []byte(`base`)))
			_, rev, err := store.Get(ctx, "k")
			require.NoError(t, err)

			const writers = 16
			var wg sync.WaitGroup
			wins := make(chan int, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					value := []byte(fmt.Sprintf("writer-%d", i))
					if store.CompareAndSwap(ctx, "k", value, rev) == nil {
						wins <- i
					}
				}(i)
			}
			wg.Wait()
			close(wins)

			var winners []int
			for w := range wins {
				winners = append(winners, w)
			}
			require.Len(t, winners, 1, "exactly one swap against the same revision may win")

			value, _, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte(fmt.Sprintf("writer-%d", winners[0])), value)
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "gifts", []byte(`{"nextId":1,"gifts":[]}`)))

	second, err := OpenFile(dir)
	require.NoError(t, err)
	value, rev, err := second.Get(ctx, "gifts")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"nextId":1,"gifts":[]}`), value)
	assert.NotEqual(t, NoRevision, rev)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "gifts", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "gifts.json", filepath.Base(entries[0].Name()))
}
