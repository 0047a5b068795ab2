package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

var errDiskFull = errors.New("disk full")

// flakyDisk wraps writeFileAtomic and fails while broken is set.
type flakyDisk struct {
	broken atomic.Bool
	writes atomic.Int64
}

func (d *flakyDisk) write(path string, data []byte) error {
	d.writes.Add(1)
	if d.broken.Load() {
		return errDiskFull
	}
	return writeFileAtomic(path, data)
}

func attachWith(t *testing.T, strategy string, disk *flakyDisk, log *zap.Logger) (*Store, types.Config) {
	t.Helper()
	cfg := types.Config{DataDir: t.TempDir(), Sync: strategy}
	s := NewStore(log, WithWriteFunc(disk.write))
	require.NoError(t, s.Attach(cfg))
	t.Cleanup(func() { s.Detach() })
	return s, cfg
}

func goodsOnDisk(t *testing.T, path string) []types.Good {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Goods []types.Good `json:"goods"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc.Goods
}

func TestAsyncFlushWritesAllMutations(t *testing.T) {
	disk := &flakyDisk{}
	s, cfg := attachWith(t, types.SyncAsync, disk, nil)

	for i := 0; i < 50; i++ {
		_, err := s.AddGood(&types.Good{Name: fmt.Sprintf("Potion %d", i), Quantity: 1})
		require.NoError(t, err)
	}
	require.NoError(t, s.Flush())

	onDisk := goodsOnDisk(t, cfg.DocumentPath())
	require.Len(t, onDisk, 50)
	assert.Equal(t, "Potion 49", onDisk[49].Name)
	// One write for the empty document plus at most one per mutation.
	assert.LessOrEqual(t, disk.writes.Load(), int64(51))
}

func TestAsyncConcurrentMutations(t *testing.T) {
	disk := &flakyDisk{}
	s, cfg := attachWith(t, types.SyncAsync, disk, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, err := s.AddGood(&types.Good{Name: fmt.Sprintf("Rune %d-%d", n, j)})
				assert.NoError(t, err)
				s.AllGoods()
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, s.Detach())

	onDisk := goodsOnDisk(t, cfg.DocumentPath())
	require.Len(t, onDisk, 80)
	seen := make(map[int]bool)
	for _, g := range onDisk {
		assert.False(t, seen[g.ID], "duplicate id %d", g.ID)
		seen[g.ID] = true
	}
}

func TestAsyncFailureIsReported(t *testing.T) {
	disk := &flakyDisk{}
	s, _ := attachWith(t, types.SyncAsync, disk, nil)

	disk.broken.Store(true)
	g, err := s.AddGood(&types.Good{Name: "Moon Dust"})
	require.NoError(t, err, "mutations do not return persistence errors")

	err = s.Flush()
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, errDiskFull)
	assert.NotEmpty(t, perr.WriteID)

	select {
	case reported := <-s.Errors():
		assert.ErrorIs(t, reported, errDiskFull)
	default:
		t.Fatal("expected an error on the Errors channel")
	}

	got, err := s.GoodByID(g.ID)
	require.NoError(t, err, "in-memory state is kept after a failed write")
	assert.Equal(t, "Moon Dust", got.Name)

	disk.broken.Store(false)
	_, err = s.AddGood(&types.Good{Name: "Dimeritium Bomb"})
	require.NoError(t, err)
	assert.NoError(t, s.Flush(), "the next successful write clears the last error")
}

func TestImmediateWritesBeforeReturning(t *testing.T) {
	disk := &flakyDisk{}
	s, cfg := attachWith(t, types.SyncImmediate, disk, nil)

	_, err := s.AddGood(&types.Good{Name: "Swallow", Quantity: 3})
	require.NoError(t, err)

	onDisk := goodsOnDisk(t, cfg.DocumentPath())
	require.Len(t, onDisk, 1)
	assert.Equal(t, 3, onDisk[0].Quantity)
}

func TestImmediateFailureIsReported(t *testing.T) {
	disk := &flakyDisk{}
	s, cfg := attachWith(t, types.SyncImmediate, disk, nil)

	disk.broken.Store(true)
	_, err := s.AddGood(&types.Good{Name: "Thunderbolt"})
	require.NoError(t, err)

	require.Len(t, s.Errors(), 1)
	assert.ErrorIs(t, s.Detach(), errDiskFull)
	assert.Empty(t, goodsOnDisk(t, cfg.DocumentPath()), "the file keeps the last good snapshot")
}

func TestOnCloseWritesOnlyOnFlush(t *testing.T) {
	disk := &flakyDisk{}
	s, cfg := attachWith(t, types.SyncOnClose, disk, nil)
	created := disk.writes.Load()

	for _, name := range []string{"Griffin Armor", "Viper Sword"} {
		_, err := s.AddGood(&types.Good{Name: name})
		require.NoError(t, err)
	}
	assert.Equal(t, created, disk.writes.Load())
	assert.Empty(t, goodsOnDisk(t, cfg.DocumentPath()))

	require.NoError(t, s.Flush())
	assert.Equal(t, created+1, disk.writes.Load(), "pending snapshots coalesce into one write")
	assert.Len(t, goodsOnDisk(t, cfg.DocumentPath()), 2)

	require.NoError(t, s.Flush())
	assert.Equal(t, created+1, disk.writes.Load(), "nothing pending, nothing written")
}

func TestOnCloseDetachWrites(t *testing.T) {
	disk := &flakyDisk{}
	s, cfg := attachWith(t, types.SyncOnClose, disk, nil)

	_, err := s.AddMerchant(&types.Merchant{Name: "Fergus Graem"})
	require.NoError(t, err)
	require.NoError(t, s.Detach())

	reopened := NewStore(nil)
	require.NoError(t, reopened.Attach(cfg))
	defer reopened.Detach()
	m, err := reopened.MerchantByName("Fergus Graem")
	require.NoError(t, err)
	assert.Equal(t, 1, m.ID)
}

func TestFullErrorChannelCountsDrops(t *testing.T) {
	disk := &flakyDisk{}
	s, _ := attachWith(t, types.SyncImmediate, disk, nil)

	disk.broken.Store(true)
	extra := 3
	for i := 0; i < errorBuffer+extra; i++ {
		_, err := s.AddHunter(&types.Hunter{Name: fmt.Sprintf("Hunter %d", i)})
		require.NoError(t, err)
	}

	assert.Len(t, s.Errors(), errorBuffer)
	assert.Equal(t, int64(extra), s.DroppedErrors())
	assert.Len(t, s.AllHunters(), errorBuffer+extra)
}

func TestPersistenceIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	disk := &flakyDisk{}
	s, _ := attachWith(t, types.SyncImmediate, disk, zap.New(core))

	require.Equal(t, 1, logs.FilterMessage("store attached").Len())

	_, err := s.AddGood(&types.Good{Name: "Blizzard"})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("document persisted").Len())

	disk.broken.Store(true)
	_, err = s.AddGood(&types.Good{Name: "Maribor Forest"})
	require.NoError(t, err)

	failed := logs.FilterMessage("persist document failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Contains(t, failed[0].ContextMap(), "write_id")
}

func TestDetachIsIdempotent(t *testing.T) {
	disk := &flakyDisk{}
	s, _ := attachWith(t, types.SyncAsync, disk, nil)

	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach())
	assert.ErrorIs(t, s.Flush(), types.ErrStoreDetached)
	assert.Equal(t, "", s.Path())
}
