package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"knowledge-assistant-be/internal/entity"
	"knowledge-assistant-be/internal/repository/memory"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the handful of commands the sequencer issues
type fakeRedis struct {
	redis.Cmdable

	mu        sync.Mutex
	values    map[string]int64
	ttls      map[string]time.Duration
	down      bool
	expireErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]int64{}, ttls: map[string]time.Duration{}}
}

var errRedisDown = errors.New("connection refused")

func (f *fakeRedis) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewIntResult(0, errRedisDown)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = int64(value.(int))
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key]++
	return redis.NewIntResult(f.values[key], nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func persistTurns(t *testing.T, store *memory.Store, sessionID string, n int) {
	t.Helper()
	ctx := context.Background()
	repo := store.NewUnitOfWork(ctx).RagConversationRepository()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Create(ctx, &entity.RagConversation{SessionId: sessionID, MessageIndex: i}))
	}
}

func TestSequencer_CountFallback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uow := store.NewUnitOfWork(ctx)
	seq := NewSequencer(nil, nil)

	idx, err := seq.Next(ctx, uow, "s-1")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	require.NoError(t, uow.RagConversationRepository().Create(ctx, &entity.RagConversation{SessionId: "s-1"}))
	require.NoError(t, uow.RagConversationRepository().Create(ctx, &entity.RagConversation{SessionId: "s-2"}))

	idx, err = seq.Next(ctx, uow, "s-1")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestSequencer_Redis(t *testing.T) {
	tests := []struct {
		name      string
		persisted int
		want      []int
	}{
		{"new session starts at zero", 0, []int{0, 1, 2}},
		{"existing session continues after persisted rows", 4, []int{4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := memory.NewStore()
			persistTurns(t, store, "s-1", tt.persisted)
			rdb := newFakeRedis()
			seq := NewSequencer(rdb, nil)

			var got []int
			for range tt.want {
				idx, err := seq.Next(ctx, store.NewUnitOfWork(ctx), "s-1")
				require.NoError(t, err)
				got = append(got, idx)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, keyTTL, rdb.ttls[sessionKey("s-1")])
		})
	}
}

func TestSequencer_RedisConcurrentFirstTurns(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	persistTurns(t, store, "s-1", 3)
	seq := NewSequencer(newFakeRedis(), nil)

	const turns = 10
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got []int
	)
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx, err := seq.Next(ctx, store.NewUnitOfWork(ctx), "s-1")
			assert.NoError(t, err)
			mu.Lock()
			got = append(got, idx)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Ints(got)
	want := make([]int, turns)
	for i := range want {
		want[i] = 3 + i
	}
	assert.Equal(t, want, got)
}

func TestSequencer_RedisDownFallsBackToCount(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	persistTurns(t, store, "s-1", 2)
	rdb := newFakeRedis()
	rdb.down = true

	idx, err := NewSequencer(rdb, nil).Next(ctx, store.NewUnitOfWork(ctx), "s-1")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestSequencer_ExpireFailureKeepsIndex(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rdb := newFakeRedis()
	rdb.expireErr = errors.New("READONLY")
	seq := NewSequencer(rdb, nil)

	first, err := seq.Next(ctx, store.NewUnitOfWork(ctx), "s-1")
	require.NoError(t, err)
	second, err := seq.Next(ctx, store.NewUnitOfWork(ctx), "s-1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, []int{first, second})
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "rag:session:abc:idx", sessionKey("abc"))
}
