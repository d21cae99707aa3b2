package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/molforge/pkg/errors"
)

type payload struct {
	SMILES string `json:"smiles"`
	PDB    []byte `json:"pdb"`
}

// ─────────────────────────────────────────────────────────────────────────────
// redismock suite
// ─────────────────────────────────────────────────────────────────────────────

type CacheTestSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	cache Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	s.cache = NewRedisCache(NewClientFromUniversal(db, logging.NewNopLogger()), logging.NewNopLogger(), WithPrefix("test:"))
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *CacheTestSuite) TestGet_Hit() {
	val := payload{SMILES: "CCO", PDB: []byte("END\n")}
	raw, _ := json.Marshal(val)
	s.mock.ExpectGet("test:k1").SetVal(string(raw))

	var dest payload
	s.Require().NoError(s.cache.Get(context.Background(), "k1", &dest))
	s.Equal(val, dest)
}

func (s *CacheTestSuite) TestGet_Miss() {
	s.mock.ExpectGet("test:k1").RedisNil()

	var dest payload
	err := s.cache.Get(context.Background(), "k1", &dest)
	s.True(IsCacheMiss(err))
	s.True(pkgerrors.IsNotFound(err))
}

func (s *CacheTestSuite) TestGet_BackendError() {
	s.mock.ExpectGet("test:k1").SetErr(fmt.Errorf("connection reset"))

	var dest payload
	err := s.cache.Get(context.Background(), "k1", &dest)
	s.Error(err)
	s.False(IsCacheMiss(err))
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeCacheError))
}

func (s *CacheTestSuite) TestGet_CorruptValue() {
	s.mock.ExpectGet("test:k1").SetVal("{not json")

	var dest payload
	err := s.cache.Get(context.Background(), "k1", &dest)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeSerialization))
}

func (s *CacheTestSuite) TestDelete() {
	s.mock.ExpectDel("test:a", "test:b").SetVal(2)
	s.NoError(s.cache.Delete(context.Background(), "a", "b"))
	s.NoError(s.cache.Delete(context.Background()))
}

func (s *CacheTestSuite) TestExists() {
	s.mock.ExpectExists("test:k1").SetVal(1)
	ok, err := s.cache.Exists(context.Background(), "k1")
	s.NoError(err)
	s.True(ok)
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

// ─────────────────────────────────────────────────────────────────────────────
// miniredis round trips
// ─────────────────────────────────────────────────────────────────────────────

func newMiniCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(&RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, logging.NewNopLogger(), WithPrefix("mf:"), WithDefaultTTL(time.Hour)), mr
}

func TestCache_SetGetWithTTL(t *testing.T) {
	cache, mr := newMiniCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", payload{SMILES: "C"}, 0))
	assert.True(t, mr.Exists("mf:k"))

	ttl := mr.TTL("mf:k")
	assert.InDelta(t, float64(time.Hour), float64(ttl), float64(6*time.Minute+time.Second))

	var got payload
	require.NoError(t, cache.Get(ctx, "k", &got))
	assert.Equal(t, "C", got.SMILES)

	mr.FastForward(2 * time.Hour)
	assert.True(t, IsCacheMiss(cache.Get(ctx, "k", &got)))
}

func TestCache_GetOrSet_LoadsOnceAndCaches(t *testing.T) {
	cache, mr := newMiniCache(t)
	ctx := context.Background()

	var calls atomic.Int32
	loader := func(context.Context) (interface{}, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return payload{SMILES: "CCO", PDB: []byte("ATOM\n")}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var dest payload
			assert.NoError(t, cache.GetOrSet(ctx, "ethanol", &dest, 0, loader))
			assert.Equal(t, "CCO", dest.SMILES)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, mr.Exists("mf:ethanol"))

	var dest payload
	require.NoError(t, cache.GetOrSet(ctx, "ethanol", &dest, 0, loader))
	assert.Equal(t, int32(1), calls.Load(), "second call is served from redis")
	assert.Equal(t, []byte("ATOM\n"), dest.PDB)
}

func TestCache_GetOrSet_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	cache, mr := newMiniCache(t)

	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(ctx context.Context) (interface{}, error) {
		calls.Add(1)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return payload{SMILES: "CCO"}, nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		var dest payload
		errA <- cache.GetOrSet(ctxA, "ethanol", &dest, 0, loader)
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	errB := make(chan error, 1)
	var destB payload
	go func() {
		errB <- cache.GetOrSet(context.Background(), "ethanol", &destB, 0, loader)
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	require.NoError(t, <-errB)
	assert.Equal(t, "CCO", destB.SMILES)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, mr.Exists("mf:ethanol"))
}

func TestCache_GetOrSet_LoaderErrorNotCached(t *testing.T) {
	cache, mr := newMiniCache(t)

	boom := pkgerrors.InvalidSMILES("unparseable")
	var dest payload
	err := cache.GetOrSet(context.Background(), "bad", &dest, 0, func(context.Context) (interface{}, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("mf:bad"))
}

func TestCache_GetOrSet_SurvivesCacheOutage(t *testing.T) {
	cache, mr := newMiniCache(t)
	mr.Close()

	var dest payload
	err := cache.GetOrSet(context.Background(), "k", &dest, 0, func(context.Context) (interface{}, error) {
		return payload{SMILES: "N"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "N", dest.SMILES)
}

//Personal.AI order the ending
