// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattpeak/staker/cache"
	"github.com/wattpeak/staker/kv"
	"github.com/wattpeak/staker/lvldb"
	"github.com/wattpeak/staker/state"
)

func newStore(t *testing.T) *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func collect(t *testing.T, st *state.State, prefix string) map[string]string {
	got := make(map[string]string)
	var order []string
	require.NoError(t, st.Iterate([]byte(prefix), func(k, v []byte) error {
		got[string(k)] = string(v)
		order = append(order, string(k))
		return nil
	}))
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1], order[i])
	}
	return got
}

func TestStateGetPutDelete(t *testing.T) {
	db := newStore(t)
	require.NoError(t, db.Put([]byte("a"), []byte("1")))

	st := state.New(db, nil)

	v, err := st.Get([]byte("a"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	v, err = st.Get([]byte("missing"))
	assert.NoError(t, err)
	assert.Nil(t, v)

	st.Put([]byte("b"), []byte("2"))
	st.Delete([]byte("a"))

	has, err := st.Has([]byte("a"))
	assert.NoError(t, err)
	assert.False(t, has)
	has, err = st.Has([]byte("b"))
	assert.NoError(t, err)
	assert.True(t, has)

	// nothing reaches the store before commit
	_, err = db.Get([]byte("b"))
	assert.True(t, db.IsNotFound(err))
}

func TestStateCheckpoint(t *testing.T) {
	st := state.New(newStore(t), nil)

	st.Put([]byte("k"), []byte("v1"))
	rev := st.NewCheckpoint()
	st.Put([]byte("k"), []byte("v2"))
	st.Put([]byte("other"), []byte("x"))

	v, _ := st.Get([]byte("k"))
	assert.Equal(t, []byte("v2"), v)

	st.RevertTo(rev)
	v, _ = st.Get([]byte("k"))
	assert.Equal(t, []byte("v1"), v)
	v, _ = st.Get([]byte("other"))
	assert.Nil(t, v)
	assert.Equal(t, 1, st.Stage().Len())
}

func TestStateIterate(t *testing.T) {
	db := newStore(t)
	for _, k := range []string{"p.b", "p.d", "q.a"} {
		require.NoError(t, db.Put([]byte(k), []byte("db")))
	}

	st := state.New(db, nil)
	st.Put([]byte("p.a"), []byte("new"))
	st.Put([]byte("p.d"), []byte("updated"))
	st.Delete([]byte("p.b"))

	assert.Equal(t, map[string]string{
		"p.a": "new",
		"p.d": "updated",
	}, collect(t, st, "p."))

	boom := errors.New("boom")
	calls := 0
	err := st.Iterate([]byte("p."), func(k, v []byte) error {
		calls++
		return boom
	})
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestStateCommit(t *testing.T) {
	db := newStore(t)
	require.NoError(t, db.Put([]byte("gone"), []byte("x")))

	lru, err := cache.NewLRU(16)
	require.NoError(t, err)

	st := state.New(db, lru)
	_, err = st.Get([]byte("gone"))
	require.NoError(t, err)

	st.Put([]byte("k"), []byte("v"))
	st.Delete([]byte("gone"))
	require.NoError(t, st.Commit())
	assert.Equal(t, 0, st.Stage().Len())

	v, err := db.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
	_, err = db.Get([]byte("gone"))
	assert.True(t, db.IsNotFound(err))

	// a fresh state sharing the cache observes committed values
	fresh := state.New(db, lru)
	v, err = fresh.Get([]byte("gone"))
	assert.NoError(t, err)
	assert.Nil(t, v)
	v, err = fresh.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestStateCacheStats(t *testing.T) {
	db := newStore(t)
	require.NoError(t, db.Put([]byte("k"), []byte("v")))

	lru, err := cache.NewLRU(16)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := state.New(db, lru).Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
	}

	hit, miss := lru.Stats().Counts()
	assert.Equal(t, int64(2), hit)
	assert.Equal(t, int64(1), miss)
}

type failingStore struct {
	kv.Store
}

func (failingStore) Batch(fn func(kv.Putter) error) error {
	return errors.New("disk full")
}

func TestStateCommitFailure(t *testing.T) {
	db := newStore(t)
	st := state.New(failingStore{db}, nil)
	st.Put([]byte("k"), []byte("v"))

	err := st.Commit()
	var stateErr *state.Error
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "state: disk full", err.Error())

	// pending changes survive a failed commit
	v, _ := st.Get([]byte("k"))
	assert.Equal(t, []byte("v"), v)
}
