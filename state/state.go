// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wattpeak/staker/cache"
	"github.com/wattpeak/staker/kv"
	"github.com/wattpeak/staker/log"
	"github.com/wattpeak/staker/stackedmap"
)

var logger = log.WithContext("pkg", "state")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State is a revertable overlay over a kv store.
// A nil value in the overlay marks a deleted key.
type State struct {
	db    kv.Store
	cache *cache.LRU // committed values, optional
	sm    *stackedmap.StackedMap
}

// New create state object.
// The cache may be nil.
func New(db kv.Store, cache *cache.LRU) *State {
	state := State{
		db:    db,
		cache: cache,
	}
	state.sm = stackedmap.New(state.cacheGetter)
	return &state
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (any, bool, error) {
	if s.cache == nil {
		v, err := s.load(key)
		return v, true, err
	}
	v, err := s.cache.GetOrLoad(key, s.load)
	s.reportCache()
	return v, true, err
}

// reportCache publishes the cache counters, and logs them when the hit rate moved.
func (s *State) reportCache() {
	stats := s.cache.Stats()
	hit, miss := stats.Counts()
	metricCacheLookups().SetWithLabel(hit, map[string]string{"event": "hit"})
	metricCacheLookups().SetWithLabel(miss, map[string]string{"event": "miss"})

	if rate, changed := stats.HitRate(); changed {
		logger.Debug("cache stats", "lookups", hit+miss, "hitrate", fmt.Sprintf("%.3f", float64(rate)/1000))
	}
}

func (s *State) load(key any) (any, error) {
	val, err := s.db.Get([]byte(key.(string)))
	if err != nil {
		if s.db.IsNotFound(err) {
			metricStoreReads().AddWithLabel(1, map[string]string{"result": "missing"})
			return []byte(nil), nil
		}
		return nil, err
	}
	metricStoreReads().AddWithLabel(1, map[string]string{"result": "found"})
	return val, nil
}

// Get returns the value of key, or nil if absent.
// The returned slice must not be modified.
func (s *State) Get(key []byte) ([]byte, error) {
	v, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, &Error{err}
	}
	return v.([]byte), nil
}

// Has returns whether key holds a value.
func (s *State) Has(key []byte) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// Put sets the value of key. An empty value deletes the key.
func (s *State) Put(key, value []byte) {
	if len(value) == 0 {
		s.Delete(key)
		return
	}
	s.sm.Put(string(key), bytes.Clone(value))
}

// Delete removes key.
func (s *State) Delete(key []byte) {
	s.sm.Put(string(key), []byte(nil))
}

// Iterate visits all keys with the given prefix in ascending order, merging
// committed values with the uncommitted overlay.
// The iteration stops at the first error returned by fn.
func (s *State) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	merged := make(map[string][]byte)
	if err := s.db.Iterate(kv.PrefixRange(prefix), func(pair kv.Pair) bool {
		merged[string(pair.Key())] = bytes.Clone(pair.Value())
		return true
	}); err != nil {
		return &Error{err}
	}

	for k, v := range s.changes() {
		if bytes.HasPrefix([]byte(k), prefix) {
			merged[k] = v
		}
	}

	keys := make([]string, 0, len(merged))
	for k, v := range merged {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := fn([]byte(k), merged[k]); err != nil {
			return err
		}
	}
	return nil
}

// changes returns the latest overlay value of every touched key.
func (s *State) changes() map[string][]byte {
	changes := make(map[string][]byte)
	s.sm.Journal(func(k, v any) bool {
		changes[k.(string)] = v.([]byte)
		return true
	})
	return changes
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object holding all pending changes.
func (s *State) Stage() *Stage {
	return &Stage{
		db:      s.db,
		cache:   s.cache,
		changes: s.changes(),
	}
}

// Commit flushes all pending changes and starts a fresh overlay.
func (s *State) Commit() error {
	if err := s.Stage().Commit(); err != nil {
		return err
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return nil
}
