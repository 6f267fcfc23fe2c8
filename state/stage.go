// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/wattpeak/staker/cache"
	"github.com/wattpeak/staker/kv"
)

// Stage abstracts pending changes on the kv store.
type Stage struct {
	db      kv.Store
	cache   *cache.LRU
	changes map[string][]byte
}

// Len returns the number of touched keys.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes in one batch.
// Nothing is written if any write fails.
func (s *Stage) Commit() error {
	if len(s.changes) == 0 {
		return nil
	}

	var puts, dels int64
	if err := s.db.Batch(func(w kv.Putter) error {
		for k, v := range s.changes {
			if v == nil {
				dels++
				if err := w.Delete([]byte(k)); err != nil {
					return err
				}
				continue
			}
			puts++
			if err := w.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return &Error{err}
	}

	if s.cache != nil {
		for k, v := range s.changes {
			s.cache.Add(k, v)
		}
	}
	metricCommitWrites().AddWithLabel(puts, map[string]string{"type": "put"})
	metricCommitWrites().AddWithLabel(dels, map[string]string{"type": "delete"})
	return nil
}
