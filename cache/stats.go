// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts the hits and misses of GetOrLoad.
type Stats struct {
	hit, miss atomic.Int64
	reported  atomic.Int32 // hit rate in per mille at the last HitRate call
}

func (cs *Stats) record(hit bool) {
	if hit {
		cs.hit.Add(1)
	} else {
		cs.miss.Add(1)
	}
}

// Counts returns the number of hits and misses so far.
func (cs *Stats) Counts() (hit, miss int64) {
	return cs.hit.Load(), cs.miss.Load()
}

// HitRate returns the hit rate in per mille, and whether it moved since
// the previous call.
func (cs *Stats) HitRate() (int32, bool) {
	hit, miss := cs.Counts()
	var rate int32
	if lookups := hit + miss; lookups > 0 {
		rate = int32(hit * 1000 / lookups)
	}
	return rate, cs.reported.Swap(rate) != rate
}
