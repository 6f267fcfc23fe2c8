// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/wattpeak/staker/metrics"

var (
	metricStoreReads   = metrics.LazyLoadCounterVec("state_store_reads_count", []string{"result"})
	metricCommitWrites = metrics.LazyLoadCounterVec("state_commit_writes_count", []string{"type"})
	metricCacheLookups = metrics.LazyLoadGaugeVec("state_cache_lookups", []string{"event"})
)
