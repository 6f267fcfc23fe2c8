// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/wattpeak/staker/metrics"

var (
	metricCalls        = metrics.LazyLoadCounterVec("calls_count", []string{"action", "result"})
	metricCallDuration = metrics.LazyLoadHistogramVec("call_duration_us", []string{"action"}, metrics.BucketCallDuration)
	metricTotalStaked  = metrics.LazyLoadGauge("total_staked")
	metricEpochCount   = metrics.LazyLoadGauge("epoch_count")
	metricStakers      = metrics.LazyLoadHistogram("stakers_per_epoch", metrics.BucketStakers)
)
