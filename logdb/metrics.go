// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/wattpeak/staker/metrics"
)

var (
	metricInsertCounter       = metrics.LazyLoadCounterVec("logdb_insert_count", []string{"action"})
	metricCallQueryParameters = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"parameters"})
	metricQueryOrderCounter   = metrics.LazyLoadCounterVec("logdb_query_order", []string{"order"})
	metricLimitBucket         = metrics.LazyLoadHistogram("logdb_query_limit_bucket", []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleFilter(filter *CallFilter) {
	if metrics.NoOp() {
		return
	}

	paramsUsed := make([]string, 0, 3)
	if filter.Action != "" {
		paramsUsed = append(paramsUsed, "action")
	}
	if filter.Caller != nil {
		paramsUsed = append(paramsUsed, "caller")
	}
	if filter.Success != nil {
		paramsUsed = append(paramsUsed, "success")
	}
	metricCallQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})

	if filter.Order == DESC {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "desc"})
	} else {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "asc"})
	}

	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit > 1000 {
			limit = 1001
		}
		metricLimitBucket().Observe(int64(limit))
	}
}
