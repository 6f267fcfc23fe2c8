// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"bytes"
	"math/rand"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	// 2 ways of accessing it - useful to avoid lookups
	countVect := CounterVec("countVec1", []string{"zeroOrOne"})

	hist := Histogram("hist1", nil)
	HistogramVec("hist2", []string{"zeroOrOne"}, nil)

	gauge1 := Gauge("gauge1")
	gaugeVec := GaugeVec("gaugeVec1", []string{"zeroOrOne"})

	histTotal := 0
	for i, n := 0, rand.Intn(100)+2; i < n; i++ {
		zeroOrOne := i % 2
		hist.Observe(int64(i))
		HistogramVec("hist2", []string{"zeroOrOne"}, nil).
			ObserveWithLabels(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(zeroOrOne)})
		histTotal += i
	}

	totalCountVec := 0
	randCountVec := rand.Intn(100) + 2
	for i := 0; i < randCountVec; i++ {
		zeroOrOne := i % 2
		countVect.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(zeroOrOne)})
		totalCountVec += i
	}

	lastGauge := int64(0)
	lastGaugeVec := map[string]int64{}
	for i, n := 0, rand.Intn(100)+2; i < n; i++ {
		zeroOrOne := strconv.Itoa(i % 2)
		gaugeVec.SetWithLabel(int64(i), map[string]string{"zeroOrOne": zeroOrOne})
		gauge1.Set(int64(i))
		lastGauge = int64(i)
		lastGaugeVec[zeroOrOne] = int64(i)
	}

	// Gather the metrics
	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
	metricFamilies, err := gatherers.Gather()
	require.NoError(t, err)

	metrics := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		metrics[mf.GetName()] = mf
	}

	// Validate metrics
	require.Equal(t, float64(histTotal), metrics["wattpeak_hist1"].Metric[0].GetHistogram().GetSampleSum())

	sumHistVect := metrics["wattpeak_hist2"].Metric[0].GetHistogram().GetSampleSum() +
		metrics["wattpeak_hist2"].Metric[1].GetHistogram().GetSampleSum()
	require.Equal(t, float64(histTotal), sumHistVect)

	sumCountVec := metrics["wattpeak_countVec1"].Metric[0].GetCounter().GetValue() +
		metrics["wattpeak_countVec1"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(totalCountVec), sumCountVec)

	require.Equal(t, float64(lastGauge), metrics["wattpeak_gauge1"].Metric[0].GetGauge().GetValue())
	sumGaugeVec := metrics["wattpeak_gaugeVec1"].Metric[0].GetGauge().GetValue() +
		metrics["wattpeak_gaugeVec1"].Metric[1].GetGauge().GetValue()
	require.Equal(t, float64(lastGaugeVec["0"]+lastGaugeVec["1"]), sumGaugeVec)
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics() // make sure it starts in the default state of noopMeter

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGauge", nil),
		CounterVec("noopCounter", nil),
		Histogram("noopHist", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogram := LazyLoadHistogram("lazyHistogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}

func TestPromWriteText(t *testing.T) {
	InitializePrometheusMetrics()

	CounterVec("text_calls", []string{"action"}).AddWithLabel(3, map[string]string{"action": "stake"})
	GaugeVec("text_totals", []string{"kind"}).SetWithLabel(42, map[string]string{"kind": "staked"})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf))
	require.Contains(t, buf.String(), `wattpeak_text_calls{action="stake"} 3`)
	require.Contains(t, buf.String(), `wattpeak_text_totals{kind="staked"} 42`)
}
