/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics provides Prometheus metrics for schema discovery.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Discovery results.
const (
	ResultOK     = "ok"
	ResultError  = "error"
	ResultCached = "cached"
)

// Collector holds the discovery metrics. A nil *Collector records nothing.
type Collector struct {
	// Discovery metrics
	DiscoveriesTotal  *prometheus.CounterVec
	DiscoveryDuration prometheus.Histogram
	FailuresTotal     *prometheus.CounterVec
	SkippedFields     *prometheus.CounterVec

	// Cache metrics
	CacheEntries prometheus.Gauge
	CachePurges  prometheus.Counter

	// Override metrics
	OverrideReloads      prometheus.Counter
	OverrideReloadErrors prometheus.Counter
}

// New creates a collector registered with the default Prometheus registerer.
func New() *Collector {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a collector registered with reg. A nil reg
// creates unregistered metrics.
func NewWithRegisterer(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		DiscoveriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "schema",
				Name:      "discoveries_total",
				Help:      "Total number of discovery requests by result",
			},
			[]string{"class", "result"},
		),
		DiscoveryDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "schema",
				Name:      "discovery_duration_seconds",
				Help:      "Duration of uncached discovery passes in seconds",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
			},
		),
		FailuresTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "schema",
				Name:      "failures_total",
				Help:      "Total number of failed discovery passes by error kind",
			},
			[]string{"kind"},
		),
		SkippedFields: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "schema",
				Name:      "skipped_fields_total",
				Help:      "Total number of fields skipped by reason",
			},
			[]string{"reason"},
		),

		CacheEntries: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "schema",
				Name:      "cache_entries",
				Help:      "Number of cached schemas",
			},
		),
		CachePurges: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: "schema",
				Name:      "cache_purges_total",
				Help:      "Total number of schema cache purges",
			},
		),

		OverrideReloads: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: "schema",
				Name:      "override_reloads_total",
				Help:      "Total number of overrides file reloads",
			},
		),
		OverrideReloadErrors: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: "schema",
				Name:      "override_reload_errors_total",
				Help:      "Total number of failed overrides file reloads",
			},
		),
	}
}

// RecordDiscovery records one discovery request. d is ignored for cached
// results.
func (c *Collector) RecordDiscovery(class, result string, d time.Duration) {
	if c == nil {
		return
	}
	c.DiscoveriesTotal.WithLabelValues(class, result).Inc()
	if result != ResultCached {
		c.DiscoveryDuration.Observe(d.Seconds())
	}
}

// RecordFailure records a failed pass.
func (c *Collector) RecordFailure(kind string) {
	if c == nil {
		return
	}
	c.FailuresTotal.WithLabelValues(kind).Inc()
}

// RecordSkip records a skipped field.
func (c *Collector) RecordSkip(reason string) {
	if c == nil {
		return
	}
	c.SkippedFields.WithLabelValues(reason).Inc()
}

// SetCacheEntries updates the cache size gauge.
func (c *Collector) SetCacheEntries(n int) {
	if c == nil {
		return
	}
	c.CacheEntries.Set(float64(n))
}

// RecordPurge records a cache purge.
func (c *Collector) RecordPurge() {
	if c == nil {
		return
	}
	c.CachePurges.Inc()
}

// RecordReload records an overrides reload attempt.
func (c *Collector) RecordReload(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.OverrideReloadErrors.Inc()
		return
	}
	c.OverrideReloads.Inc()
}
