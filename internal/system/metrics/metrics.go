/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package metrics exposes the Prometheus metrics of the authorization server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Token request results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// MetricsManager owns a registry and the collectors recorded by the OAuth components.
// All record methods are safe to call on a nil manager.
type MetricsManager struct {
	registry *prometheus.Registry

	codesIssued    prometheus.Counter
	tokenRequests  *prometheus.CounterVec
	introspections *prometheus.CounterVec
	codeSweeps     prometheus.Counter
	codesSwept     prometheus.Counter
	httpDuration   *prometheus.HistogramVec
}

// NewMetricsManager creates a metrics manager with its own registry.
func NewMetricsManager() *MetricsManager {
	mm := &MetricsManager{
		registry: prometheus.NewRegistry(),
	}
	mm.initMetrics()
	mm.registerMetrics()
	return mm
}

func (mm *MetricsManager) initMetrics() {
	mm.codesIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "oauth_authorization_codes_issued_total",
		Help: "Total number of authorization codes issued",
	})

	mm.tokenRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oauth_token_requests_total",
			Help: "Total number of token endpoint requests by result",
		},
		[]string{"result"},
	)

	mm.introspections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oauth_introspections_total",
			Help: "Total number of token introspections by outcome",
		},
		[]string{"active"},
	)

	mm.codeSweeps = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "oauth_authorization_code_sweeps_total",
		Help: "Total number of expired authorization code sweeps",
	})

	mm.codesSwept = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "oauth_authorization_codes_swept_total",
		Help: "Total number of expired authorization codes removed",
	})

	mm.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
}

func (mm *MetricsManager) registerMetrics() {
	mm.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		mm.codesIssued,
		mm.tokenRequests,
		mm.introspections,
		mm.codeSweeps,
		mm.codesSwept,
		mm.httpDuration,
	)
}

// RecordAuthorizationCodeIssued counts an issued authorization code.
func (mm *MetricsManager) RecordAuthorizationCodeIssued() {
	if mm == nil {
		return
	}
	mm.codesIssued.Inc()
}

// RecordTokenRequest counts a token endpoint request with the given result.
func (mm *MetricsManager) RecordTokenRequest(result string) {
	if mm == nil {
		return
	}
	mm.tokenRequests.WithLabelValues(result).Inc()
}

// RecordIntrospection counts an introspection call.
func (mm *MetricsManager) RecordIntrospection(active bool) {
	if mm == nil {
		return
	}
	label := "false"
	if active {
		label = "true"
	}
	mm.introspections.WithLabelValues(label).Inc()
}

// RecordSweep counts a sweep of the authorization code store and the codes it removed.
func (mm *MetricsManager) RecordSweep(removed int) {
	if mm == nil {
		return
	}
	mm.codeSweeps.Inc()
	mm.codesSwept.Add(float64(removed))
}

// ObserveHTTPRequest records the duration of a request served by the given route.
func (mm *MetricsManager) ObserveHTTPRequest(route string, duration time.Duration) {
	if mm == nil {
		return
	}
	mm.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler returns the HTTP handler exposing the registry in the Prometheus text format.
func (mm *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(mm.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (mm *MetricsManager) Registry() *prometheus.Registry {
	return mm.registry
}
