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

// Package server provides server wide operations and utilities.
package server

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/metrics"
	"github.com/hansung/authserver/internal/system/middleware"
)

// Cors holds the CORS settings of a route.
type Cors struct {
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials bool
}

// RequestWrapOptions holds the options applied when a handler is registered.
type RequestWrapOptions struct {
	Cors        *Cors
	RateLimited bool
}

// ServerOperationServiceInterface defines the server wide operations applied to every route.
type ServerOperationServiceInterface interface {
	WrapHandleFunction(mux *http.ServeMux, pattern string, options *RequestWrapOptions,
		handlerFunc http.HandlerFunc)
}

// ServerOperationService is the default implementation of ServerOperationServiceInterface.
type ServerOperationService struct {
	allowedOrigins []string
	rateLimiter    *middleware.RateLimiter
	metrics        *metrics.MetricsManager

	mu         sync.Mutex
	preflights map[*http.ServeMux]map[string]struct{}
}

// NewServerOperationService creates a new instance of ServerOperationService.
// A nil rate limiter or metrics manager disables the respective wrapping.
func NewServerOperationService(allowedOrigins []string, rateLimiter *middleware.RateLimiter,
	metricsManager *metrics.MetricsManager) ServerOperationServiceInterface {
	return &ServerOperationService{
		allowedOrigins: allowedOrigins,
		rateLimiter:    rateLimiter,
		metrics:        metricsManager,
		preflights:     make(map[*http.ServeMux]map[string]struct{}),
	}
}

// WrapHandleFunction registers the handler for the pattern after applying CORS, rate limiting
// and request duration metrics. When CORS is configured a preflight handler is registered for the path.
func (ops *ServerOperationService) WrapHandleFunction(mux *http.ServeMux, pattern string,
	options *RequestWrapOptions, handlerFunc http.HandlerFunc) {
	handler := handlerFunc
	if options != nil && options.RateLimited {
		handler = middleware.WithRateLimit(ops.rateLimiter, handler)
	}
	handler = ops.withMetrics(pattern, handler)

	if options != nil && options.Cors != nil {
		corsOpts := middleware.CORSOptions{
			AllowedOrigins:   ops.allowedOrigins,
			AllowedMethods:   options.Cors.AllowedMethods,
			AllowedHeaders:   options.Cors.AllowedHeaders,
			AllowCredentials: options.Cors.AllowCredentials,
		}
		_, handler = middleware.WithCORS(pattern, handler, corsOpts)

		if path, ok := preflightPattern(pattern); ok && ops.claimPreflight(mux, path) {
			mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
				middleware.ApplyCORSHeaders(w, r, corsOpts)
				w.WriteHeader(http.StatusNoContent)
			})
		}
	}

	log.GetLogger().Debug("Registering route", log.String("pattern", pattern))
	mux.HandleFunc(pattern, handler)
}

// claimPreflight reports whether the preflight pattern still needs registering on the mux.
func (ops *ServerOperationService) claimPreflight(mux *http.ServeMux, pattern string) bool {
	ops.mu.Lock()
	defer ops.mu.Unlock()

	patterns, ok := ops.preflights[mux]
	if !ok {
		patterns = make(map[string]struct{})
		ops.preflights[mux] = patterns
	}
	if _, exists := patterns[pattern]; exists {
		return false
	}
	patterns[pattern] = struct{}{}
	return true
}

func (ops *ServerOperationService) withMetrics(route string, next http.HandlerFunc) http.HandlerFunc {
	if ops.metrics == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		ops.metrics.ObserveHTTPRequest(route, time.Since(start))
	}
}

// preflightPattern derives the OPTIONS pattern for a method qualified pattern such as "POST /oauth2/token".
func preflightPattern(pattern string) (string, bool) {
	method, path, found := strings.Cut(pattern, " ")
	if !found || method == http.MethodOptions {
		return "", false
	}
	return http.MethodOptions + " " + strings.TrimSpace(path), true
}
