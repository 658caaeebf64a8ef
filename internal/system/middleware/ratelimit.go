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

package middleware

import (
	"container/list"
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/utils"
)

const (
	defaultMaxLimiterEntries = 10000
	limiterIdleTimeout       = 30 * time.Minute
)

type rateLimiterEntry struct {
	identifier string
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter tracks a token bucket per client identifier and evicts the least recently used
// identifiers once maxEntries is reached.
type RateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*list.Element
	lruList    *list.List
	rate       rate.Limit
	burst      int
	maxEntries int
	logger     *log.Logger
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond with the given burst per identifier.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:   make(map[string]*list.Element),
		lruList:    list.New(),
		rate:       rate.Limit(requestsPerSecond),
		burst:      burst,
		maxEntries: defaultMaxLimiterEntries,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RateLimiter")),
	}
}

// Allow reports whether a request from the identifier may proceed now.
func (rl *RateLimiter) Allow(identifier string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if elem, ok := rl.limiters[identifier]; ok {
		rl.lruList.MoveToFront(elem)
		entry := elem.Value.(*rateLimiterEntry)
		entry.lastAccess = now
		return entry.limiter.AllowN(now, 1)
	}

	if rl.maxEntries > 0 && len(rl.limiters) >= rl.maxEntries {
		rl.evictLRU()
	}

	entry := &rateLimiterEntry{
		identifier: identifier,
		limiter:    rate.NewLimiter(rl.rate, rl.burst),
		lastAccess: now,
	}
	rl.limiters[identifier] = rl.lruList.PushFront(entry)

	return entry.limiter.AllowN(now, 1)
}

// evictLRU removes the least recently used entry. Must be called with the mutex held.
func (rl *RateLimiter) evictLRU() {
	elem := rl.lruList.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*rateLimiterEntry)
	delete(rl.limiters, entry.identifier)
	rl.lruList.Remove(elem)
	rl.logger.Debug("Evicted rate limiter entry", log.Int("entries", len(rl.limiters)))
}

// Cleanup removes limiters that have not been used within maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	removed := 0
	for elem := rl.lruList.Back(); elem != nil; {
		entry := elem.Value.(*rateLimiterEntry)
		if now.Sub(entry.lastAccess) <= maxIdle {
			// The list is ordered by access time, so the rest are newer.
			break
		}
		prev := elem.Prev()
		delete(rl.limiters, entry.identifier)
		rl.lruList.Remove(elem)
		removed++
		elem = prev
	}
	return removed
}

// Len returns the number of tracked identifiers.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// WithRateLimit wraps the handler so that clients exceeding the limit receive 429 responses.
// A nil limiter disables limiting.
func WithRateLimit(limiter *RateLimiter, handler http.HandlerFunc) http.HandlerFunc {
	if limiter == nil {
		return handler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(utils.GetClientIP(r)) {
			w.Header().Set("Retry-After", "1")
			utils.WriteJSONError(w, "slow_down", "Too many requests", http.StatusTooManyRequests, nil)
			return
		}
		handler(w, r)
	}
}

// Run periodically drops idle limiters until the context is cancelled.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := rl.Cleanup(limiterIdleTimeout); removed > 0 {
				rl.logger.Debug("Removed idle rate limiters", log.Int("removed", removed))
			}
		case <-ctx.Done():
			return
		}
	}
}
