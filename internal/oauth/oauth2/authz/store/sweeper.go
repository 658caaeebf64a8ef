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

package store

import (
	"context"
	"time"

	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/metrics"
)

// Sweeper periodically evicts expired authorization codes. Consume checks expiry on its own, so a
// missed sweep only delays reclaiming storage.
type Sweeper struct {
	store    AuthorizationCodeStoreInterface
	interval time.Duration
	metrics  *metrics.MetricsManager
	logger   *log.Logger
}

// NewSweeper creates a sweeper for the store. A nil metrics manager disables sweep metrics.
func NewSweeper(store AuthorizationCodeStoreInterface, interval time.Duration,
	metricsManager *metrics.MetricsManager) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		metrics:  metricsManager,
		logger:   log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizationCodeSweeper")),
	}
}

// Run sweeps on every interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single eviction pass and returns the number of removed codes.
func (s *Sweeper) Sweep(ctx context.Context) int {
	removed, err := s.store.DeleteExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("Failed to delete expired authorization codes", log.Error(err))
		}
		return removed
	}

	s.metrics.RecordSweep(removed)
	if removed > 0 {
		s.logger.Debug("Deleted expired authorization codes", log.Int("count", removed))
	}
	return removed
}
