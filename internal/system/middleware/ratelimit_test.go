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
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RateLimiterTestSuite struct {
	suite.Suite
}

func TestRateLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterTestSuite))
}

func (suite *RateLimiterTestSuite) TestAllowWithinBurst() {
	rl := NewRateLimiter(0.001, 3)

	for i := 0; i < 3; i++ {
		assert.True(suite.T(), rl.Allow("10.0.0.1"), "request %d should be allowed", i)
	}
	assert.False(suite.T(), rl.Allow("10.0.0.1"))
	assert.True(suite.T(), rl.Allow("10.0.0.2"), "other identifiers keep their own bucket")
}

func (suite *RateLimiterTestSuite) TestEvictsLeastRecentlyUsed() {
	rl := NewRateLimiter(1, 1)
	rl.maxEntries = 2

	rl.Allow("a")
	rl.Allow("b")
	rl.Allow("a")
	rl.Allow("c")

	assert.Equal(suite.T(), 2, rl.Len())
	_, hasA := rl.limiters["a"]
	_, hasB := rl.limiters["b"]
	assert.True(suite.T(), hasA)
	assert.False(suite.T(), hasB)
}

func (suite *RateLimiterTestSuite) TestCleanup() {
	rl := NewRateLimiter(1, 1)
	for i := 0; i < 5; i++ {
		rl.Allow(fmt.Sprintf("client-%d", i))
	}

	assert.Equal(suite.T(), 0, rl.Cleanup(time.Hour))
	assert.Equal(suite.T(), 5, rl.Cleanup(-time.Second))
	assert.Equal(suite.T(), 0, rl.Len())
}

func (suite *RateLimiterTestSuite) TestRunStopsOnCancel() {
	rl := NewRateLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		rl.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		suite.T().Fatal("Run did not return after cancellation")
	}
}

func (suite *RateLimiterTestSuite) TestWithRateLimit() {
	rl := NewRateLimiter(0.001, 1)
	handler := WithRateLimit(rl, okHandler)

	req := httptest.NewRequest(http.MethodPost, "/oauth2/token", nil)
	req.RemoteAddr = "192.168.1.10:4000"

	first := httptest.NewRecorder()
	handler(first, req)
	assert.Equal(suite.T(), http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler(second, req)
	assert.Equal(suite.T(), http.StatusTooManyRequests, second.Code)
	assert.Equal(suite.T(), "1", second.Header().Get("Retry-After"))
}

func (suite *RateLimiterTestSuite) TestWithRateLimitDisabled() {
	handler := WithRateLimit(nil, okHandler)
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
	}
}
