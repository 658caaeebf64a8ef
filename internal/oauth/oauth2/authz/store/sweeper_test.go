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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hansung/authserver/internal/system/metrics"
)

func TestSweeperSweep(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := newInMemoryAuthorizationCodeStore(time.Minute, func() time.Time { return now })

	for i := 0; i < 3; i++ {
		_, err := store.Issue(context.Background(), testAuthorizationRequest())
		require.NoError(t, err)
	}

	sweeper := NewSweeper(store, time.Minute, metrics.NewMetricsManager())
	assert.Equal(t, 0, sweeper.Sweep(context.Background()))

	now = now.Add(time.Minute)
	assert.Equal(t, 3, sweeper.Sweep(context.Background()))
	assert.Equal(t, 0, sweeper.Sweep(context.Background()))
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	store := NewInMemoryAuthorizationCodeStore(time.Minute)
	sweeper := NewSweeper(store, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
