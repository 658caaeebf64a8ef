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
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hansung/authserver/internal/oauth/oauth2/authz/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/authz/model"
)

const maxIssueAttempts = 3

type codeEntry struct {
	code     model.AuthorizationCode
	consumed atomic.Bool
}

// InMemoryAuthorizationCodeStore keeps authorization codes in process memory. A consumed code stays
// in the map until it expires so that late redemption attempts observe ErrAuthorizationCodeConsumed.
type InMemoryAuthorizationCodeStore struct {
	codes    sync.Map
	validity time.Duration
	now      func() time.Time
}

// NewInMemoryAuthorizationCodeStore creates a new instance of InMemoryAuthorizationCodeStore.
func NewInMemoryAuthorizationCodeStore(validity time.Duration) AuthorizationCodeStoreInterface {
	return newInMemoryAuthorizationCodeStore(validity, time.Now)
}

func newInMemoryAuthorizationCodeStore(validity time.Duration,
	now func() time.Time) *InMemoryAuthorizationCodeStore {
	return &InMemoryAuthorizationCodeStore{
		validity: validity,
		now:      now,
	}
}

// Issue creates a new authorization code bound to the request.
func (s *InMemoryAuthorizationCodeStore) Issue(ctx context.Context,
	request model.AuthorizationRequest) (model.AuthorizationCode, error) {
	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return model.AuthorizationCode{}, err
		}

		authzCode, err := newAuthorizationCode(request, s.now(), s.validity)
		if err != nil {
			return model.AuthorizationCode{}, err
		}

		entry := &codeEntry{code: authzCode}
		if _, loaded := s.codes.LoadOrStore(authzCode.Code, entry); !loaded {
			return authzCode, nil
		}
	}
	return model.AuthorizationCode{}, errors.New("failed to allocate a unique authorization code")
}

// Consume atomically redeems the code.
func (s *InMemoryAuthorizationCodeStore) Consume(_ context.Context,
	code string) (*model.AuthorizationRequest, error) {
	value, ok := s.codes.Load(code)
	if !ok {
		return nil, constants.ErrAuthorizationCodeNotFound
	}
	entry := value.(*codeEntry)

	if entry.code.IsExpired(s.now()) {
		s.codes.CompareAndDelete(code, entry)
		return nil, constants.ErrAuthorizationCodeExpired
	}
	if !entry.consumed.CompareAndSwap(false, true) {
		return nil, constants.ErrAuthorizationCodeConsumed
	}

	request := cloneRequest(entry.code.Request)
	return &request, nil
}

// DeleteExpired removes expired codes, consumed or not.
func (s *InMemoryAuthorizationCodeStore) DeleteExpired(ctx context.Context) (int, error) {
	now := s.now()
	removed := 0
	s.codes.Range(func(key, value any) bool {
		if ctx.Err() != nil {
			return false
		}
		if value.(*codeEntry).code.IsExpired(now) && s.codes.CompareAndDelete(key, value) {
			removed++
		}
		return true
	})
	return removed, ctx.Err()
}
