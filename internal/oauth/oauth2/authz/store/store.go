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

// Package store provides functionality for handling authorization code persistence and retrieval.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hansung/authserver/internal/oauth/oauth2/authz/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/authz/model"
	"github.com/hansung/authserver/internal/system/config"
	"github.com/hansung/authserver/internal/system/database/provider"
	"github.com/hansung/authserver/internal/system/utils"
)

const loggerComponentName = "AuthorizationCodeStore"

// AuthorizationCodeStoreInterface defines the interface for managing authorization codes.
type AuthorizationCodeStoreInterface interface {
	// Issue creates a new single use code bound to the request.
	Issue(ctx context.Context, request model.AuthorizationRequest) (model.AuthorizationCode, error)
	// Consume redeems the code. For a given code exactly one call succeeds; the rest fail with
	// ErrAuthorizationCodeConsumed, ErrAuthorizationCodeExpired or ErrAuthorizationCodeNotFound.
	Consume(ctx context.Context, code string) (*model.AuthorizationRequest, error)
	// DeleteExpired evicts expired codes and returns how many were removed.
	DeleteExpired(ctx context.Context) (int, error)
}

// NewAuthorizationCodeStore creates the store selected in the authorization code configuration.
func NewAuthorizationCodeStore(cfg config.AuthorizationCodeConfig,
	dbProvider provider.DBProviderInterface) (AuthorizationCodeStoreInterface, error) {
	validity := time.Duration(cfg.ValidityPeriod) * time.Second

	switch cfg.Store {
	case config.AuthorizationCodeStoreMemory, "":
		return NewInMemoryAuthorizationCodeStore(validity), nil
	case config.AuthorizationCodeStoreDatabase:
		if dbProvider == nil {
			return nil, fmt.Errorf("authorization code store %q requires a database provider", cfg.Store)
		}
		return NewDBAuthorizationCodeStore(dbProvider, validity), nil
	default:
		return nil, fmt.Errorf("unsupported authorization code store %q", cfg.Store)
	}
}

// newAuthorizationCode mints a code value and identifier for the request.
func newAuthorizationCode(request model.AuthorizationRequest, now time.Time,
	validity time.Duration) (model.AuthorizationCode, error) {
	code, err := utils.GenerateOpaqueValue(constants.AuthorizationCodeEntropy)
	if err != nil {
		return model.AuthorizationCode{}, fmt.Errorf("failed to generate authorization code: %w", err)
	}

	return model.AuthorizationCode{
		CodeID:      utils.GenerateUUID(),
		Code:        code,
		Request:     cloneRequest(request),
		TimeCreated: now,
		ExpiryTime:  now.Add(validity),
		State:       constants.AuthCodeStateActive,
	}, nil
}

func cloneRequest(request model.AuthorizationRequest) model.AuthorizationRequest {
	request.Scopes = append([]string(nil), request.Scopes...)
	request.SubjectRoles = append([]string(nil), request.SubjectRoles...)
	return request
}
