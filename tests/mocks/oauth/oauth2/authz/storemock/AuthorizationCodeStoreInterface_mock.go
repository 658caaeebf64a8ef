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

// Package storemock provides a testify mock of the authorization code store.
package storemock

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	"github.com/hansung/authserver/internal/oauth/oauth2/authz/model"
)

// AuthorizationCodeStoreInterfaceMock is a mock type for the AuthorizationCodeStoreInterface type.
type AuthorizationCodeStoreInterfaceMock struct {
	mock.Mock
}

// Issue provides a mock function with given fields: ctx, request
func (_m *AuthorizationCodeStoreInterfaceMock) Issue(ctx context.Context,
	request model.AuthorizationRequest) (model.AuthorizationCode, error) {
	ret := _m.Called(ctx, request)

	if len(ret) == 0 {
		panic("no return value specified for Issue")
	}

	if rf, ok := ret.Get(0).(func(context.Context, model.AuthorizationRequest) (model.AuthorizationCode,
		error)); ok {
		return rf(ctx, request)
	}
	return ret.Get(0).(model.AuthorizationCode), ret.Error(1)
}

// Consume provides a mock function with given fields: ctx, code
func (_m *AuthorizationCodeStoreInterfaceMock) Consume(ctx context.Context,
	code string) (*model.AuthorizationRequest, error) {
	ret := _m.Called(ctx, code)

	if len(ret) == 0 {
		panic("no return value specified for Consume")
	}

	var r0 *model.AuthorizationRequest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.AuthorizationRequest)
	}
	return r0, ret.Error(1)
}

// DeleteExpired provides a mock function with given fields: ctx
func (_m *AuthorizationCodeStoreInterfaceMock) DeleteExpired(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for DeleteExpired")
	}

	return ret.Int(0), ret.Error(1)
}

// NewAuthorizationCodeStoreInterfaceMock creates a new instance of AuthorizationCodeStoreInterfaceMock.
// It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthorizationCodeStoreInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthorizationCodeStoreInterfaceMock {
	m := &AuthorizationCodeStoreInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
