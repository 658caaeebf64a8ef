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

// Package introspectmock provides a testify mock of the token introspection service.
package introspectmock

import (
	mock "github.com/stretchr/testify/mock"

	"github.com/hansung/authserver/internal/oauth/oauth2/introspect"
)

// TokenIntrospectionServiceInterfaceMock is a mock type for the TokenIntrospectionServiceInterface type.
type TokenIntrospectionServiceInterfaceMock struct {
	mock.Mock
}

// IntrospectToken provides a mock function with given fields: token, tokenTypeHint
func (_m *TokenIntrospectionServiceInterfaceMock) IntrospectToken(token string,
	tokenTypeHint string) *introspect.IntrospectResponse {
	ret := _m.Called(token, tokenTypeHint)

	if len(ret) == 0 {
		panic("no return value specified for IntrospectToken")
	}

	var r0 *introspect.IntrospectResponse
	if rf, ok := ret.Get(0).(func(string, string) *introspect.IntrospectResponse); ok {
		r0 = rf(token, tokenTypeHint)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*introspect.IntrospectResponse)
	}
	return r0
}

// NewTokenIntrospectionServiceInterfaceMock creates a new instance of TokenIntrospectionServiceInterfaceMock.
// It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenIntrospectionServiceInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenIntrospectionServiceInterfaceMock {
	m := &TokenIntrospectionServiceInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
