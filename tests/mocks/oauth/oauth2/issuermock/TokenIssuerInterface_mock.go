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

// Package issuermock provides a testify mock of the token issuer.
package issuermock

import (
	mock "github.com/stretchr/testify/mock"

	"github.com/hansung/authserver/internal/oauth/oauth2/issuer"
	"github.com/hansung/authserver/internal/oauth/oauth2/model"
)

// TokenIssuerInterfaceMock is a mock type for the TokenIssuerInterface type.
type TokenIssuerInterfaceMock struct {
	mock.Mock
}

// Issue provides a mock function with given fields: grant
func (_m *TokenIssuerInterfaceMock) Issue(grant *model.Grant) (*issuer.IssuedTokens, error) {
	ret := _m.Called(grant)

	if len(ret) == 0 {
		panic("no return value specified for Issue")
	}

	var r0 *issuer.IssuedTokens
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*issuer.IssuedTokens)
	}
	return r0, ret.Error(1)
}

// NewTokenIssuerInterfaceMock creates a new instance of TokenIssuerInterfaceMock. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenIssuerInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenIssuerInterfaceMock {
	m := &TokenIssuerInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
