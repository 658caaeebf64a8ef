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

// Package granthandlersmock provides testify mocks of the grant handlers and their provider.
package granthandlersmock

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	appmodel "github.com/hansung/authserver/internal/application/model"
	"github.com/hansung/authserver/internal/oauth/oauth2/model"
)

// GrantHandlerInterfaceMock is a mock type for the GrantHandlerInterface type.
type GrantHandlerInterfaceMock struct {
	mock.Mock
}

// ValidateGrant provides a mock function with given fields: tokenRequest, oauthApp
func (_m *GrantHandlerInterfaceMock) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	ret := _m.Called(tokenRequest, oauthApp)

	if len(ret) == 0 {
		panic("no return value specified for ValidateGrant")
	}

	var r0 *model.ErrorResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.ErrorResponse)
	}
	return r0
}

// HandleGrant provides a mock function with given fields: ctx, tokenRequest, oauthApp
func (_m *GrantHandlerInterfaceMock) HandleGrant(ctx context.Context, tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) (*model.TokenResponse, *model.ErrorResponse) {
	ret := _m.Called(ctx, tokenRequest, oauthApp)

	if len(ret) == 0 {
		panic("no return value specified for HandleGrant")
	}

	var r0 *model.TokenResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.TokenResponse)
	}
	var r1 *model.ErrorResponse
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*model.ErrorResponse)
	}
	return r0, r1
}

// NewGrantHandlerInterfaceMock creates a new instance of GrantHandlerInterfaceMock. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewGrantHandlerInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *GrantHandlerInterfaceMock {
	m := &GrantHandlerInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
