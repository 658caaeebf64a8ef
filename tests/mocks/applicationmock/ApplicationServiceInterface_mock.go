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

// Package applicationmock provides a testify mock of the application service.
package applicationmock

import (
	mock "github.com/stretchr/testify/mock"

	"github.com/hansung/authserver/internal/application/model"
	"github.com/hansung/authserver/internal/system/error/serviceerror"
)

// ApplicationServiceInterfaceMock is a mock type for the ApplicationServiceInterface type.
type ApplicationServiceInterfaceMock struct {
	mock.Mock
}

// AuthenticateClient provides a mock function with given fields: clientID, clientSecret
func (_m *ApplicationServiceInterfaceMock) AuthenticateClient(clientID string,
	clientSecret string) (*model.OAuthApplication, *serviceerror.ServiceError) {
	ret := _m.Called(clientID, clientSecret)

	if len(ret) == 0 {
		panic("no return value specified for AuthenticateClient")
	}

	return unpack(ret)
}

// GetOAuthApplication provides a mock function with given fields: clientID
func (_m *ApplicationServiceInterfaceMock) GetOAuthApplication(
	clientID string) (*model.OAuthApplication, *serviceerror.ServiceError) {
	ret := _m.Called(clientID)

	if len(ret) == 0 {
		panic("no return value specified for GetOAuthApplication")
	}

	return unpack(ret)
}

func unpack(ret mock.Arguments) (*model.OAuthApplication, *serviceerror.ServiceError) {
	var r0 *model.OAuthApplication
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.OAuthApplication)
	}
	var r1 *serviceerror.ServiceError
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*serviceerror.ServiceError)
	}
	return r0, r1
}

// NewApplicationServiceInterfaceMock creates a new instance of ApplicationServiceInterfaceMock. It also
// registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewApplicationServiceInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *ApplicationServiceInterfaceMock {
	m := &ApplicationServiceInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
