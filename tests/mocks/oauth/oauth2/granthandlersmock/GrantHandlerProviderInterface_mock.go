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

package granthandlersmock

import (
	mock "github.com/stretchr/testify/mock"

	"github.com/hansung/authserver/internal/oauth/oauth2/granthandlers"
)

// GrantHandlerProviderInterfaceMock is a mock type for the GrantHandlerProviderInterface type.
type GrantHandlerProviderInterfaceMock struct {
	mock.Mock
}

// GetGrantHandler provides a mock function with given fields: grantType
func (_m *GrantHandlerProviderInterfaceMock) GetGrantHandler(
	grantType string) (granthandlers.GrantHandlerInterface, error) {
	ret := _m.Called(grantType)

	if len(ret) == 0 {
		panic("no return value specified for GetGrantHandler")
	}

	var r0 granthandlers.GrantHandlerInterface
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(granthandlers.GrantHandlerInterface)
	}
	return r0, ret.Error(1)
}

// NewGrantHandlerProviderInterfaceMock creates a new instance of GrantHandlerProviderInterfaceMock. It also
// registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewGrantHandlerProviderInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *GrantHandlerProviderInterfaceMock {
	m := &GrantHandlerProviderInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
