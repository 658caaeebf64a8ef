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

// Package authnmock provides a testify mock of the subject provider.
package authnmock

import (
	"net/http"

	mock "github.com/stretchr/testify/mock"

	"github.com/hansung/authserver/internal/authn"
)

// SubjectProviderInterfaceMock is a mock type for the SubjectProviderInterface type.
type SubjectProviderInterfaceMock struct {
	mock.Mock
}

// Authenticate provides a mock function with given fields: r
func (_m *SubjectProviderInterfaceMock) Authenticate(r *http.Request) (*authn.AuthenticatedSubject, error) {
	ret := _m.Called(r)

	if len(ret) == 0 {
		panic("no return value specified for Authenticate")
	}

	var r0 *authn.AuthenticatedSubject
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*authn.AuthenticatedSubject)
	}
	return r0, ret.Error(1)
}

// NewSubjectProviderInterfaceMock creates a new instance of SubjectProviderInterfaceMock. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSubjectProviderInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *SubjectProviderInterfaceMock {
	m := &SubjectProviderInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
