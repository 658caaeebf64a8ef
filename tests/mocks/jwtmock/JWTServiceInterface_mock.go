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

// Package jwtmock provides a testify mock of the JWT service.
package jwtmock

import (
	gojwt "github.com/golang-jwt/jwt/v5"
	mock "github.com/stretchr/testify/mock"

	"github.com/hansung/authserver/internal/oauth/jwt"
)

// JWTServiceInterfaceMock is a mock type for the JWTServiceInterface type.
type JWTServiceInterfaceMock struct {
	mock.Mock
}

// GenerateJWT provides a mock function with given fields: claims, tokenType
func (_m *JWTServiceInterfaceMock) GenerateJWT(claims gojwt.Claims, tokenType string) (string, error) {
	ret := _m.Called(claims, tokenType)

	if len(ret) == 0 {
		panic("no return value specified for GenerateJWT")
	}

	if rf, ok := ret.Get(0).(func(gojwt.Claims, string) (string, error)); ok {
		return rf(claims, tokenType)
	}
	return ret.String(0), ret.Error(1)
}

// VerifyJWT provides a mock function with given fields: token
func (_m *JWTServiceInterfaceMock) VerifyJWT(token string) (*gojwt.Token, gojwt.MapClaims, error) {
	ret := _m.Called(token)

	if len(ret) == 0 {
		panic("no return value specified for VerifyJWT")
	}

	var r0 *gojwt.Token
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*gojwt.Token)
	}
	var r1 gojwt.MapClaims
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(gojwt.MapClaims)
	}
	return r0, r1, ret.Error(2)
}

// GetPublicKeys provides a mock function with no fields
func (_m *JWTServiceInterfaceMock) GetPublicKeys() []jwt.PublicKey {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetPublicKeys")
	}

	var r0 []jwt.PublicKey
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]jwt.PublicKey)
	}
	return r0
}

// NewJWTServiceInterfaceMock creates a new instance of JWTServiceInterfaceMock. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewJWTServiceInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *JWTServiceInterfaceMock {
	m := &JWTServiceInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
