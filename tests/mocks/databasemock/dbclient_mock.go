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

package databasemock

import (
	"context"

	"github.com/hansung/authserver/internal/system/database/model"
)

// MockDBClient is a mock implementation of the DBClientInterface.
type MockDBClient struct {
	// MockQuery defines the behavior for the Query method.
	MockQuery func(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)

	// MockExecute defines the behavior for the Execute method.
	MockExecute func(query model.DBQuery, args ...interface{}) (int64, error)

	// MockBeginTx defines the behavior for the BeginTx method.
	MockBeginTx func() (model.TxInterface, error)

	// MockPing defines the behavior for the Ping method.
	MockPing func() error

	// QueryCalls tracks the arguments passed to Query.
	QueryCalls []model.DBQuery

	// ExecuteCalls tracks the arguments passed to Execute.
	ExecuteCalls []model.DBQuery

	// PingCalls tracks the calls to Ping.
	PingCalls int

	// CloseCalls tracks the calls to Close.
	CloseCalls int
}

// Query mocks the Query method of the DBClientInterface.
func (m *MockDBClient) Query(_ context.Context, query model.DBQuery,
	args ...interface{}) ([]map[string]interface{}, error) {
	m.QueryCalls = append(m.QueryCalls, query)

	if m.MockQuery != nil {
		return m.MockQuery(query, args...)
	}
	return []map[string]interface{}{}, nil
}

// Execute mocks the Execute method of the DBClientInterface.
func (m *MockDBClient) Execute(_ context.Context, query model.DBQuery, args ...interface{}) (int64, error) {
	m.ExecuteCalls = append(m.ExecuteCalls, query)

	if m.MockExecute != nil {
		return m.MockExecute(query, args...)
	}
	return 0, nil
}

// BeginTx mocks the BeginTx method of the DBClientInterface.
func (m *MockDBClient) BeginTx(_ context.Context) (model.TxInterface, error) {
	if m.MockBeginTx != nil {
		return m.MockBeginTx()
	}
	return nil, nil
}

// Ping mocks the Ping method of the DBClientInterface.
func (m *MockDBClient) Ping(_ context.Context) error {
	m.PingCalls++

	if m.MockPing != nil {
		return m.MockPing()
	}
	return nil
}

// Close mocks the Close method of the DBClientInterface.
func (m *MockDBClient) Close() error {
	m.CloseCalls++
	return nil
}
