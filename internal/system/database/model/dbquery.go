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

package model

// Database types understood by DBQuery.
const (
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

// DBQuery represents a database query with an identifier and optional per-dialect variants.
type DBQuery struct {
	// ID is a unique identifier for the query, used in logs.
	ID string
	// Query is the default statement.
	Query string
	// PostgresQuery overrides Query for postgres when set.
	PostgresQuery string
	// SQLiteQuery overrides Query for sqlite when set.
	SQLiteQuery string
}

// GetID returns the unique identifier of the query.
func (d *DBQuery) GetID() string {
	return d.ID
}

// GetQuery returns the statement to execute against the given database type.
func (d *DBQuery) GetQuery(dbType string) string {
	switch dbType {
	case DBTypePostgres:
		if d.PostgresQuery != "" {
			return d.PostgresQuery
		}
	case DBTypeSQLite:
		if d.SQLiteQuery != "" {
			return d.SQLiteQuery
		}
	}
	return d.Query
}
