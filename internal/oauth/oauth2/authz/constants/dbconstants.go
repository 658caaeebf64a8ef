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

package constants

import dbmodel "github.com/hansung/authserver/internal/system/database/model"

// QueryInsertAuthorizationCode is the query to insert a new authorization code into the database.
var QueryInsertAuthorizationCode = dbmodel.DBQuery{
	ID: "AZQ-00001",
	Query: "INSERT INTO IDN_OAUTH2_AUTHZ_CODE (CODE_ID, AUTHORIZATION_CODE, CONSUMER_KEY, " +
		"CALLBACK_URL, AUTHZ_USER, USER_ROLES, CODE_CHALLENGE, CODE_CHALLENGE_METHOD, NONCE, AUTH_TIME, " +
		"TIME_CREATED, EXPIRY_TIME, STATE) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)",
	SQLiteQuery: "INSERT INTO IDN_OAUTH2_AUTHZ_CODE (CODE_ID, AUTHORIZATION_CODE, CONSUMER_KEY, " +
		"CALLBACK_URL, AUTHZ_USER, USER_ROLES, CODE_CHALLENGE, CODE_CHALLENGE_METHOD, NONCE, AUTH_TIME, " +
		"TIME_CREATED, EXPIRY_TIME, STATE) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
}

// QueryInsertAuthorizationCodeScopes is the query to insert scopes for an authorization code.
var QueryInsertAuthorizationCodeScopes = dbmodel.DBQuery{
	ID:          "AZQ-00002",
	Query:       "INSERT INTO IDN_OAUTH2_AUTHZ_CODE_SCOPE (CODE_ID, SCOPE) VALUES ($1, $2)",
	SQLiteQuery: "INSERT INTO IDN_OAUTH2_AUTHZ_CODE_SCOPE (CODE_ID, SCOPE) VALUES (?, ?)",
}

// QueryConsumeAuthorizationCode deactivates an active, unexpired code. Exactly one caller observes
// one affected row for a given code.
var QueryConsumeAuthorizationCode = dbmodel.DBQuery{
	ID: "AZQ-00003",
	Query: "UPDATE IDN_OAUTH2_AUTHZ_CODE SET STATE = $1 WHERE AUTHORIZATION_CODE = $2 " +
		"AND STATE = $3 AND EXPIRY_TIME > $4",
	SQLiteQuery: "UPDATE IDN_OAUTH2_AUTHZ_CODE SET STATE = ? WHERE AUTHORIZATION_CODE = ? " +
		"AND STATE = ? AND EXPIRY_TIME > ?",
}

// QueryGetAuthorizationCode is the query to retrieve an authorization code by its hashed value.
var QueryGetAuthorizationCode = dbmodel.DBQuery{
	ID: "AZQ-00004",
	Query: "SELECT CODE_ID, CONSUMER_KEY, CALLBACK_URL, AUTHZ_USER, USER_ROLES, CODE_CHALLENGE, " +
		"CODE_CHALLENGE_METHOD, NONCE, AUTH_TIME, TIME_CREATED, EXPIRY_TIME, STATE " +
		"FROM IDN_OAUTH2_AUTHZ_CODE WHERE AUTHORIZATION_CODE = $1",
	SQLiteQuery: "SELECT CODE_ID, CONSUMER_KEY, CALLBACK_URL, AUTHZ_USER, USER_ROLES, CODE_CHALLENGE, " +
		"CODE_CHALLENGE_METHOD, NONCE, AUTH_TIME, TIME_CREATED, EXPIRY_TIME, STATE " +
		"FROM IDN_OAUTH2_AUTHZ_CODE WHERE AUTHORIZATION_CODE = ?",
}

// QueryGetAuthorizationCodeScopes is the query to retrieve scopes for an authorization code.
var QueryGetAuthorizationCodeScopes = dbmodel.DBQuery{
	ID:          "AZQ-00005",
	Query:       "SELECT SCOPE FROM IDN_OAUTH2_AUTHZ_CODE_SCOPE WHERE CODE_ID = $1",
	SQLiteQuery: "SELECT SCOPE FROM IDN_OAUTH2_AUTHZ_CODE_SCOPE WHERE CODE_ID = ?",
}

// QueryDeleteExpiredAuthorizationCodeScopes removes the scopes of expired authorization codes.
var QueryDeleteExpiredAuthorizationCodeScopes = dbmodel.DBQuery{
	ID: "AZQ-00006",
	Query: "DELETE FROM IDN_OAUTH2_AUTHZ_CODE_SCOPE WHERE CODE_ID IN " +
		"(SELECT CODE_ID FROM IDN_OAUTH2_AUTHZ_CODE WHERE EXPIRY_TIME <= $1)",
	SQLiteQuery: "DELETE FROM IDN_OAUTH2_AUTHZ_CODE_SCOPE WHERE CODE_ID IN " +
		"(SELECT CODE_ID FROM IDN_OAUTH2_AUTHZ_CODE WHERE EXPIRY_TIME <= ?)",
}

// QueryDeleteExpiredAuthorizationCodes removes expired authorization codes.
var QueryDeleteExpiredAuthorizationCodes = dbmodel.DBQuery{
	ID:          "AZQ-00007",
	Query:       "DELETE FROM IDN_OAUTH2_AUTHZ_CODE WHERE EXPIRY_TIME <= $1",
	SQLiteQuery: "DELETE FROM IDN_OAUTH2_AUTHZ_CODE WHERE EXPIRY_TIME <= ?",
}
