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

// Package model defines the data structures used by the authorization endpoint and the code store.
package model

import "time"

// AuthorizationRequest is a validated authorization request together with the subject that approved it.
type AuthorizationRequest struct {
	ClientID string
	// RedirectURI is the redirect_uri presented in the request. It is empty when the client omitted it
	// and the single registered URI was used.
	RedirectURI         string
	Scopes              []string
	CodeChallenge       string
	CodeChallengeMethod string
	Nonce               string
	Subject             string
	SubjectRoles        []string
	AuthTime            time.Time
	// State is echoed back on the redirect. It is not retained by persistent stores.
	State string
}

// AuthorizationCode is an issued authorization code and the request it is bound to.
type AuthorizationCode struct {
	CodeID      string
	Code        string
	Request     AuthorizationRequest
	TimeCreated time.Time
	ExpiryTime  time.Time
	State       string
}

// IsExpired reports whether the code is no longer redeemable at the given time.
func (c AuthorizationCode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiryTime)
}
