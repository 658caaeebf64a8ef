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

// Package model defines the data structures of registered OAuth applications.
package model

import (
	"errors"
	"slices"

	"github.com/hansung/authserver/internal/system/utils"
)

// OAuthApplication represents a registered OAuth client.
type OAuthApplication struct {
	ClientID             string
	ClientSecretHash     string
	RedirectURIs         []string
	AllowedGrantTypes    []string
	AllowedResponseTypes []string
	AllowedScopes        []string
}

// IsAllowedGrantType checks if the provided grant type is allowed.
func (o *OAuthApplication) IsAllowedGrantType(grantType string) bool {
	return grantType != "" && slices.Contains(o.AllowedGrantTypes, grantType)
}

// IsAllowedResponseType checks if the provided response type is allowed.
func (o *OAuthApplication) IsAllowedResponseType(responseType string) bool {
	return responseType != "" && slices.Contains(o.AllowedResponseTypes, responseType)
}

// IsAllowedScope checks if the scope is registered for the application.
// An application without registered scopes may request any scope.
func (o *OAuthApplication) IsAllowedScope(scope string) bool {
	if len(o.AllowedScopes) == 0 {
		return true
	}
	return slices.Contains(o.AllowedScopes, scope)
}

// IsValidRedirectURI checks if the redirect URI exactly matches a registered one.
func (o *OAuthApplication) IsValidRedirectURI(redirectURI string) bool {
	return slices.Contains(o.RedirectURIs, redirectURI)
}

// ResolveRedirectURI returns the redirect URI to use for an authorization request.
// An omitted redirect URI resolves to the registered one when exactly one is registered.
func (o *OAuthApplication) ResolveRedirectURI(redirectURI string) (string, error) {
	if redirectURI == "" {
		if len(o.RedirectURIs) != 1 {
			return "", errors.New("redirect URI is required in the authorization request")
		}
		redirectURI = o.RedirectURIs[0]
	} else if !o.IsValidRedirectURI(redirectURI) {
		return "", errors.New("your application's redirect URL does not match with the registered redirect URLs")
	}

	parsed, err := utils.ParseURL(redirectURI)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("registered redirect URI is not fully qualified")
	}
	if parsed.Fragment != "" {
		return "", errors.New("redirect URI must not contain a fragment component")
	}

	return redirectURI, nil
}
