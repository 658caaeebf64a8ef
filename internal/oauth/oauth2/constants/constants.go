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

// Package constants defines constants used across the OAuth2 module.
package constants

// OAuth2 request parameters.
const (
	GrantType           = "grant_type"
	ClientID            = "client_id"
	ClientSecret        = "client_secret"
	RedirectURI         = "redirect_uri"
	Scope               = "scope"
	Code                = "code"
	CodeVerifier        = "code_verifier"
	CodeChallenge       = "code_challenge"
	CodeChallengeMethod = "code_challenge_method"
	ResponseType        = "response_type"
	State               = "state"
	Nonce               = "nonce"
	Token               = "token"
	TokenTypeHint       = "token_type_hint"
	Error               = "error"
	ErrorDescription    = "error_description"
)

// OAuth2 endpoints.
const (
	OAuth2TokenEndpoint         = "/oauth2/token" // #nosec G101
	OAuth2AuthorizationEndpoint = "/oauth2/authorize"
	OAuth2IntrospectionEndpoint = "/oauth2/introspect"
	OAuth2JWKSEndpoint          = "/oauth2/jwks"
)

// OAuth2 grant types.
const (
	GrantTypeAuthorizationCode = "authorization_code"
)

// OAuth2 response types.
const (
	ResponseTypeCode = "code"
)

// OAuth2 token types.
const (
	TokenTypeBearer = "Bearer"
)

// Token type hints accepted by the introspection endpoint.
const (
	TokenTypeHintAccessToken = "access_token"
	TokenTypeHintIDToken     = "id_token"
)

// JWT typ header values distinguishing the issued token kinds.
const (
	JWTTypeAccessToken = "at+jwt"
	JWTTypeIDToken     = "JWT"
)

// Scopes with protocol meaning.
const (
	ScopeOpenID = "openid"
)

// PKCE code challenge methods.
const (
	CodeChallengeMethodS256  = "S256"
	CodeChallengeMethodPlain = "plain"
)

// OAuth2 error codes.
const (
	ErrorInvalidRequest          = "invalid_request"
	ErrorInvalidClient           = "invalid_client"
	ErrorInvalidGrant            = "invalid_grant"
	ErrorUnauthorizedClient      = "unauthorized_client"
	ErrorUnsupportedGrantType    = "unsupported_grant_type"
	ErrorInvalidScope            = "invalid_scope"
	ErrorServerError             = "server_error"
	ErrorUnsupportedResponseType = "unsupported_response_type"
	ErrorAccessDenied            = "access_denied"
)

// JWT claim names used in issued tokens.
const (
	ClaimSubject         = "sub"
	ClaimAudience        = "aud"
	ClaimClientID        = "client_id"
	ClaimScope           = "scope"
	ClaimRoles           = "roles"
	ClaimAuthorizedParty = "azp"
	ClaimExpiry          = "exp"
	ClaimIssuedAt        = "iat"
	ClaimNotBefore       = "nbf"
	ClaimIssuer          = "iss"
	ClaimJWTID           = "jti"
)
