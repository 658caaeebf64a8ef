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

// Package introspect provides functionality for the OAuth2 token introspection endpoint.
package introspect

import (
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/hansung/authserver/internal/oauth/jwt"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/system/log"
)

// TokenIntrospectionServiceInterface defines the interface for OAuth 2.0 token introspection.
type TokenIntrospectionServiceInterface interface {
	IntrospectToken(token, tokenTypeHint string) *IntrospectResponse
}

// TokenIntrospectionService implements the TokenIntrospectionServiceInterface.
type TokenIntrospectionService struct {
	jwtService jwt.JWTServiceInterface
}

// NewTokenIntrospectionService creates a new TokenIntrospectionService instance.
func NewTokenIntrospectionService(jwtService jwt.JWTServiceInterface) TokenIntrospectionServiceInterface {
	return &TokenIntrospectionService{
		jwtService: jwtService,
	}
}

// IntrospectToken verifies the token and reports its claims. Every failure, including malformed input,
// yields an inactive response that discloses nothing else, as defined in RFC 7662.
func (s *TokenIntrospectionService) IntrospectToken(token, tokenTypeHint string) *IntrospectResponse {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIntrospectionService"))

	if token == "" {
		return inactiveResponse()
	}

	parsed, claims, err := s.jwtService.VerifyJWT(token)
	if err != nil {
		logger.Debug("Token verification failed", log.Error(err))
		return inactiveResponse()
	}

	// The typ header decides the token kind. token_type_hint is only advisory.
	typ, _ := parsed.Header[jwt.HeaderType].(string)
	if tokenTypeHint != "" && hintFor(typ) != tokenTypeHint {
		logger.Debug("Token type hint does not match the token", log.String("hint", tokenTypeHint))
	}

	switch typ {
	case constants.JWTTypeAccessToken:
		return accessTokenResponse(claims)
	case constants.JWTTypeIDToken:
		return idTokenResponse(claims)
	default:
		logger.Debug("Unrecognized token type", log.String("typ", typ))
		return inactiveResponse()
	}
}

func hintFor(typ string) string {
	if typ == constants.JWTTypeAccessToken {
		return constants.TokenTypeHintAccessToken
	}
	return constants.TokenTypeHintIDToken
}

func accessTokenResponse(claims gojwt.MapClaims) *IntrospectResponse {
	response := baseResponse(claims)
	response.ClientID = stringClaim(claims, constants.ClaimClientID)
	if response.Sub == "" || response.ClientID == "" {
		return inactiveResponse()
	}
	response.Scope = stringClaim(claims, constants.ClaimScope)
	response.TokenType = constants.TokenTypeBearer
	return response
}

func idTokenResponse(claims gojwt.MapClaims) *IntrospectResponse {
	response := baseResponse(claims)
	if response.Sub == "" {
		return inactiveResponse()
	}
	response.ClientID = stringClaim(claims, constants.ClaimAuthorizedParty)
	if response.ClientID == "" && len(response.Aud) > 0 {
		response.ClientID = response.Aud[0]
	}
	return response
}

func baseResponse(claims gojwt.MapClaims) *IntrospectResponse {
	response := &IntrospectResponse{
		Active: true,
		Sub:    stringClaim(claims, constants.ClaimSubject),
		Iss:    stringClaim(claims, constants.ClaimIssuer),
		Jti:    stringClaim(claims, constants.ClaimJWTID),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		response.Exp = exp.Unix()
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		response.Iat = iat.Unix()
	}
	if nbf, err := claims.GetNotBefore(); err == nil && nbf != nil {
		response.Nbf = nbf.Unix()
	}
	if aud, err := claims.GetAudience(); err == nil {
		response.Aud = aud
	}
	return response
}

func stringClaim(claims gojwt.MapClaims, name string) string {
	value, _ := claims[name].(string)
	return value
}
