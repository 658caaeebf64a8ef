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

// Package issuer mints the signed access tokens and ID tokens returned by the token endpoint.
package issuer

import (
	"errors"
	"fmt"
	"slices"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/hansung/authserver/internal/oauth/jwt"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/model"
	"github.com/hansung/authserver/internal/system/utils"
)

// IssuedTokens holds the tokens minted for a grant.
type IssuedTokens struct {
	AccessToken string
	// IDToken is empty when openid was not granted.
	IDToken   string
	ExpiresIn int64
	Scopes    []string
}

// TokenIssuerInterface defines the interface for minting tokens for a validated grant.
type TokenIssuerInterface interface {
	Issue(grant *model.Grant) (*IssuedTokens, error)
}

// TokenIssuer signs RS256 access tokens and ID tokens through the JWT service.
type TokenIssuer struct {
	jwtService          jwt.JWTServiceInterface
	issuer              string
	accessTokenValidity time.Duration
	idTokenValidity     time.Duration
	now                 func() time.Time
}

// NewTokenIssuer creates a new instance of TokenIssuer.
func NewTokenIssuer(jwtService jwt.JWTServiceInterface, issuer string, accessTokenValidity,
	idTokenValidity time.Duration) TokenIssuerInterface {
	return &TokenIssuer{
		jwtService:          jwtService,
		issuer:              issuer,
		accessTokenValidity: accessTokenValidity,
		idTokenValidity:     idTokenValidity,
		now:                 time.Now,
	}
}

// Issue mints an access token for the grant, and an ID token when the openid scope was granted.
func (ti *TokenIssuer) Issue(grant *model.Grant) (*IssuedTokens, error) {
	if grant == nil || grant.Subject == "" || grant.ClientID == "" {
		return nil, errors.New("grant must carry a subject and a client id")
	}

	issuedAt := ti.now()
	accessToken, err := ti.jwtService.GenerateJWT(ti.accessTokenClaims(grant, issuedAt), constants.JWTTypeAccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	tokens := &IssuedTokens{
		AccessToken: accessToken,
		ExpiresIn:   int64(ti.accessTokenValidity / time.Second),
		Scopes:      append([]string(nil), grant.Scopes...),
	}

	if slices.Contains(grant.Scopes, constants.ScopeOpenID) {
		idToken, err := ti.jwtService.GenerateJWT(ti.idTokenClaims(grant, issuedAt), constants.JWTTypeIDToken)
		if err != nil {
			return nil, fmt.Errorf("failed to sign id token: %w", err)
		}
		tokens.IDToken = idToken
	}

	return tokens, nil
}

func (ti *TokenIssuer) accessTokenClaims(grant *model.Grant, issuedAt time.Time) *AccessTokenClaims {
	return &AccessTokenClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Subject:   grant.Subject,
			Audience:  gojwt.ClaimStrings{grant.ClientID},
			IssuedAt:  gojwt.NewNumericDate(issuedAt),
			NotBefore: gojwt.NewNumericDate(issuedAt),
			ExpiresAt: gojwt.NewNumericDate(issuedAt.Add(ti.accessTokenValidity)),
			ID:        utils.GenerateUUID(),
		},
		ClientID: grant.ClientID,
		Scope:    utils.JoinSpaceDelimited(grant.Scopes),
		Roles:    grant.Roles,
	}
}

func (ti *TokenIssuer) idTokenClaims(grant *model.Grant, issuedAt time.Time) *IDTokenClaims {
	claims := &IDTokenClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Subject:   grant.Subject,
			Audience:  gojwt.ClaimStrings{grant.ClientID},
			IssuedAt:  gojwt.NewNumericDate(issuedAt),
			ExpiresAt: gojwt.NewNumericDate(issuedAt.Add(ti.idTokenValidity)),
			ID:        utils.GenerateUUID(),
		},
		AuthorizedParty: grant.ClientID,
		Nonce:           grant.Nonce,
	}
	if !grant.AuthTime.IsZero() {
		claims.AuthTime = grant.AuthTime.Unix()
	}
	return claims
}
