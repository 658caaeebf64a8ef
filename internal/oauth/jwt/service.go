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

package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// JWT header values.
const (
	HeaderKeyID = "kid"
	HeaderType  = "typ"
)

// ErrUnknownSigningKey is returned when a token names a key that cannot verify it.
var ErrUnknownSigningKey = errors.New("unknown signing key")

// JWTServiceInterface defines the operations for signing and verifying JWTs.
type JWTServiceInterface interface {
	GenerateJWT(claims gojwt.Claims, tokenType string) (string, error)
	VerifyJWT(token string) (*gojwt.Token, gojwt.MapClaims, error)
	GetPublicKeys() []PublicKey
}

// JWTService signs tokens with the active key of a key ring and verifies them against its keys.
type JWTService struct {
	keyRing *KeyRing
	issuer  string
	leeway  time.Duration
	now     func() time.Time
}

// NewJWTService creates a new instance of JWTService.
func NewJWTService(keyRing *KeyRing, issuer string) *JWTService {
	return &JWTService{
		keyRing: keyRing,
		issuer:  issuer,
		now:     time.Now,
	}
}

// GenerateJWT signs the claims with RS256 using the active key. The tokenType is set as the typ header.
func (js *JWTService) GenerateJWT(claims gojwt.Claims, tokenType string) (string, error) {
	kid, key := js.keyRing.ActiveKey()

	token := gojwt.NewWithClaims(gojwt.SigningMethodRS256, claims)
	token.Header[HeaderKeyID] = kid
	if tokenType != "" {
		token.Header[HeaderType] = tokenType
	}

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyJWT verifies the signature, issuer, expiry and not-before time of the token.
func (js *JWTService) VerifyJWT(tokenString string) (*gojwt.Token, gojwt.MapClaims, error) {
	claims := gojwt.MapClaims{}
	parser := gojwt.NewParser(
		gojwt.WithValidMethods([]string{gojwt.SigningMethodRS256.Alg()}),
		gojwt.WithIssuer(js.issuer),
		gojwt.WithExpirationRequired(),
		gojwt.WithLeeway(js.leeway),
		gojwt.WithTimeFunc(js.now),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, js.keyFunc)
	if err != nil {
		return nil, nil, err
	}
	if !token.Valid {
		return nil, nil, errors.New("token is not valid")
	}
	return token, claims, nil
}

// GetPublicKeys returns the keys that currently verify tokens.
func (js *JWTService) GetPublicKeys() []PublicKey {
	return js.keyRing.PublicKeys()
}

func (js *JWTService) keyFunc(token *gojwt.Token) (interface{}, error) {
	kid, ok := token.Header[HeaderKeyID].(string)
	if !ok || kid == "" {
		return nil, ErrUnknownSigningKey
	}
	key, ok := js.keyRing.VerificationKey(kid)
	if !ok {
		return nil, ErrUnknownSigningKey
	}
	return key, nil
}
