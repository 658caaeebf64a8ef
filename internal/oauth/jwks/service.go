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

// Package jwks provides the implementation for retrieving JSON Web Key Sets (JWKS).
package jwks

import (
	"encoding/base64"
	"math/big"

	"github.com/hansung/authserver/internal/oauth/jwks/model"
	"github.com/hansung/authserver/internal/oauth/jwt"
)

// JWKSServiceInterface defines the interface for JWKS service.
type JWKSServiceInterface interface {
	GetJWKS() *model.JWKSResponse
}

// JWKSService implements the JWKSServiceInterface.
type JWKSService struct {
	jwtService jwt.JWTServiceInterface
}

// NewJWKSService creates a new instance of JWKSService.
func NewJWKSService(jwtService jwt.JWTServiceInterface) JWKSServiceInterface {
	return &JWKSService{
		jwtService: jwtService,
	}
}

// GetJWKS returns the public keys that currently verify tokens issued by the server.
func (s *JWKSService) GetJWKS() *model.JWKSResponse {
	publicKeys := s.jwtService.GetPublicKeys()

	keys := make([]model.JWKS, 0, len(publicKeys))
	for _, pk := range publicKeys {
		keys = append(keys, model.JWKS{
			Kid: pk.Kid,
			Kty: "RSA",
			Use: "sig",
			Alg: "RS256",
			N:   base64.RawURLEncoding.EncodeToString(pk.Key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pk.Key.E)).Bytes()),
		})
	}

	return &model.JWKSResponse{Keys: keys}
}
