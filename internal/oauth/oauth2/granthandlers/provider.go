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

package granthandlers

import (
	"errors"

	"github.com/hansung/authserver/internal/oauth/oauth2/authz/store"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/issuer"
	"github.com/hansung/authserver/internal/system/config"
)

// ErrUnsupportedGrantType is returned when no handler is registered for a grant type.
var ErrUnsupportedGrantType = errors.New("unsupported grant type")

// GrantHandlerProviderInterface defines the interface for resolving grant handlers.
type GrantHandlerProviderInterface interface {
	GetGrantHandler(grantType string) (GrantHandlerInterface, error)
}

// GrantHandlerProvider resolves the handler of each supported grant type.
type GrantHandlerProvider struct {
	handlers map[string]GrantHandlerInterface
}

// NewGrantHandlerProvider creates a provider with a handler for every supported grant type.
func NewGrantHandlerProvider(authzStore store.AuthorizationCodeStoreInterface,
	tokenIssuer issuer.TokenIssuerInterface, pkceConfig config.PKCEConfig) GrantHandlerProviderInterface {
	return &GrantHandlerProvider{
		handlers: map[string]GrantHandlerInterface{
			constants.GrantTypeAuthorizationCode: newAuthorizationCodeGrantHandler(authzStore, tokenIssuer,
				pkceConfig),
		},
	}
}

// GetGrantHandler returns the handler of the grant type.
func (p *GrantHandlerProvider) GetGrantHandler(grantType string) (GrantHandlerInterface, error) {
	handler, ok := p.handlers[grantType]
	if !ok {
		return nil, ErrUnsupportedGrantType
	}
	return handler, nil
}
