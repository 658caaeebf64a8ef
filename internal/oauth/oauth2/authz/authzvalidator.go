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

package authz

import (
	"net/url"

	appmodel "github.com/hansung/authserver/internal/application/model"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/pkce"
	"github.com/hansung/authserver/internal/system/config"
	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/utils"
)

// AuthorizationValidatorInterface defines the interface for validating OAuth2 authorization requests.
type AuthorizationValidatorInterface interface {
	validateInitialAuthorizationRequest(params url.Values, oauthApp *appmodel.OAuthApplication) (string, string)
}

// AuthorizationValidator validates authorization requests of clients whose redirect URI is already trusted.
type AuthorizationValidator struct {
	pkceRequired   bool
	allowPlainPKCE bool
}

// NewAuthorizationValidator creates a new instance of AuthorizationValidator.
func NewAuthorizationValidator(pkceConfig config.PKCEConfig) AuthorizationValidatorInterface {
	return &AuthorizationValidator{
		pkceRequired:   pkceConfig.Required,
		allowPlainPKCE: pkceConfig.AllowPlain,
	}
}

// validateInitialAuthorizationRequest returns the error code and description to redirect back to the
// client with, or empty strings when the request is valid.
func (av *AuthorizationValidator) validateInitialAuthorizationRequest(params url.Values,
	oauthApp *appmodel.OAuthApplication) (string, string) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizationValidator"))

	responseType := params.Get(constants.ResponseType)
	if responseType == "" {
		return constants.ErrorInvalidRequest, "Missing response_type parameter"
	}
	if responseType != constants.ResponseTypeCode || !oauthApp.IsAllowedResponseType(responseType) {
		return constants.ErrorUnsupportedResponseType, "Unsupported response type"
	}

	if !oauthApp.IsAllowedGrantType(constants.GrantTypeAuthorizationCode) {
		return constants.ErrorUnauthorizedClient, "Authorization code grant type is not allowed for the client"
	}

	for _, scope := range utils.ParseSpaceDelimited(params.Get(constants.Scope)) {
		if !oauthApp.IsAllowedScope(scope) {
			logger.Debug("Requested scope is not registered", log.String(log.LoggerKeyClientID, oauthApp.ClientID),
				log.String("scope", scope))
			return constants.ErrorInvalidScope, "The requested scope is invalid"
		}
	}

	codeChallenge := params.Get(constants.CodeChallenge)
	codeChallengeMethod := params.Get(constants.CodeChallengeMethod)
	if codeChallenge == "" {
		if codeChallengeMethod != "" {
			return constants.ErrorInvalidRequest, "code_challenge is required with code_challenge_method"
		}
		if av.pkceRequired {
			return constants.ErrorInvalidRequest, "code_challenge is required"
		}
		return "", ""
	}

	method := resolveCodeChallengeMethod(codeChallengeMethod)
	if !pkce.IsSupportedMethod(method, av.allowPlainPKCE) {
		return constants.ErrorInvalidRequest, "Unsupported code_challenge_method"
	}
	if err := pkce.ValidateCodeChallenge(codeChallenge, method); err != nil {
		return constants.ErrorInvalidRequest, "Invalid code_challenge"
	}

	return "", ""
}

// resolveCodeChallengeMethod applies the plain default for an omitted code_challenge_method.
func resolveCodeChallengeMethod(method string) string {
	if method == "" {
		return constants.CodeChallengeMethodPlain
	}
	return method
}
