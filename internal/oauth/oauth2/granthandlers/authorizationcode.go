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
	"context"
	"errors"

	appmodel "github.com/hansung/authserver/internal/application/model"
	authzconstants "github.com/hansung/authserver/internal/oauth/oauth2/authz/constants"
	authzmodel "github.com/hansung/authserver/internal/oauth/oauth2/authz/model"
	"github.com/hansung/authserver/internal/oauth/oauth2/authz/store"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/issuer"
	"github.com/hansung/authserver/internal/oauth/oauth2/model"
	"github.com/hansung/authserver/internal/oauth/oauth2/pkce"
	"github.com/hansung/authserver/internal/system/config"
	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/utils"
)

// authorizationCodeGrantHandler handles the authorization code grant type.
type authorizationCodeGrantHandler struct {
	AuthZStore     store.AuthorizationCodeStoreInterface
	TokenIssuer    issuer.TokenIssuerInterface
	pkceRequired   bool
	allowPlainPKCE bool
}

// newAuthorizationCodeGrantHandler creates a new instance of authorizationCodeGrantHandler.
func newAuthorizationCodeGrantHandler(authzStore store.AuthorizationCodeStoreInterface,
	tokenIssuer issuer.TokenIssuerInterface, pkceConfig config.PKCEConfig) GrantHandlerInterface {
	return &authorizationCodeGrantHandler{
		AuthZStore:     authzStore,
		TokenIssuer:    tokenIssuer,
		pkceRequired:   pkceConfig.Required,
		allowPlainPKCE: pkceConfig.AllowPlain,
	}
}

// ValidateGrant validates the authorization code grant request.
func (h *authorizationCodeGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	if tokenRequest.GrantType == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Missing grant type",
		}
	}
	if tokenRequest.GrantType != constants.GrantTypeAuthorizationCode {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if tokenRequest.Code == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Authorization code is required",
		}
	}
	if oauthApp == nil || tokenRequest.ClientID != oauthApp.ClientID {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidClient,
			ErrorDescription: "Invalid client Id",
		}
	}

	return nil
}

// HandleGrant redeems the authorization code and mints the tokens bound to it. The code is consumed
// before any other check so a failed exchange still burns it.
func (h *authorizationCodeGrantHandler) HandleGrant(ctx context.Context, tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) (*model.TokenResponse, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizationCodeGrantHandler"),
		log.String(log.LoggerKeyClientID, oauthApp.ClientID))

	authRequest, err := h.AuthZStore.Consume(ctx, tokenRequest.Code)
	if err != nil {
		switch {
		case errors.Is(err, authzconstants.ErrAuthorizationCodeConsumed):
			logger.Warn("Authorization code replay detected")
		case errors.Is(err, authzconstants.ErrAuthorizationCodeExpired),
			errors.Is(err, authzconstants.ErrAuthorizationCodeNotFound):
			logger.Debug("Authorization code rejected", log.String("reason", err.Error()))
		default:
			logger.Error("Failed to consume authorization code", log.Error(err))
		}
		return nil, invalidAuthorizationCode()
	}

	if errResponse := h.validateAuthorizationRequest(tokenRequest, oauthApp, authRequest); errResponse != nil {
		logger.Debug("Authorization code exchange rejected",
			log.String("reason", errResponse.ErrorDescription))
		return nil, errResponse
	}

	tokens, err := h.TokenIssuer.Issue(&model.Grant{
		Subject:  authRequest.Subject,
		Roles:    authRequest.SubjectRoles,
		ClientID: authRequest.ClientID,
		Scopes:   authRequest.Scopes,
		AuthTime: authRequest.AuthTime,
		Nonce:    authRequest.Nonce,
	})
	if err != nil {
		logger.Error("Failed to issue tokens", log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to generate token",
		}
	}

	return &model.TokenResponse{
		AccessToken: tokens.AccessToken,
		TokenType:   constants.TokenTypeBearer,
		ExpiresIn:   tokens.ExpiresIn,
		Scope:       utils.JoinSpaceDelimited(tokens.Scopes),
		IDToken:     tokens.IDToken,
	}, nil
}

// validateAuthorizationRequest checks the token request against the request the code was bound to.
func (h *authorizationCodeGrantHandler) validateAuthorizationRequest(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication, authRequest *authzmodel.AuthorizationRequest) *model.ErrorResponse {
	if authRequest.ClientID != oauthApp.ClientID {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Authorization code was issued to another client",
		}
	}

	// redirect_uri is optional when it was omitted from the authorization request.
	if authRequest.RedirectURI != "" && tokenRequest.RedirectURI != authRequest.RedirectURI {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Invalid redirect URI",
		}
	}
	if authRequest.RedirectURI == "" && tokenRequest.RedirectURI != "" &&
		!oauthApp.IsValidRedirectURI(tokenRequest.RedirectURI) {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Invalid redirect URI",
		}
	}

	if authRequest.CodeChallenge == "" {
		if h.pkceRequired || tokenRequest.CodeVerifier != "" {
			return &model.ErrorResponse{
				Error:            constants.ErrorInvalidGrant,
				ErrorDescription: "Authorization code was not bound to a code challenge",
			}
		}
		return nil
	}

	if tokenRequest.CodeVerifier == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Code verifier is required",
		}
	}
	if !pkce.IsSupportedMethod(authRequest.CodeChallengeMethod, h.allowPlainPKCE) ||
		!pkce.Verify(tokenRequest.CodeVerifier, authRequest.CodeChallenge, authRequest.CodeChallengeMethod) {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidGrant,
			ErrorDescription: "Invalid code verifier",
		}
	}

	return nil
}

func invalidAuthorizationCode() *model.ErrorResponse {
	return &model.ErrorResponse{
		Error:            constants.ErrorInvalidGrant,
		ErrorDescription: "Invalid authorization code",
	}
}
