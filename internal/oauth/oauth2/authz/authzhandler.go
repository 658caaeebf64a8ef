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

// Package authz implements the OAuth2 authorization endpoint.
package authz

import (
	"errors"
	"fmt"
	"net/http"

	appservice "github.com/hansung/authserver/internal/application/service"
	"github.com/hansung/authserver/internal/authn"
	authzmodel "github.com/hansung/authserver/internal/oauth/oauth2/authz/model"
	"github.com/hansung/authserver/internal/oauth/oauth2/authz/store"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	serverconst "github.com/hansung/authserver/internal/system/constants"
	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/metrics"
	"github.com/hansung/authserver/internal/system/utils"
)

// AuthorizeHandlerInterface defines the interface for handling OAuth2 authorization requests.
type AuthorizeHandlerInterface interface {
	HandleAuthorizeRequest(w http.ResponseWriter, r *http.Request)
}

// AuthorizeHandler drives an authorization request from the authenticated subject to the code redirect.
type AuthorizeHandler struct {
	appService      appservice.ApplicationServiceInterface
	subjectProvider authn.SubjectProviderInterface
	authZStore      store.AuthorizationCodeStoreInterface
	authValidator   AuthorizationValidatorInterface
	metrics         *metrics.MetricsManager
}

// NewAuthorizeHandler creates a new instance of AuthorizeHandler.
func NewAuthorizeHandler(appService appservice.ApplicationServiceInterface,
	subjectProvider authn.SubjectProviderInterface, authZStore store.AuthorizationCodeStoreInterface,
	authValidator AuthorizationValidatorInterface, metricsManager *metrics.MetricsManager) AuthorizeHandlerInterface {
	return &AuthorizeHandler{
		appService:      appService,
		subjectProvider: subjectProvider,
		authZStore:      authZStore,
		authValidator:   authValidator,
		metrics:         metricsManager,
	}
}

// HandleAuthorizeRequest handles the OAuth2 authorization request. Errors are sent back to the client's
// redirect URI only once that URI is known to be registered; until then they are written directly.
func (ah *AuthorizeHandler) HandleAuthorizeRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))
	params := r.URL.Query()

	subject, err := ah.subjectProvider.Authenticate(r)
	if err != nil {
		if !errors.Is(err, authn.ErrUnauthenticated) {
			logger.Error("Failed to authenticate the subject", log.Error(err))
		}
		utils.WriteJSONError(w, constants.ErrorAccessDenied, "Subject authentication is required",
			http.StatusUnauthorized, []map[string]string{
				{serverconst.WWWAuthenticateHeaderName: fmt.Sprintf("Basic realm=%q", serverconst.DefaultRealm)},
			})
		return
	}

	clientID := params.Get(constants.ClientID)
	if clientID == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Missing client_id parameter",
			http.StatusBadRequest, nil)
		return
	}

	oauthApp, svcErr := ah.appService.GetOAuthApplication(clientID)
	if svcErr != nil {
		if svcErr.IsClientError() {
			utils.WriteJSONError(w, constants.ErrorInvalidClient, "Invalid client_id",
				http.StatusBadRequest, nil)
			return
		}
		utils.WriteJSONError(w, constants.ErrorServerError, "Failed to retrieve the client",
			http.StatusInternalServerError, nil)
		return
	}

	presentedRedirectURI := params.Get(constants.RedirectURI)
	redirectURI, err := oauthApp.ResolveRedirectURI(presentedRedirectURI)
	if err != nil {
		logger.Debug("Validation failed for redirect URI", log.String(log.LoggerKeyClientID, clientID),
			log.Error(err))
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Invalid redirect URI", http.StatusBadRequest, nil)
		return
	}

	state := params.Get(constants.State)
	if errorCode, errorMessage := ah.authValidator.validateInitialAuthorizationRequest(params,
		oauthApp); errorCode != "" {
		ah.redirectWithError(w, r, redirectURI, errorCode, errorMessage, state)
		return
	}

	authRequest := authzmodel.AuthorizationRequest{
		ClientID:     clientID,
		RedirectURI:  presentedRedirectURI,
		Scopes:       utils.ParseSpaceDelimited(params.Get(constants.Scope)),
		Nonce:        params.Get(constants.Nonce),
		Subject:      subject.ID,
		SubjectRoles: subject.Roles,
		AuthTime:     subject.AuthTime,
		State:        state,
	}
	if codeChallenge := params.Get(constants.CodeChallenge); codeChallenge != "" {
		authRequest.CodeChallenge = codeChallenge
		authRequest.CodeChallengeMethod = resolveCodeChallengeMethod(params.Get(constants.CodeChallengeMethod))
	}

	authCode, err := ah.authZStore.Issue(r.Context(), authRequest)
	if err != nil {
		logger.Error("Failed to issue authorization code", log.String(log.LoggerKeyClientID, clientID),
			log.Error(err))
		ah.redirectWithError(w, r, redirectURI, constants.ErrorServerError,
			"Failed to issue the authorization code", state)
		return
	}
	ah.metrics.RecordAuthorizationCodeIssued()

	location, err := utils.GetURIWithQueryParams(redirectURI, map[string]string{
		constants.Code:  authCode.Code,
		constants.State: state,
	})
	if err != nil {
		logger.Error("Failed to construct the redirect URI", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError, "Failed to redirect to the client",
			http.StatusInternalServerError, nil)
		return
	}

	logger.Debug("Authorization code issued", log.String(log.LoggerKeyClientID, clientID),
		log.String(log.LoggerKeySubject, log.MaskString(subject.ID)))
	http.Redirect(w, r, location, http.StatusFound)
}

// redirectWithError sends the error back to the client's trusted redirect URI.
func (ah *AuthorizeHandler) redirectWithError(w http.ResponseWriter, r *http.Request, redirectURI, errorCode,
	errorMessage, state string) {
	location, err := utils.GetURIWithQueryParams(redirectURI, map[string]string{
		constants.Error:            errorCode,
		constants.ErrorDescription: errorMessage,
		constants.State:            state,
	})
	if err != nil {
		utils.WriteJSONError(w, errorCode, errorMessage, http.StatusBadRequest, nil)
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}
