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

// Package token provides handler for managing OAuth 2.0 token requests.
package token

import (
	"net/http"

	appservice "github.com/hansung/authserver/internal/application/service"
	"github.com/hansung/authserver/internal/oauth/oauth2/clientauth"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/granthandlers"
	"github.com/hansung/authserver/internal/oauth/oauth2/model"
	serverconst "github.com/hansung/authserver/internal/system/constants"
	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/metrics"
	"github.com/hansung/authserver/internal/system/utils"
)

// TokenHandlerInterface defines the interface for handling OAuth 2.0 token requests.
type TokenHandlerInterface interface {
	HandleTokenRequest(w http.ResponseWriter, r *http.Request)
}

// TokenHandler handles OAuth 2.0 token requests.
type TokenHandler struct {
	appService           appservice.ApplicationServiceInterface
	grantHandlerProvider granthandlers.GrantHandlerProviderInterface
	metrics              *metrics.MetricsManager
}

// NewTokenHandler creates a new instance of TokenHandler.
func NewTokenHandler(appService appservice.ApplicationServiceInterface,
	grantHandlerProvider granthandlers.GrantHandlerProviderInterface,
	metricsManager *metrics.MetricsManager) TokenHandlerInterface {
	return &TokenHandler{
		appService:           appService,
		grantHandlerProvider: grantHandlerProvider,
		metrics:              metricsManager,
	}
}

// HandleTokenRequest handles the token request for OAuth 2.0.
// It validates the client credentials and delegates to the appropriate grant handler.
func (th *TokenHandler) HandleTokenRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenHandler"))

	if err := r.ParseForm(); err != nil {
		th.writeError(w, constants.ErrorInvalidRequest, "Failed to parse request body", http.StatusBadRequest)
		return
	}

	grantType := r.PostFormValue(constants.GrantType)
	if grantType == "" {
		th.writeError(w, constants.ErrorInvalidRequest, "Missing grant_type parameter", http.StatusBadRequest)
		return
	}
	grantHandler, err := th.grantHandlerProvider.GetGrantHandler(grantType)
	if err != nil {
		th.writeError(w, constants.ErrorUnsupportedGrantType, "Unsupported grant type", http.StatusBadRequest)
		return
	}

	oauthApp, authErr := clientauth.AuthenticateClient(r, th.appService)
	if authErr != nil {
		th.metrics.RecordTokenRequest(metrics.ResultFailure)
		authErr.Write(w)
		return
	}

	if !oauthApp.IsAllowedGrantType(grantType) {
		th.writeError(w, constants.ErrorUnauthorizedClient,
			"The authenticated client is not authorized to use this grant type", http.StatusBadRequest)
		return
	}

	tokenRequest := &model.TokenRequest{
		GrantType:    grantType,
		ClientID:     oauthApp.ClientID,
		Code:         r.PostFormValue(constants.Code),
		RedirectURI:  r.PostFormValue(constants.RedirectURI),
		CodeVerifier: r.PostFormValue(constants.CodeVerifier),
	}

	if errResp := grantHandler.ValidateGrant(tokenRequest, oauthApp); errResp != nil {
		th.writeError(w, errResp.Error, errResp.ErrorDescription, http.StatusBadRequest)
		return
	}

	tokenResponse, errResp := grantHandler.HandleGrant(r.Context(), tokenRequest, oauthApp)
	if errResp != nil {
		statusCode := http.StatusBadRequest
		if errResp.Error == constants.ErrorServerError {
			statusCode = http.StatusInternalServerError
		}
		th.writeError(w, errResp.Error, errResp.ErrorDescription, statusCode)
		return
	}

	th.metrics.RecordTokenRequest(metrics.ResultSuccess)
	logger.Debug("Token generated successfully", log.String(log.LoggerKeyClientID, oauthApp.ClientID))

	// Must include the following headers when sensitive data is returned.
	utils.WriteJSON(w, http.StatusOK, tokenResponse, []map[string]string{
		{serverconst.CacheControlHeaderName: "no-store"},
		{serverconst.PragmaHeaderName: "no-cache"},
	})
}

func (th *TokenHandler) writeError(w http.ResponseWriter, code, desc string, statusCode int) {
	th.metrics.RecordTokenRequest(metrics.ResultFailure)
	utils.WriteJSONError(w, code, desc, statusCode, []map[string]string{
		{serverconst.CacheControlHeaderName: "no-store"},
	})
}
