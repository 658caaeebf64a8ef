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

package introspect

import (
	"net/http"

	appservice "github.com/hansung/authserver/internal/application/service"
	"github.com/hansung/authserver/internal/oauth/oauth2/clientauth"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	serverconst "github.com/hansung/authserver/internal/system/constants"
	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/metrics"
	"github.com/hansung/authserver/internal/system/utils"
)

// TokenIntrospectionHandler handles OAuth 2.0 token introspection requests.
type TokenIntrospectionHandler struct {
	service    TokenIntrospectionServiceInterface
	appService appservice.ApplicationServiceInterface
	metrics    *metrics.MetricsManager
}

// NewTokenIntrospectionHandler creates a new token introspection handler.
func NewTokenIntrospectionHandler(introspectionService TokenIntrospectionServiceInterface,
	appService appservice.ApplicationServiceInterface, metricsManager *metrics.MetricsManager) *TokenIntrospectionHandler {
	return &TokenIntrospectionHandler{
		service:    introspectionService,
		appService: appService,
		metrics:    metricsManager,
	}
}

// HandleIntrospect handles token introspection requests from authenticated clients.
func (h *TokenIntrospectionHandler) HandleIntrospect(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIntrospectionHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Failed to decode request body",
			http.StatusBadRequest, nil)
		return
	}

	app, authErr := clientauth.AuthenticateClient(r, h.appService)
	if authErr != nil {
		authErr.Write(w)
		return
	}

	token := r.PostFormValue(constants.Token)
	if token == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Token parameter is required",
			http.StatusBadRequest, nil)
		return
	}
	tokenTypeHint := r.PostFormValue(constants.TokenTypeHint)

	response := h.service.IntrospectToken(token, tokenTypeHint)
	h.metrics.RecordIntrospection(response.Active)
	logger.Debug("Token introspected", log.String(log.LoggerKeyClientID, app.ClientID),
		log.Bool("active", response.Active))

	utils.WriteJSON(w, http.StatusOK, response, []map[string]string{
		{serverconst.CacheControlHeaderName: "no-store"},
		{serverconst.PragmaHeaderName: "no-cache"},
	})
}
