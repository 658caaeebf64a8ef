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

// Package clientauth authenticates OAuth clients calling the token and introspection endpoints.
package clientauth

import (
	"fmt"
	"net/http"

	appmodel "github.com/hansung/authserver/internal/application/model"
	appservice "github.com/hansung/authserver/internal/application/service"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/model"
	serverconst "github.com/hansung/authserver/internal/system/constants"
	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/utils"
)

// AuthError is a client authentication failure ready to be written to the response.
type AuthError struct {
	StatusCode int
	Response   model.ErrorResponse
}

// Write writes the error response. 401 responses carry a Basic challenge.
func (e *AuthError) Write(w http.ResponseWriter) {
	var headers []map[string]string
	if e.StatusCode == http.StatusUnauthorized {
		headers = []map[string]string{
			{serverconst.WWWAuthenticateHeaderName: fmt.Sprintf("Basic realm=%q", serverconst.DefaultRealm)},
		}
	}
	utils.WriteJSONError(w, e.Response.Error, e.Response.ErrorDescription, e.StatusCode, headers)
}

func invalidClient() *AuthError {
	return &AuthError{
		StatusCode: http.StatusUnauthorized,
		Response: model.ErrorResponse{
			Error:            constants.ErrorInvalidClient,
			ErrorDescription: "Invalid client credentials",
		},
	}
}

// AuthenticateClient authenticates the client with HTTP Basic credentials or with client_id and
// client_secret form parameters. The request form must already be parsed.
func AuthenticateClient(r *http.Request,
	appService appservice.ApplicationServiceInterface) (*appmodel.OAuthApplication, *AuthError) {
	clientID, clientSecret, authErr := extractCredentials(r)
	if authErr != nil {
		return nil, authErr
	}

	app, svcErr := appService.AuthenticateClient(clientID, clientSecret)
	if svcErr != nil {
		if svcErr.IsClientError() {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ClientAuthenticator")).
				Debug("Client authentication failed", log.String(log.LoggerKeyClientID, clientID))
			return nil, invalidClient()
		}
		return nil, &AuthError{
			StatusCode: http.StatusInternalServerError,
			Response: model.ErrorResponse{
				Error:            constants.ErrorServerError,
				ErrorDescription: "Failed to authenticate the client",
			},
		}
	}

	return app, nil
}

func extractCredentials(r *http.Request) (string, string, *AuthError) {
	bodyClientID := r.PostFormValue(constants.ClientID)
	bodyClientSecret := r.PostFormValue(constants.ClientSecret)

	if r.Header.Get(serverconst.AuthorizationHeaderName) == "" {
		if bodyClientID == "" || bodyClientSecret == "" {
			return "", "", invalidClient()
		}
		return bodyClientID, bodyClientSecret, nil
	}

	clientID, clientSecret, err := utils.ExtractBasicAuthCredentials(r)
	if err != nil {
		return "", "", invalidClient()
	}
	if bodyClientSecret != "" || (bodyClientID != "" && bodyClientID != clientID) {
		return "", "", &AuthError{
			StatusCode: http.StatusBadRequest,
			Response: model.ErrorResponse{
				Error:            constants.ErrorInvalidRequest,
				ErrorDescription: "Client credentials are provided in both the header and the body",
			},
		}
	}
	return clientID, clientSecret, nil
}
