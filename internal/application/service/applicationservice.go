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

// Package service provides the application service used by the OAuth endpoints.
package service

import (
	"errors"

	"github.com/hansung/authserver/internal/application/constants"
	"github.com/hansung/authserver/internal/application/model"
	"github.com/hansung/authserver/internal/application/store"
	"github.com/hansung/authserver/internal/system/crypto/hash"
	"github.com/hansung/authserver/internal/system/error/serviceerror"
	"github.com/hansung/authserver/internal/system/log"
)

// ApplicationServiceInterface defines the operations on registered OAuth applications.
type ApplicationServiceInterface interface {
	GetOAuthApplication(clientID string) (*model.OAuthApplication, *serviceerror.ServiceError)
	AuthenticateClient(clientID, clientSecret string) (*model.OAuthApplication, *serviceerror.ServiceError)
}

// ApplicationService is the default implementation of ApplicationServiceInterface.
type ApplicationService struct {
	store store.ApplicationStoreInterface
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(appStore store.ApplicationStoreInterface) ApplicationServiceInterface {
	return &ApplicationService{
		store: appStore,
	}
}

// GetOAuthApplication retrieves the OAuth application registered for the client id.
func (as *ApplicationService) GetOAuthApplication(clientID string) (*model.OAuthApplication,
	*serviceerror.ServiceError) {
	if clientID == "" {
		return nil, &constants.ErrorInvalidClientID
	}

	app, err := as.store.GetOAuthApplication(clientID)
	if err != nil {
		if errors.Is(err, store.ErrApplicationNotFound) {
			return nil, &constants.ErrorApplicationNotFound
		}
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ApplicationService")).
			Error("Failed to retrieve OAuth application", log.String(log.LoggerKeyClientID, clientID), log.Error(err))
		return nil, &serviceerror.InternalServerError
	}

	return app, nil
}

// AuthenticateClient verifies the client secret of the application. The secret comparison runs even
// when the client is unknown so the response time does not reveal registered client ids.
func (as *ApplicationService) AuthenticateClient(clientID, clientSecret string) (*model.OAuthApplication,
	*serviceerror.ServiceError) {
	app, svcErr := as.GetOAuthApplication(clientID)
	if svcErr != nil {
		if svcErr.IsClientError() {
			hash.CompareSecret("", clientSecret)
			return nil, &constants.ErrorInvalidClientCredentials
		}
		return nil, svcErr
	}

	if !hash.CompareSecret(app.ClientSecretHash, clientSecret) || clientSecret == "" {
		return nil, &constants.ErrorInvalidClientCredentials
	}

	return app, nil
}
