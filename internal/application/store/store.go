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

// Package store provides the registry of OAuth applications known to the server.
package store

import (
	"errors"
	"fmt"

	"github.com/hansung/authserver/internal/application/constants"
	"github.com/hansung/authserver/internal/application/model"
	"github.com/hansung/authserver/internal/system/config"
	"github.com/hansung/authserver/internal/system/crypto/hash"
)

// ErrApplicationNotFound is returned when no application is registered for a client id.
var ErrApplicationNotFound = errors.New("application not found")

// ApplicationStoreInterface defines the lookup operations of the application registry.
type ApplicationStoreInterface interface {
	GetOAuthApplication(clientID string) (*model.OAuthApplication, error)
}

// configApplicationStore is an immutable registry seeded from the deployment configuration.
type configApplicationStore struct {
	applications map[string]model.OAuthApplication
}

// NewConfigApplicationStore creates a registry from the configured clients. Plain text secrets
// are hashed with bcrypt at load time; secrets that already are bcrypt hashes are kept as is.
func NewConfigApplicationStore(clients []config.ClientConfig) (ApplicationStoreInterface, error) {
	applications := make(map[string]model.OAuthApplication, len(clients))

	for _, client := range clients {
		if client.ClientID == "" {
			return nil, errors.New("client id is required")
		}
		if _, exists := applications[client.ClientID]; exists {
			return nil, fmt.Errorf("duplicate client id %q", client.ClientID)
		}

		secretHash := client.ClientSecret
		if secretHash != "" && !hash.IsSecretHash(secretHash) {
			hashed, err := hash.HashSecret(secretHash)
			if err != nil {
				return nil, fmt.Errorf("failed to hash secret of client %q: %w", client.ClientID, err)
			}
			secretHash = hashed
		}

		app := model.OAuthApplication{
			ClientID:             client.ClientID,
			ClientSecretHash:     secretHash,
			RedirectURIs:         append([]string(nil), client.RedirectURIs...),
			AllowedGrantTypes:    append([]string(nil), client.GrantTypes...),
			AllowedResponseTypes: append([]string(nil), client.ResponseTypes...),
			AllowedScopes:        append([]string(nil), client.Scopes...),
		}
		if len(app.AllowedGrantTypes) == 0 {
			app.AllowedGrantTypes = append([]string(nil), constants.DefaultGrantTypes...)
		}
		if len(app.AllowedResponseTypes) == 0 {
			app.AllowedResponseTypes = append([]string(nil), constants.DefaultResponseTypes...)
		}

		applications[client.ClientID] = app
	}

	return &configApplicationStore{applications: applications}, nil
}

// GetOAuthApplication returns a copy of the application registered for the client id.
func (s *configApplicationStore) GetOAuthApplication(clientID string) (*model.OAuthApplication, error) {
	app, ok := s.applications[clientID]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	return &app, nil
}
