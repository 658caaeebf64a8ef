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

// Package managers provides functionality for managing and registering system services.
package managers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	appservice "github.com/hansung/authserver/internal/application/service"
	appstore "github.com/hansung/authserver/internal/application/store"
	"github.com/hansung/authserver/internal/authn"
	"github.com/hansung/authserver/internal/oauth/jwks"
	jwkshandler "github.com/hansung/authserver/internal/oauth/jwks/handler"
	"github.com/hansung/authserver/internal/oauth/jwt"
	"github.com/hansung/authserver/internal/oauth/oauth2/authz"
	authzstore "github.com/hansung/authserver/internal/oauth/oauth2/authz/store"
	"github.com/hansung/authserver/internal/oauth/oauth2/granthandlers"
	"github.com/hansung/authserver/internal/oauth/oauth2/introspect"
	"github.com/hansung/authserver/internal/oauth/oauth2/issuer"
	"github.com/hansung/authserver/internal/oauth/oauth2/token"
	"github.com/hansung/authserver/internal/system/config"
	"github.com/hansung/authserver/internal/system/database/provider"
	healthhandler "github.com/hansung/authserver/internal/system/healthcheck/handler"
	healthservice "github.com/hansung/authserver/internal/system/healthcheck/service"
	"github.com/hansung/authserver/internal/system/metrics"
	"github.com/hansung/authserver/internal/system/middleware"
	"github.com/hansung/authserver/internal/system/server"
	"github.com/hansung/authserver/internal/system/services"
)

// ServiceManagerInterface defines the interface for managing services.
type ServiceManagerInterface interface {
	RegisterServices() error
}

// ServiceDependencies holds the long lived components shared by the services. They are created at
// startup and closed by the caller on shutdown.
type ServiceDependencies struct {
	Runtime *config.Runtime
	KeyRing *jwt.KeyRing
	// DBProvider is nil when no runtime database is configured.
	DBProvider     provider.DBProviderInterface
	AuthZStore     authzstore.AuthorizationCodeStoreInterface
	MetricsManager *metrics.MetricsManager
	// RateLimiter is nil when rate limiting is disabled.
	RateLimiter *middleware.RateLimiter
}

// ServiceManager implements the ServiceManagerInterface and is responsible for registering services.
type ServiceManager struct {
	mux  *http.ServeMux
	deps ServiceDependencies
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, deps ServiceDependencies) ServiceManagerInterface {
	return &ServiceManager{
		mux:  mux,
		deps: deps,
	}
}

// RegisterServices builds the handlers from the dependencies and registers all the services with the
// HTTP multiplexer.
func (sm *ServiceManager) RegisterServices() error {
	if sm.deps.Runtime == nil || sm.deps.Runtime.Config == nil {
		return errors.New("runtime configuration is required")
	}
	if sm.deps.KeyRing == nil {
		return errors.New("signing key ring is required")
	}
	if sm.deps.AuthZStore == nil {
		return errors.New("authorization code store is required")
	}
	cfg := sm.deps.Runtime.Config

	applicationStore, err := appstore.NewConfigApplicationStore(cfg.OAuth.Clients)
	if err != nil {
		return fmt.Errorf("failed to load OAuth clients: %w", err)
	}
	applicationService := appservice.NewApplicationService(applicationStore)

	subjectProvider, err := authn.NewBasicSubjectProvider(cfg.UserStore.Users)
	if err != nil {
		return fmt.Errorf("failed to load user store: %w", err)
	}

	jwtService := jwt.NewJWTService(sm.deps.KeyRing, cfg.OAuth.Issuer)
	tokenIssuer := issuer.NewTokenIssuer(jwtService, cfg.OAuth.Issuer,
		time.Duration(cfg.OAuth.AccessToken.ValidityPeriod)*time.Second,
		time.Duration(cfg.OAuth.IDToken.ValidityPeriod)*time.Second)

	serverOpsService := server.NewServerOperationService(cfg.CORS.AllowedOrigins, sm.deps.RateLimiter,
		sm.deps.MetricsManager)

	// Register the health service.
	services.NewHealthCheckService(sm.mux, serverOpsService,
		healthhandler.NewHealthCheckHandler(healthservice.NewHealthCheckService(sm.deps.DBProvider)))

	// Register the authorization service.
	services.NewAuthorizationService(sm.mux, serverOpsService,
		authz.NewAuthorizeHandler(applicationService, subjectProvider, sm.deps.AuthZStore,
			authz.NewAuthorizationValidator(cfg.OAuth.PKCE), sm.deps.MetricsManager))

	// Register the token service.
	services.NewTokenService(sm.mux, serverOpsService,
		token.NewTokenHandler(applicationService,
			granthandlers.NewGrantHandlerProvider(sm.deps.AuthZStore, tokenIssuer, cfg.OAuth.PKCE),
			sm.deps.MetricsManager))

	// Register the introspection service.
	services.NewIntrospectionAPIService(sm.mux, serverOpsService,
		introspect.NewTokenIntrospectionHandler(introspect.NewTokenIntrospectionService(jwtService),
			applicationService, sm.deps.MetricsManager))

	// Register the JWKS service.
	services.NewJWKSAPIService(sm.mux, serverOpsService,
		jwkshandler.NewJWKSHandler(jwks.NewJWKSService(jwtService)))

	// Register the metrics service.
	if sm.deps.MetricsManager != nil {
		services.NewMetricsService(sm.mux, sm.deps.MetricsManager)
	}

	return nil
}
