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

// Package main is the entry point for starting the authorization server.
package main

import (
	"context"
	"crypto/rsa"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/hansung/authserver/internal/oauth/jwt"
	authzstore "github.com/hansung/authserver/internal/oauth/oauth2/authz/store"
	"github.com/hansung/authserver/internal/system/config"
	"github.com/hansung/authserver/internal/system/database/provider"
	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/managers"
	"github.com/hansung/authserver/internal/system/metrics"
	"github.com/hansung/authserver/internal/system/middleware"
)

// rateLimiterCleanupInterval is how often idle per client limiters are dropped.
const rateLimiterCleanupInterval = time.Minute

func main() {
	logger := log.GetLogger()
	defer logger.Sync()

	serverHome := getServerHome(logger)

	runtime := initRuntime(logger, serverHome)
	cfg := runtime.Config

	keyRing := initKeyRing(logger, runtime)

	var dbProvider provider.DBProviderInterface
	if cfg.Database.Runtime.IsConfigured() {
		dbProvider = provider.NewDBProvider(runtime)
		defer func() {
			if err := dbProvider.Close(); err != nil {
				logger.Error("Failed to close database connections", log.Error(err))
			}
		}()
	}

	authZStore, err := authzstore.NewAuthorizationCodeStore(cfg.OAuth.AuthorizationCode, dbProvider)
	if err != nil {
		logger.Fatal("Failed to initialize the authorization code store", log.Error(err))
	}

	metricsManager := metrics.NewMetricsManager()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	mux := initMultiplexer(logger, managers.ServiceDependencies{
		Runtime:        runtime,
		KeyRing:        keyRing,
		DBProvider:     dbProvider,
		AuthZStore:     authZStore,
		MetricsManager: metricsManager,
		RateLimiter:    rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the background maintenance loops.
	sweeper := authzstore.NewSweeper(authZStore,
		time.Duration(cfg.OAuth.AuthorizationCode.CleanupInterval)*time.Second, metricsManager)
	go sweeper.Run(ctx)
	if rateLimiter != nil {
		go rateLimiter.Run(ctx, rateLimiterCleanupInterval)
	}

	server, serverAddr := createHTTPServer(logger, cfg, mux)
	serveErr := make(chan error, 1)
	go func() {
		if cfg.Server.HTTPOnly {
			logger.Info("TLS is not enabled, starting server without TLS")
			serveErr <- startHTTPServer(logger, server, serverAddr)
		} else {
			serveErr <- startTLSServer(logger, server, serverAddr, runtime)
		}
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve requests", log.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping the server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down the server gracefully", log.Error(err))
		}
	}

	logger.Info("Authorization server stopped")
}

// getServerHome retrieves and returns the server home directory.
func getServerHome(logger *log.Logger) string {
	serverHomeFlag := flag.String("serverHome", "", "Path to the server home directory")
	flag.Parse()

	if *serverHomeFlag != "" {
		logger.Info("Using serverHome from command line argument", log.String("serverHome", *serverHomeFlag))
		return *serverHomeFlag
	}

	// If no command line argument is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initRuntime loads the deployment configuration and builds the server runtime.
func initRuntime(logger *log.Logger, serverHome string) *config.Runtime {
	configFilePath := path.Join(serverHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	return config.NewRuntime(serverHome, cfg)
}

// initKeyRing loads the signing key, or generates an ephemeral one when no key file is configured.
func initKeyRing(logger *log.Logger, runtime *config.Runtime) *jwt.KeyRing {
	cfg := runtime.Config

	var key *rsa.PrivateKey
	var err error
	if cfg.Security.KeyFile != "" {
		key, err = jwt.LoadPrivateKey(runtime.ResolvePath(cfg.Security.KeyFile))
		if err != nil {
			logger.Fatal("Failed to load private key", log.Error(err))
		}
	} else {
		logger.Warn("No signing key configured, generating an ephemeral key. " +
			"Issued tokens will not survive a restart")
		key, err = jwt.GenerateKey()
		if err != nil {
			logger.Fatal("Failed to generate signing key", log.Error(err))
		}
	}

	kid := cfg.Security.KeyID
	if kid == "" {
		kid = jwt.DeriveKeyID(&key.PublicKey)
	}

	keyRing, err := jwt.NewKeyRing(kid, key, time.Duration(cfg.Security.KeyRotationGracePeriod)*time.Second)
	if err != nil {
		logger.Fatal("Failed to initialize the signing key ring", log.Error(err))
	}
	return keyRing
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger, deps managers.ServiceDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, deps)

	if err := serviceManager.RegisterServices(); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// startTLSServer starts the HTTPS server with the configured certificate and key.
func startTLSServer(logger *log.Logger, server *http.Server, serverAddr string, runtime *config.Runtime) error {
	cfg := runtime.Config
	cert, err := tls.LoadX509KeyPair(runtime.ResolvePath(cfg.Security.CertFile),
		runtime.ResolvePath(cfg.Security.KeyFile))
	if err != nil {
		return fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	ln, err := tls.Listen("tcp", serverAddr, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	})
	if err != nil {
		return fmt.Errorf("failed to start TLS listener: %w", err)
	}

	logger.Info("Authorization server started (HTTPS)...", log.String("address", serverAddr))
	return server.Serve(ln)
}

// startHTTPServer starts the HTTP server without TLS.
func startHTTPServer(logger *log.Logger, server *http.Server, serverAddr string) error {
	logger.Info("Authorization server started (HTTP)...", log.String("address", serverAddr))
	return server.ListenAndServe()
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	// Wrap the multiplexer with AccessLogHandler.
	wrappedMux := log.AccessLogHandler(logger, mux)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return server, serverAddr
}
