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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"

	"github.com/hansung/authserver/internal/system/log"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname          string `yaml:"hostname"`
	Port              int    `yaml:"port"`
	HTTPOnly          bool   `yaml:"http_only"`
	ReadHeaderTimeout int64  `yaml:"read_header_timeout"`
	WriteTimeout      int64  `yaml:"write_timeout"`
	IdleTimeout       int64  `yaml:"idle_timeout"`
	ShutdownTimeout   int64  `yaml:"shutdown_timeout"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile               string `yaml:"cert_file"`
	KeyFile                string `yaml:"key_file"`
	KeyID                  string `yaml:"key_id"`
	KeyRotationGracePeriod int64  `yaml:"key_rotation_grace_period"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int64  `yaml:"conn_max_lifetime"`
}

// IsConfigured reports whether a data source type has been set.
func (d DataSource) IsConfigured() bool {
	return d.Type != ""
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Runtime DataSource `yaml:"runtime"`
}

// AuthorizationCodeConfig holds the authorization code configuration details.
type AuthorizationCodeConfig struct {
	ValidityPeriod  int64  `yaml:"validity_period"`
	Store           string `yaml:"store"`
	CleanupInterval int64  `yaml:"cleanup_interval"`
}

// TokenConfig holds the configuration of an issued token type.
type TokenConfig struct {
	ValidityPeriod int64 `yaml:"validity_period"`
}

// PKCEConfig holds the PKCE configuration details.
type PKCEConfig struct {
	Required   bool `yaml:"required"`
	AllowPlain bool `yaml:"allow_plain"`
}

// ClientConfig holds the details of a registered OAuth client.
type ClientConfig struct {
	ClientID      string   `yaml:"client_id"`
	ClientSecret  string   `yaml:"client_secret"`
	RedirectURIs  []string `yaml:"redirect_uris"`
	GrantTypes    []string `yaml:"grant_types"`
	ResponseTypes []string `yaml:"response_types"`
	Scopes        []string `yaml:"scopes"`
}

// OAuthConfig holds the OAuth configuration details.
type OAuthConfig struct {
	Issuer            string                  `yaml:"issuer"`
	AuthorizationCode AuthorizationCodeConfig `yaml:"authorization_code"`
	AccessToken       TokenConfig             `yaml:"access_token"`
	IDToken           TokenConfig             `yaml:"id_token"`
	PKCE              PKCEConfig              `yaml:"pkce"`
	Clients           []ClientConfig          `yaml:"clients"`
}

// User holds the details of a user in the configured user store.
type User struct {
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	Roles    []string `yaml:"roles"`
}

// UserStore holds the user store configuration details.
type UserStore struct {
	Users []User `yaml:"users"`
}

// CORSConfig holds the CORS configuration details.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimitConfig holds the rate limiting configuration details.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Security  SecurityConfig  `yaml:"security"`
	Database  DatabaseConfig  `yaml:"database"`
	OAuth     OAuthConfig     `yaml:"oauth"`
	UserStore UserStore       `yaml:"user_store"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	cfg := &Config{}
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration file %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset values with the server defaults.
func (c *Config) ApplyDefaults() {
	if c.Server.Hostname == "" {
		c.Server.Hostname = DefaultHostname
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		c.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = DefaultIdleTimeout
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Security.KeyRotationGracePeriod <= 0 {
		c.Security.KeyRotationGracePeriod = DefaultKeyRotationGracePeriod
	}
	if c.OAuth.Issuer == "" {
		scheme := "https"
		if c.Server.HTTPOnly {
			scheme = "http"
		}
		c.OAuth.Issuer = fmt.Sprintf("%s://%s:%d", scheme, c.Server.Hostname, c.Server.Port)
	}
	if c.OAuth.AuthorizationCode.ValidityPeriod <= 0 {
		c.OAuth.AuthorizationCode.ValidityPeriod = DefaultAuthorizationCodeValidity
	}
	if c.OAuth.AuthorizationCode.Store == "" {
		c.OAuth.AuthorizationCode.Store = AuthorizationCodeStoreMemory
	}
	if c.OAuth.AuthorizationCode.CleanupInterval <= 0 {
		c.OAuth.AuthorizationCode.CleanupInterval = DefaultCleanupInterval
	}
	if c.OAuth.AccessToken.ValidityPeriod <= 0 {
		c.OAuth.AccessToken.ValidityPeriod = DefaultAccessTokenValidity
	}
	if c.OAuth.IDToken.ValidityPeriod <= 0 {
		c.OAuth.IDToken.ValidityPeriod = DefaultIDTokenValidity
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = DefaultRateLimitRPS
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = DefaultRateLimitBurst
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}

	switch c.OAuth.AuthorizationCode.Store {
	case AuthorizationCodeStoreMemory:
	case AuthorizationCodeStoreDatabase:
		if !c.Database.Runtime.IsConfigured() {
			errs = append(errs, errors.New("authorization code store 'database' requires database.runtime"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported authorization code store %q", c.OAuth.AuthorizationCode.Store))
	}

	seen := make(map[string]struct{}, len(c.OAuth.Clients))
	for i, client := range c.OAuth.Clients {
		if client.ClientID == "" {
			errs = append(errs, fmt.Errorf("oauth.clients[%d]: client_id is required", i))
			continue
		}
		if _, ok := seen[client.ClientID]; ok {
			errs = append(errs, fmt.Errorf("oauth.clients[%d]: duplicate client_id %q", i, client.ClientID))
		}
		seen[client.ClientID] = struct{}{}
		if len(client.RedirectURIs) == 0 {
			errs = append(errs, fmt.Errorf("oauth.clients[%d]: at least one redirect_uri is required", i))
		}
	}

	for i, user := range c.UserStore.Users {
		if user.Username == "" {
			errs = append(errs, fmt.Errorf("user_store.users[%d]: username is required", i))
		}
	}

	return errors.Join(errs...)
}
