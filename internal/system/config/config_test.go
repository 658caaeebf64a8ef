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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *ConfigTestSuite) writeConfig(content string) string {
	p := filepath.Join(suite.dir, "deployment.yaml")
	require.NoError(suite.T(), os.WriteFile(p, []byte(content), 0o600))
	return p
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	p := suite.writeConfig(`
server:
  hostname: "localhost"
  port: 8081
  http_only: true
oauth:
  authorization_code:
    validity_period: 120
  clients:
    - client_id: "client"
      client_secret: "secret"
      redirect_uris: ["http://localhost:8070/authorized"]
      grant_types: ["authorization_code"]
      scopes: ["openid"]
user_store:
  users:
    - username: "1891239"
      password: "1234"
      roles: ["STUDENT"]
cors:
  allowed_origins: ["http://localhost:8070"]
`)

	cfg, err := LoadConfig(p)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "localhost", cfg.Server.Hostname)
	assert.Equal(suite.T(), 8081, cfg.Server.Port)
	assert.True(suite.T(), cfg.Server.HTTPOnly)
	assert.Equal(suite.T(), "http://localhost:8081", cfg.OAuth.Issuer)
	assert.Equal(suite.T(), int64(120), cfg.OAuth.AuthorizationCode.ValidityPeriod)
	assert.Equal(suite.T(), AuthorizationCodeStoreMemory, cfg.OAuth.AuthorizationCode.Store)
	assert.Equal(suite.T(), int64(DefaultAccessTokenValidity), cfg.OAuth.AccessToken.ValidityPeriod)
	assert.Equal(suite.T(), int64(DefaultIDTokenValidity), cfg.OAuth.IDToken.ValidityPeriod)
	require.Len(suite.T(), cfg.OAuth.Clients, 1)
	assert.Equal(suite.T(), "client", cfg.OAuth.Clients[0].ClientID)
	require.Len(suite.T(), cfg.UserStore.Users, 1)
	assert.Equal(suite.T(), []string{"STUDENT"}, cfg.UserStore.Users[0].Roles)
	assert.Equal(suite.T(), []string{"http://localhost:8070"}, cfg.CORS.AllowedOrigins)
}

func (suite *ConfigTestSuite) TestLoadConfigMissingFile() {
	_, err := LoadConfig(filepath.Join(suite.dir, "missing.yaml"))
	assert.Error(suite.T(), err)
}

func (suite *ConfigTestSuite) TestLoadConfigMalformedYAML() {
	p := suite.writeConfig("server: [unclosed")
	_, err := LoadConfig(p)
	assert.Error(suite.T(), err)
}

func (suite *ConfigTestSuite) TestApplyDefaults() {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(suite.T(), DefaultHostname, cfg.Server.Hostname)
	assert.Equal(suite.T(), DefaultPort, cfg.Server.Port)
	assert.Equal(suite.T(), "https://localhost:8081", cfg.OAuth.Issuer)
	assert.Equal(suite.T(), int64(DefaultAuthorizationCodeValidity), cfg.OAuth.AuthorizationCode.ValidityPeriod)
	assert.Equal(suite.T(), int64(DefaultCleanupInterval), cfg.OAuth.AuthorizationCode.CleanupInterval)
	assert.Equal(suite.T(), int64(DefaultKeyRotationGracePeriod), cfg.Security.KeyRotationGracePeriod)
	assert.Equal(suite.T(), DefaultRateLimitBurst, cfg.RateLimit.Burst)
}

func (suite *ConfigTestSuite) TestValidate() {
	testCases := []struct {
		name      string
		cfg       Config
		expectErr string
	}{
		{
			name: "DatabaseStoreWithoutDataSource",
			cfg: Config{OAuth: OAuthConfig{
				AuthorizationCode: AuthorizationCodeConfig{Store: AuthorizationCodeStoreDatabase}}},
			expectErr: "requires database.runtime",
		},
		{
			name: "UnknownStore",
			cfg: Config{OAuth: OAuthConfig{
				AuthorizationCode: AuthorizationCodeConfig{Store: "redis"}}},
			expectErr: "unsupported authorization code store",
		},
		{
			name: "DuplicateClient",
			cfg: Config{OAuth: OAuthConfig{
				AuthorizationCode: AuthorizationCodeConfig{Store: AuthorizationCodeStoreMemory},
				Clients: []ClientConfig{
					{ClientID: "client", RedirectURIs: []string{"http://localhost/cb"}},
					{ClientID: "client", RedirectURIs: []string{"http://localhost/cb"}},
				}}},
			expectErr: "duplicate client_id",
		},
		{
			name: "ClientWithoutRedirectURI",
			cfg: Config{OAuth: OAuthConfig{
				AuthorizationCode: AuthorizationCodeConfig{Store: AuthorizationCodeStoreMemory},
				Clients:           []ClientConfig{{ClientID: "client"}}}},
			expectErr: "redirect_uri is required",
		},
		{
			name: "UserWithoutName",
			cfg: Config{
				OAuth:     OAuthConfig{AuthorizationCode: AuthorizationCodeConfig{Store: AuthorizationCodeStoreMemory}},
				UserStore: UserStore{Users: []User{{Password: "x"}}}},
			expectErr: "username is required",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.cfg.Validate()
			require.Error(suite.T(), err)
			assert.Contains(suite.T(), err.Error(), tc.expectErr)
		})
	}
}

func (suite *ConfigTestSuite) TestRuntimeResolvePath() {
	rt := NewRuntime("/opt/server", &Config{})
	assert.Equal(suite.T(), "/opt/server/repository/resources/security/server.key",
		rt.ResolvePath("repository/resources/security/server.key"))
	assert.Equal(suite.T(), "/etc/server.key", rt.ResolvePath("/etc/server.key"))
	assert.Equal(suite.T(), "", rt.ResolvePath(""))
}
