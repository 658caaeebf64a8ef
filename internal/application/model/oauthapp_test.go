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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OAuthApplicationTestSuite struct {
	suite.Suite
	app *OAuthApplication
}

func TestOAuthApplicationSuite(t *testing.T) {
	suite.Run(t, new(OAuthApplicationTestSuite))
}

func (suite *OAuthApplicationTestSuite) SetupTest() {
	suite.app = &OAuthApplication{
		ClientID:             "client",
		RedirectURIs:         []string{"http://localhost:8070/authorized"},
		AllowedGrantTypes:    []string{"authorization_code"},
		AllowedResponseTypes: []string{"code"},
		AllowedScopes:        []string{"openid"},
	}
}

func (suite *OAuthApplicationTestSuite) TestIsAllowed() {
	assert.True(suite.T(), suite.app.IsAllowedGrantType("authorization_code"))
	assert.False(suite.T(), suite.app.IsAllowedGrantType("client_credentials"))
	assert.False(suite.T(), suite.app.IsAllowedGrantType(""))

	assert.True(suite.T(), suite.app.IsAllowedResponseType("code"))
	assert.False(suite.T(), suite.app.IsAllowedResponseType("token"))

	assert.True(suite.T(), suite.app.IsAllowedScope("openid"))
	assert.False(suite.T(), suite.app.IsAllowedScope("admin"))

	unrestricted := &OAuthApplication{}
	assert.True(suite.T(), unrestricted.IsAllowedScope("anything"))
}

func (suite *OAuthApplicationTestSuite) TestResolveRedirectURI() {
	uri, err := suite.app.ResolveRedirectURI("http://localhost:8070/authorized")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "http://localhost:8070/authorized", uri)

	uri, err = suite.app.ResolveRedirectURI("")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "http://localhost:8070/authorized", uri)

	_, err = suite.app.ResolveRedirectURI("http://localhost:8070/authorized/")
	assert.Error(suite.T(), err)

	_, err = suite.app.ResolveRedirectURI("http://evil.example/authorized")
	assert.Error(suite.T(), err)
}

func (suite *OAuthApplicationTestSuite) TestResolveRedirectURIMultipleRegistered() {
	suite.app.RedirectURIs = append(suite.app.RedirectURIs, "http://localhost:8071/authorized")

	_, err := suite.app.ResolveRedirectURI("")
	assert.Error(suite.T(), err)

	uri, err := suite.app.ResolveRedirectURI("http://localhost:8071/authorized")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "http://localhost:8071/authorized", uri)
}

func (suite *OAuthApplicationTestSuite) TestResolveRedirectURIInvalidRegistration() {
	suite.app.RedirectURIs = []string{"/authorized"}
	_, err := suite.app.ResolveRedirectURI("")
	assert.Error(suite.T(), err)

	suite.app.RedirectURIs = []string{"http://localhost:8070/authorized#frag"}
	_, err = suite.app.ResolveRedirectURI("http://localhost:8070/authorized#frag")
	assert.Error(suite.T(), err)
}
