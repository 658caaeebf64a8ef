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

package authz

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/suite"

	appmodel "github.com/hansung/authserver/internal/application/model"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/system/config"
)

const (
	testCodeVerifier  = "dBjftJeZ4CVP-mJ92K27uhbUJU1p1r_wW1gFWFOEjXk"
	testCodeChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

type AuthorizationValidatorTestSuite struct {
	suite.Suite
	validator AuthorizationValidatorInterface
	oauthApp  *appmodel.OAuthApplication
}

func TestAuthorizationValidatorSuite(t *testing.T) {
	suite.Run(t, new(AuthorizationValidatorTestSuite))
}

func (suite *AuthorizationValidatorTestSuite) SetupTest() {
	suite.validator = NewAuthorizationValidator(config.PKCEConfig{Required: true})
	suite.oauthApp = &appmodel.OAuthApplication{
		ClientID:             "client",
		RedirectURIs:         []string{"http://localhost:8070/authorized"},
		AllowedGrantTypes:    []string{constants.GrantTypeAuthorizationCode},
		AllowedResponseTypes: []string{constants.ResponseTypeCode},
		AllowedScopes:        []string{"openid", "profile"},
	}
}

func (suite *AuthorizationValidatorTestSuite) validParams() url.Values {
	return url.Values{
		constants.ResponseType:        {constants.ResponseTypeCode},
		constants.ClientID:            {"client"},
		constants.RedirectURI:         {"http://localhost:8070/authorized"},
		constants.Scope:               {"openid"},
		constants.CodeChallenge:       {testCodeChallenge},
		constants.CodeChallengeMethod: {constants.CodeChallengeMethodS256},
	}
}

func (suite *AuthorizationValidatorTestSuite) TestValidRequest() {
	errorCode, errorMessage := suite.validator.validateInitialAuthorizationRequest(suite.validParams(), suite.oauthApp)
	suite.Empty(errorCode)
	suite.Empty(errorMessage)
}

func (suite *AuthorizationValidatorTestSuite) TestInvalidRequests() {
	testCases := []struct {
		name         string
		mutate       func(url.Values, *appmodel.OAuthApplication)
		expectedCode string
	}{
		{
			name:         "MissingResponseType",
			mutate:       func(p url.Values, _ *appmodel.OAuthApplication) { p.Del(constants.ResponseType) },
			expectedCode: constants.ErrorInvalidRequest,
		},
		{
			name:         "TokenResponseType",
			mutate:       func(p url.Values, _ *appmodel.OAuthApplication) { p.Set(constants.ResponseType, "token") },
			expectedCode: constants.ErrorUnsupportedResponseType,
		},
		{
			name: "ResponseTypeNotRegistered",
			mutate: func(_ url.Values, app *appmodel.OAuthApplication) {
				app.AllowedResponseTypes = []string{"id_token"}
			},
			expectedCode: constants.ErrorUnsupportedResponseType,
		},
		{
			name: "GrantTypeNotAllowed",
			mutate: func(_ url.Values, app *appmodel.OAuthApplication) {
				app.AllowedGrantTypes = []string{"client_credentials"}
			},
			expectedCode: constants.ErrorUnauthorizedClient,
		},
		{
			name:         "UnregisteredScope",
			mutate:       func(p url.Values, _ *appmodel.OAuthApplication) { p.Set(constants.Scope, "openid admin") },
			expectedCode: constants.ErrorInvalidScope,
		},
		{
			name:         "MissingCodeChallenge",
			mutate:       func(p url.Values, _ *appmodel.OAuthApplication) { p.Del(constants.CodeChallenge) },
			expectedCode: constants.ErrorInvalidRequest,
		},
		{
			name: "PlainMethodNotAllowed",
			mutate: func(p url.Values, _ *appmodel.OAuthApplication) {
				p.Set(constants.CodeChallenge, testCodeVerifier)
				p.Set(constants.CodeChallengeMethod, constants.CodeChallengeMethodPlain)
			},
			expectedCode: constants.ErrorInvalidRequest,
		},
		{
			name: "OmittedMethodDefaultsToPlain",
			mutate: func(p url.Values, _ *appmodel.OAuthApplication) {
				p.Del(constants.CodeChallengeMethod)
			},
			expectedCode: constants.ErrorInvalidRequest,
		},
		{
			name: "UnknownMethod",
			mutate: func(p url.Values, _ *appmodel.OAuthApplication) {
				p.Set(constants.CodeChallengeMethod, "S512")
			},
			expectedCode: constants.ErrorInvalidRequest,
		},
		{
			name: "MalformedChallenge",
			mutate: func(p url.Values, _ *appmodel.OAuthApplication) {
				p.Set(constants.CodeChallenge, "too-short")
			},
			expectedCode: constants.ErrorInvalidRequest,
		},
		{
			name: "MethodWithoutChallenge",
			mutate: func(p url.Values, _ *appmodel.OAuthApplication) {
				p.Del(constants.CodeChallenge)
			},
			expectedCode: constants.ErrorInvalidRequest,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			params := suite.validParams()
			app := *suite.oauthApp
			tc.mutate(params, &app)

			errorCode, errorMessage := suite.validator.validateInitialAuthorizationRequest(params, &app)
			suite.Equal(tc.expectedCode, errorCode)
			suite.NotEmpty(errorMessage)
		})
	}
}

func (suite *AuthorizationValidatorTestSuite) TestOptionalPKCE() {
	validator := NewAuthorizationValidator(config.PKCEConfig{Required: false})
	params := suite.validParams()
	params.Del(constants.CodeChallenge)
	params.Del(constants.CodeChallengeMethod)

	errorCode, _ := validator.validateInitialAuthorizationRequest(params, suite.oauthApp)
	suite.Empty(errorCode)
}

func (suite *AuthorizationValidatorTestSuite) TestPlainMethodWhenAllowed() {
	validator := NewAuthorizationValidator(config.PKCEConfig{Required: true, AllowPlain: true})
	params := suite.validParams()
	params.Set(constants.CodeChallenge, testCodeVerifier)
	params.Del(constants.CodeChallengeMethod)

	errorCode, _ := validator.validateInitialAuthorizationRequest(params, suite.oauthApp)
	suite.Empty(errorCode)
}

func (suite *AuthorizationValidatorTestSuite) TestEmptyScopeIsAccepted() {
	params := suite.validParams()
	params.Del(constants.Scope)

	errorCode, _ := suite.validator.validateInitialAuthorizationRequest(params, suite.oauthApp)
	suite.Empty(errorCode)
}
