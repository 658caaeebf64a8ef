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

package granthandlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	appmodel "github.com/hansung/authserver/internal/application/model"
	authzconstants "github.com/hansung/authserver/internal/oauth/oauth2/authz/constants"
	authzmodel "github.com/hansung/authserver/internal/oauth/oauth2/authz/model"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/issuer"
	"github.com/hansung/authserver/internal/oauth/oauth2/model"
	"github.com/hansung/authserver/internal/oauth/oauth2/pkce"
	"github.com/hansung/authserver/internal/system/config"
	"github.com/hansung/authserver/tests/mocks/oauth/oauth2/authz/storemock"
	"github.com/hansung/authserver/tests/mocks/oauth/oauth2/issuermock"
)

const testVerifier = "dBjftJeZ4CVP-mJ92K27uhbUJU1p1r_wW1gFWFOEjXk"

type AuthorizationCodeGrantHandlerTestSuite struct {
	suite.Suite
	handler         *authorizationCodeGrantHandler
	mockAuthZStore  *storemock.AuthorizationCodeStoreInterfaceMock
	mockTokenIssuer *issuermock.TokenIssuerInterfaceMock
	oauthApp        *appmodel.OAuthApplication
	authRequest     *authzmodel.AuthorizationRequest
	testTokenReq    *model.TokenRequest
}

func TestAuthorizationCodeGrantHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthorizationCodeGrantHandlerTestSuite))
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) SetupTest() {
	suite.mockAuthZStore = storemock.NewAuthorizationCodeStoreInterfaceMock(suite.T())
	suite.mockTokenIssuer = issuermock.NewTokenIssuerInterfaceMock(suite.T())

	suite.handler = &authorizationCodeGrantHandler{
		AuthZStore:   suite.mockAuthZStore,
		TokenIssuer:  suite.mockTokenIssuer,
		pkceRequired: true,
	}

	suite.oauthApp = &appmodel.OAuthApplication{
		ClientID:             "client",
		RedirectURIs:         []string{"http://localhost:8070/authorized"},
		AllowedGrantTypes:    []string{constants.GrantTypeAuthorizationCode},
		AllowedResponseTypes: []string{constants.ResponseTypeCode},
	}

	challenge, err := pkce.GenerateCodeChallenge(testVerifier, constants.CodeChallengeMethodS256)
	suite.Require().NoError(err)

	suite.authRequest = &authzmodel.AuthorizationRequest{
		ClientID:            "client",
		RedirectURI:         "http://localhost:8070/authorized",
		Scopes:              []string{"openid"},
		CodeChallenge:       challenge,
		CodeChallengeMethod: constants.CodeChallengeMethodS256,
		Nonce:               "n-0S6_WzA2Mj",
		Subject:             "1891239",
		SubjectRoles:        []string{"STUDENT"},
		AuthTime:            time.Now().Add(-time.Minute),
	}

	suite.testTokenReq = &model.TokenRequest{
		GrantType:    constants.GrantTypeAuthorizationCode,
		ClientID:     "client",
		Code:         "test-auth-code",
		RedirectURI:  "http://localhost:8070/authorized",
		CodeVerifier: testVerifier,
	}
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestNewAuthorizationCodeGrantHandler() {
	handler := newAuthorizationCodeGrantHandler(suite.mockAuthZStore, suite.mockTokenIssuer,
		config.PKCEConfig{Required: true})
	assert.NotNil(suite.T(), handler)
	assert.Implements(suite.T(), (*GrantHandlerInterface)(nil), handler)
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestValidateGrant_Success() {
	err := suite.handler.ValidateGrant(suite.testTokenReq, suite.oauthApp)
	assert.Nil(suite.T(), err)
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestValidateGrant_Failures() {
	testCases := []struct {
		name        string
		mutate      func(*model.TokenRequest)
		expectedErr string
		expectedMsg string
	}{
		{
			name:        "MissingGrantType",
			mutate:      func(r *model.TokenRequest) { r.GrantType = "" },
			expectedErr: constants.ErrorInvalidRequest,
			expectedMsg: "Missing grant type",
		},
		{
			name:        "UnsupportedGrantType",
			mutate:      func(r *model.TokenRequest) { r.GrantType = "password" },
			expectedErr: constants.ErrorUnsupportedGrantType,
			expectedMsg: "Unsupported grant type",
		},
		{
			name:        "MissingCode",
			mutate:      func(r *model.TokenRequest) { r.Code = "" },
			expectedErr: constants.ErrorInvalidRequest,
			expectedMsg: "Authorization code is required",
		},
		{
			name:        "ClientMismatch",
			mutate:      func(r *model.TokenRequest) { r.ClientID = "other" },
			expectedErr: constants.ErrorInvalidClient,
			expectedMsg: "Invalid client Id",
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			tokenReq := *suite.testTokenReq
			tc.mutate(&tokenReq)

			err := suite.handler.ValidateGrant(&tokenReq, suite.oauthApp)
			assert.NotNil(t, err)
			assert.Equal(t, tc.expectedErr, err.Error)
			assert.Equal(t, tc.expectedMsg, err.ErrorDescription)
		})
	}
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrant_Success() {
	suite.mockAuthZStore.On("Consume", mock.Anything, "test-auth-code").Return(suite.authRequest, nil)
	suite.mockTokenIssuer.On("Issue", mock.MatchedBy(func(grant *model.Grant) bool {
		return grant.Subject == "1891239" && grant.ClientID == "client" &&
			grant.Nonce == "n-0S6_WzA2Mj" && len(grant.Roles) == 1 && grant.Roles[0] == "STUDENT"
	})).Return(&issuer.IssuedTokens{
		AccessToken: "access-token",
		IDToken:     "id-token",
		ExpiresIn:   3600,
		Scopes:      []string{"openid"},
	}, nil)

	resp, errResp := suite.handler.HandleGrant(context.Background(), suite.testTokenReq, suite.oauthApp)

	assert.Nil(suite.T(), errResp)
	assert.NotNil(suite.T(), resp)
	assert.Equal(suite.T(), "access-token", resp.AccessToken)
	assert.Equal(suite.T(), "id-token", resp.IDToken)
	assert.Equal(suite.T(), constants.TokenTypeBearer, resp.TokenType)
	assert.Equal(suite.T(), int64(3600), resp.ExpiresIn)
	assert.Equal(suite.T(), "openid", resp.Scope)
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrant_StoreErrorsAreIndistinguishable() {
	storeErrors := []error{
		authzconstants.ErrAuthorizationCodeNotFound,
		authzconstants.ErrAuthorizationCodeExpired,
		authzconstants.ErrAuthorizationCodeConsumed,
		errors.New("connection refused"),
	}

	for _, storeErr := range storeErrors {
		suite.Run(storeErr.Error(), func() {
			store := storemock.NewAuthorizationCodeStoreInterfaceMock(suite.T())
			store.On("Consume", mock.Anything, "test-auth-code").Return(nil, storeErr)
			handler := &authorizationCodeGrantHandler{AuthZStore: store, TokenIssuer: suite.mockTokenIssuer}

			resp, errResp := handler.HandleGrant(context.Background(), suite.testTokenReq, suite.oauthApp)

			suite.Nil(resp)
			suite.Equal(&model.ErrorResponse{
				Error:            constants.ErrorInvalidGrant,
				ErrorDescription: "Invalid authorization code",
			}, errResp)
		})
	}
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrant_BindingFailures() {
	testCases := []struct {
		name        string
		mutateReq   func(*model.TokenRequest)
		mutateAuthz func(*authzmodel.AuthorizationRequest)
		expectedMsg string
	}{
		{
			name:        "IssuedToAnotherClient",
			mutateAuthz: func(a *authzmodel.AuthorizationRequest) { a.ClientID = "other" },
			expectedMsg: "Authorization code was issued to another client",
		},
		{
			name:        "RedirectURIMismatch",
			mutateReq:   func(r *model.TokenRequest) { r.RedirectURI = "http://localhost:8070/other" },
			expectedMsg: "Invalid redirect URI",
		},
		{
			name:        "RedirectURIMissing",
			mutateReq:   func(r *model.TokenRequest) { r.RedirectURI = "" },
			expectedMsg: "Invalid redirect URI",
		},
		{
			name: "UnregisteredRedirectURIWhenNoneBound",
			mutateReq: func(r *model.TokenRequest) {
				r.RedirectURI = "http://localhost:8070/other"
			},
			mutateAuthz: func(a *authzmodel.AuthorizationRequest) { a.RedirectURI = "" },
			expectedMsg: "Invalid redirect URI",
		},
		{
			name:        "MissingVerifier",
			mutateReq:   func(r *model.TokenRequest) { r.CodeVerifier = "" },
			expectedMsg: "Code verifier is required",
		},
		{
			name: "WrongVerifier",
			mutateReq: func(r *model.TokenRequest) {
				r.CodeVerifier = "wrongwrongwrongwrongwrongwrongwrongwrongwrong"
			},
			expectedMsg: "Invalid code verifier",
		},
		{
			name: "PlainMethodNotAllowed",
			mutateAuthz: func(a *authzmodel.AuthorizationRequest) {
				a.CodeChallenge = testVerifier
				a.CodeChallengeMethod = constants.CodeChallengeMethodPlain
			},
			expectedMsg: "Invalid code verifier",
		},
		{
			name: "NoChallengeBound",
			mutateAuthz: func(a *authzmodel.AuthorizationRequest) {
				a.CodeChallenge = ""
				a.CodeChallengeMethod = ""
			},
			expectedMsg: "Authorization code was not bound to a code challenge",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			tokenReq := *suite.testTokenReq
			if tc.mutateReq != nil {
				tc.mutateReq(&tokenReq)
			}
			authRequest := *suite.authRequest
			if tc.mutateAuthz != nil {
				tc.mutateAuthz(&authRequest)
			}

			store := storemock.NewAuthorizationCodeStoreInterfaceMock(suite.T())
			store.On("Consume", mock.Anything, "test-auth-code").Return(&authRequest, nil)
			handler := &authorizationCodeGrantHandler{
				AuthZStore:   store,
				TokenIssuer:  suite.mockTokenIssuer,
				pkceRequired: true,
			}

			resp, errResp := handler.HandleGrant(context.Background(), &tokenReq, suite.oauthApp)

			suite.Nil(resp)
			suite.NotNil(errResp)
			suite.Equal(constants.ErrorInvalidGrant, errResp.Error)
			suite.Equal(tc.expectedMsg, errResp.ErrorDescription)
		})
	}
	suite.mockTokenIssuer.AssertNotCalled(suite.T(), "Issue", mock.Anything)
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrant_WithoutPKCEWhenOptional() {
	suite.authRequest.CodeChallenge = ""
	suite.authRequest.CodeChallengeMethod = ""
	suite.authRequest.RedirectURI = ""
	suite.testTokenReq.CodeVerifier = ""
	suite.testTokenReq.RedirectURI = ""
	suite.handler.pkceRequired = false

	suite.mockAuthZStore.On("Consume", mock.Anything, "test-auth-code").Return(suite.authRequest, nil)
	suite.mockTokenIssuer.On("Issue", mock.Anything).Return(&issuer.IssuedTokens{
		AccessToken: "access-token",
		ExpiresIn:   3600,
		Scopes:      []string{"openid"},
	}, nil)

	resp, errResp := suite.handler.HandleGrant(context.Background(), suite.testTokenReq, suite.oauthApp)

	assert.Nil(suite.T(), errResp)
	assert.Equal(suite.T(), "access-token", resp.AccessToken)
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrant_PlainMethodWhenAllowed() {
	suite.authRequest.CodeChallenge = testVerifier
	suite.authRequest.CodeChallengeMethod = constants.CodeChallengeMethodPlain
	suite.handler.allowPlainPKCE = true

	suite.mockAuthZStore.On("Consume", mock.Anything, "test-auth-code").Return(suite.authRequest, nil)
	suite.mockTokenIssuer.On("Issue", mock.Anything).Return(&issuer.IssuedTokens{
		AccessToken: "access-token",
		ExpiresIn:   3600,
	}, nil)

	resp, errResp := suite.handler.HandleGrant(context.Background(), suite.testTokenReq, suite.oauthApp)

	assert.Nil(suite.T(), errResp)
	assert.Equal(suite.T(), "access-token", resp.AccessToken)
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrant_IssuerFailure() {
	suite.mockAuthZStore.On("Consume", mock.Anything, "test-auth-code").Return(suite.authRequest, nil)
	suite.mockTokenIssuer.On("Issue", mock.Anything).Return(nil, errors.New("signing failed"))

	resp, errResp := suite.handler.HandleGrant(context.Background(), suite.testTokenReq, suite.oauthApp)

	assert.Nil(suite.T(), resp)
	assert.Equal(suite.T(), constants.ErrorServerError, errResp.Error)
}
