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

package issuer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hansung/authserver/internal/oauth/jwt"
	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/model"
	"github.com/hansung/authserver/tests/mocks/jwtmock"
)

const testIssuer = "http://localhost:8081"

type TokenIssuerTestSuite struct {
	suite.Suite
	jwtService *jwt.JWTService
	issuer     *TokenIssuer
	now        time.Time
}

func TestTokenIssuerSuite(t *testing.T) {
	suite.Run(t, new(TokenIssuerTestSuite))
}

func (suite *TokenIssuerTestSuite) SetupSuite() {
	key, err := jwt.GenerateKey()
	suite.Require().NoError(err)
	keyRing, err := jwt.NewKeyRing("", key, time.Hour)
	suite.Require().NoError(err)
	suite.jwtService = jwt.NewJWTService(keyRing, testIssuer)
}

func (suite *TokenIssuerTestSuite) SetupTest() {
	suite.now = time.Now().Truncate(time.Second)
	suite.issuer = NewTokenIssuer(suite.jwtService, testIssuer, time.Hour, 30*time.Minute).(*TokenIssuer)
	suite.issuer.now = func() time.Time { return suite.now }
}

func testGrant(scopes ...string) *model.Grant {
	return &model.Grant{
		Subject:  "1891239",
		Roles:    []string{"STUDENT"},
		ClientID: "client",
		Scopes:   scopes,
		AuthTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Nonce:    "n-0S6_WzA2Mj",
	}
}

func (suite *TokenIssuerTestSuite) TestIssueWithOpenIDScope() {
	tokens, err := suite.issuer.Issue(testGrant("openid", "profile"))
	suite.Require().NoError(err)

	suite.Equal(int64(3600), tokens.ExpiresIn)
	suite.Equal([]string{"openid", "profile"}, tokens.Scopes)
	suite.NotEmpty(tokens.AccessToken)
	suite.NotEmpty(tokens.IDToken)

	token, claims, err := suite.jwtService.VerifyJWT(tokens.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(constants.JWTTypeAccessToken, token.Header[jwt.HeaderType])
	suite.Equal("1891239", claims[constants.ClaimSubject])
	suite.Equal("client", claims[constants.ClaimClientID])
	suite.Equal("openid profile", claims[constants.ClaimScope])
	suite.Equal([]interface{}{"client"}, claims[constants.ClaimAudience])
	suite.Equal([]interface{}{"STUDENT"}, claims[constants.ClaimRoles])
	suite.NotEmpty(claims[constants.ClaimJWTID])
	exp, err := claims.GetExpirationTime()
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(time.Hour).Unix(), exp.Unix())

	token, claims, err = suite.jwtService.VerifyJWT(tokens.IDToken)
	suite.Require().NoError(err)
	suite.Equal(constants.JWTTypeIDToken, token.Header[jwt.HeaderType])
	suite.Equal("1891239", claims[constants.ClaimSubject])
	suite.Equal("client", claims[constants.ClaimAuthorizedParty])
	suite.Equal("n-0S6_WzA2Mj", claims["nonce"])
	suite.Equal(float64(testGrant().AuthTime.Unix()), claims["auth_time"])
	suite.NotContains(claims, constants.ClaimScope)
	exp, err = claims.GetExpirationTime()
	suite.Require().NoError(err)
	suite.Equal(suite.now.Add(30*time.Minute).Unix(), exp.Unix())
}

func (suite *TokenIssuerTestSuite) TestIssueWithoutOpenIDScope() {
	tokens, err := suite.issuer.Issue(testGrant("profile"))
	suite.Require().NoError(err)
	suite.NotEmpty(tokens.AccessToken)
	suite.Empty(tokens.IDToken)
}

func (suite *TokenIssuerTestSuite) TestIssueTokensAreUnique() {
	first, err := suite.issuer.Issue(testGrant("openid"))
	suite.Require().NoError(err)
	second, err := suite.issuer.Issue(testGrant("openid"))
	suite.Require().NoError(err)
	suite.NotEqual(first.AccessToken, second.AccessToken)
	suite.NotEqual(first.IDToken, second.IDToken)
}

func (suite *TokenIssuerTestSuite) TestIssueInvalidGrant() {
	_, err := suite.issuer.Issue(nil)
	suite.Error(err)

	grant := testGrant("openid")
	grant.Subject = ""
	_, err = suite.issuer.Issue(grant)
	suite.Error(err)

	grant = testGrant("openid")
	grant.ClientID = ""
	_, err = suite.issuer.Issue(grant)
	suite.Error(err)
}

func (suite *TokenIssuerTestSuite) TestIssueAccessTokenSigningFailure() {
	jwtMock := jwtmock.NewJWTServiceInterfaceMock(suite.T())
	jwtMock.On("GenerateJWT", mock.Anything, constants.JWTTypeAccessToken).Return("", errors.New("no key")).Once()
	issuer := NewTokenIssuer(jwtMock, testIssuer, time.Hour, time.Hour)

	tokens, err := issuer.Issue(testGrant("openid"))
	suite.ErrorContains(err, "no key")
	suite.Nil(tokens)
}

func (suite *TokenIssuerTestSuite) TestIssueIDTokenSigningFailure() {
	jwtMock := jwtmock.NewJWTServiceInterfaceMock(suite.T())
	jwtMock.On("GenerateJWT", mock.AnythingOfType("*issuer.AccessTokenClaims"), constants.JWTTypeAccessToken).
		Return("access", nil).Once()
	jwtMock.On("GenerateJWT", mock.AnythingOfType("*issuer.IDTokenClaims"), constants.JWTTypeIDToken).
		Return("", errors.New("signing failed")).Once()
	issuer := NewTokenIssuer(jwtMock, testIssuer, time.Hour, time.Hour)

	tokens, err := issuer.Issue(testGrant("openid"))
	suite.ErrorContains(err, "signing failed")
	suite.Nil(tokens)
}
