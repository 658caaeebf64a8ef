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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CORSMiddlewareTestSuite struct {
	suite.Suite
	opts CORSOptions
}

func TestCORSMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(CORSMiddlewareTestSuite))
}

func (suite *CORSMiddlewareTestSuite) SetupTest() {
	suite.opts = CORSOptions{
		AllowedOrigins:   []string{"http://localhost:8070", "https://test.com"},
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (suite *CORSMiddlewareTestSuite) TestWithCORS_ValidOrigin() {
	pattern, wrappedHandler := WithCORS("POST /oauth2/token", okHandler, suite.opts)
	assert.Equal(suite.T(), "POST /oauth2/token", pattern)

	req := httptest.NewRequest(http.MethodPost, "/oauth2/token", nil)
	req.Header.Set("Origin", "http://localhost:8070")
	w := httptest.NewRecorder()

	wrappedHandler(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "http://localhost:8070", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(suite.T(), "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(suite.T(), "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(suite.T(), "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(suite.T(), "OK", w.Body.String())
}

func (suite *CORSMiddlewareTestSuite) TestWithCORS_InvalidOrigin() {
	_, wrappedHandler := WithCORS("POST /oauth2/token", okHandler, suite.opts)

	req := httptest.NewRequest(http.MethodPost, "/oauth2/token", nil)
	req.Header.Set("Origin", "https://malicious.com")
	w := httptest.NewRecorder()

	wrappedHandler(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(suite.T(), w.Header().Get("Access-Control-Allow-Methods"))
}

func (suite *CORSMiddlewareTestSuite) TestWithCORS_NoOrigin() {
	_, wrappedHandler := WithCORS("POST /oauth2/token", okHandler, suite.opts)

	req := httptest.NewRequest(http.MethodPost, "/oauth2/token", nil)
	w := httptest.NewRecorder()

	wrappedHandler(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), w.Header().Get("Access-Control-Allow-Origin"))
}
