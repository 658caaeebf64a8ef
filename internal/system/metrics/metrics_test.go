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

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MetricsManagerTestSuite struct {
	suite.Suite
	mm *MetricsManager
}

func TestMetricsManagerSuite(t *testing.T) {
	suite.Run(t, new(MetricsManagerTestSuite))
}

func (suite *MetricsManagerTestSuite) SetupTest() {
	suite.mm = NewMetricsManager()
}

func (suite *MetricsManagerTestSuite) scrape() string {
	rec := httptest.NewRecorder()
	suite.mm.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(suite.T(), err)
	return string(body)
}

func (suite *MetricsManagerTestSuite) TestRecordedMetricsAreExposed() {
	suite.mm.RecordAuthorizationCodeIssued()
	suite.mm.RecordAuthorizationCodeIssued()
	suite.mm.RecordTokenRequest(ResultSuccess)
	suite.mm.RecordTokenRequest(ResultFailure)
	suite.mm.RecordTokenRequest(ResultFailure)
	suite.mm.RecordIntrospection(true)
	suite.mm.RecordIntrospection(false)
	suite.mm.RecordSweep(3)
	suite.mm.ObserveHTTPRequest("POST /oauth2/token", 20*time.Millisecond)

	body := suite.scrape()

	assert.Contains(suite.T(), body, "oauth_authorization_codes_issued_total 2")
	assert.Contains(suite.T(), body, `oauth_token_requests_total{result="success"} 1`)
	assert.Contains(suite.T(), body, `oauth_token_requests_total{result="failure"} 2`)
	assert.Contains(suite.T(), body, `oauth_introspections_total{active="true"} 1`)
	assert.Contains(suite.T(), body, `oauth_introspections_total{active="false"} 1`)
	assert.Contains(suite.T(), body, "oauth_authorization_code_sweeps_total 1")
	assert.Contains(suite.T(), body, "oauth_authorization_codes_swept_total 3")
	assert.Contains(suite.T(), body, `http_request_duration_seconds_count{route="POST /oauth2/token"} 1`)
	assert.Contains(suite.T(), body, "go_goroutines")
}

func (suite *MetricsManagerTestSuite) TestNilManagerIsSafe() {
	var mm *MetricsManager
	assert.NotPanics(suite.T(), func() {
		mm.RecordAuthorizationCodeIssued()
		mm.RecordTokenRequest(ResultSuccess)
		mm.RecordIntrospection(true)
		mm.RecordSweep(1)
		mm.ObserveHTTPRequest("GET /health/liveness", time.Millisecond)
	})
}
