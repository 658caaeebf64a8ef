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

// Package utils provides utility functions for HTTP operations.
package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/hansung/authserver/internal/system/constants"
	"github.com/hansung/authserver/internal/system/log"
)

// ErrNoBasicAuthHeader is returned when the request carries no Basic authorization header.
var ErrNoBasicAuthHeader = errors.New("invalid authorization header")

// ExtractBasicAuthCredentials extracts the basic authentication credentials from the request header.
// The user id and password are form-urlencoded before being base64 encoded by OAuth clients,
// so both parts are unescaped.
func ExtractBasicAuthCredentials(r *http.Request) (string, string, error) {
	authHeader := r.Header.Get(constants.AuthorizationHeaderName)
	if !strings.HasPrefix(authHeader, "Basic ") {
		return "", "", ErrNoBasicAuthHeader
	}

	// Decode the base64 encoded credentials.
	encodedCredentials := strings.TrimPrefix(authHeader, "Basic ")
	decodedCredentials, err := base64.StdEncoding.DecodeString(encodedCredentials)
	if err != nil {
		return "", "", errors.New("failed to decode authorization header")
	}

	credentials := strings.SplitN(string(decodedCredentials), ":", 2)
	if len(credentials) != 2 {
		return "", "", errors.New("invalid authorization header format")
	}

	username, err := url.QueryUnescape(credentials[0])
	if err != nil {
		username = credentials[0]
	}
	password, err := url.QueryUnescape(credentials[1])
	if err != nil {
		password = credentials[1]
	}

	return username, password, nil
}

// WriteJSONError writes a JSON error response with the given details.
func WriteJSONError(w http.ResponseWriter, code, desc string, statusCode int, respHeaders []map[string]string) {
	logger := log.GetLogger()
	logger.Debug("Error in HTTP response", log.String("error", code), log.String("description", desc),
		log.Int("status", statusCode))

	// Set the response headers.
	for _, header := range respHeaders {
		for key, value := range header {
			w.Header().Set(key, value)
		}
	}
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)

	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(map[string]string{
		"error":             code,
		"error_description": desc,
	})
	if err != nil {
		logger.Error("Failed to write JSON error response", log.Error(err))
		return
	}
}

// WriteJSON writes the given value as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, body any, respHeaders []map[string]string) {
	for _, header := range respHeaders {
		for key, value := range header {
			w.Header().Set(key, value)
		}
	}
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.GetLogger().Error("Failed to write JSON response", log.Error(err))
	}
}

// ParseURL parses the given URL string and returns a URL object.
func ParseURL(urlStr string) (*url.URL, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}
	return parsedURL, nil
}

// GetURIWithQueryParams merges the given query parameters into the URI, keeping any query it already has.
// Empty values are skipped.
func GetURIWithQueryParams(uri string, queryParams map[string]string) (string, error) {
	parsedURL, err := ParseURL(uri)
	if err != nil {
		return "", err
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", errors.New("uri must be absolute")
	}

	query := parsedURL.Query()
	for key, value := range queryParams {
		if value == "" {
			continue
		}
		query.Set(key, value)
	}
	parsedURL.RawQuery = query.Encode()
	parsedURL.Fragment = ""

	return parsedURL.String(), nil
}

// GetClientIP returns the remote address of the request without the port.
func GetClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
