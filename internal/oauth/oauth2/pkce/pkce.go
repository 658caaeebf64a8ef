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

// Package pkce provides PKCE (Proof Key for Code Exchange) validation utilities.
package pkce

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"github.com/hansung/authserver/internal/oauth/oauth2/constants"
	"github.com/hansung/authserver/internal/system/utils"
)

const (
	minVerifierLength = 43
	maxVerifierLength = 128
	s256ChallengeLen  = 43
	verifierEntropy   = 32
)

// PKCE validation errors.
var (
	ErrInvalidCodeVerifier    = errors.New("invalid code verifier")
	ErrInvalidCodeChallenge   = errors.New("invalid code challenge")
	ErrInvalidChallengeMethod = errors.New("invalid code challenge method")
)

// isValidASCIIUnreserved validates that a character is in the unreserved set.
func isValidASCIIUnreserved(c byte) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// isValidBase64URLChar validates that a character is in the base64url alphabet.
func isValidBase64URLChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}

func isUnreservedString(value string, minLen, maxLen int) bool {
	if len(value) < minLen || len(value) > maxLen {
		return false
	}
	for i := 0; i < len(value); i++ {
		if !isValidASCIIUnreserved(value[i]) {
			return false
		}
	}
	return true
}

// IsSupportedMethod reports whether the challenge method is accepted. plain is accepted only when allowed.
func IsSupportedMethod(method string, allowPlain bool) bool {
	switch method {
	case constants.CodeChallengeMethodS256:
		return true
	case constants.CodeChallengeMethodPlain:
		return allowPlain
	default:
		return false
	}
}

// Verify checks the code verifier against the challenge stored with the authorization code.
// Malformed input yields false.
func Verify(codeVerifier, storedChallenge, method string) bool {
	if !isUnreservedString(codeVerifier, minVerifierLength, maxVerifierLength) || storedChallenge == "" {
		return false
	}

	var expected string
	switch method {
	case constants.CodeChallengeMethodS256:
		expected = s256(codeVerifier)
	case constants.CodeChallengeMethodPlain:
		expected = codeVerifier
	default:
		return false
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(storedChallenge)) == 1
}

// ValidateCodeChallenge validates the format of a code challenge presented at the authorization endpoint.
func ValidateCodeChallenge(codeChallenge, codeChallengeMethod string) error {
	switch codeChallengeMethod {
	case constants.CodeChallengeMethodS256:
		if len(codeChallenge) != s256ChallengeLen {
			return ErrInvalidCodeChallenge
		}
		for i := 0; i < len(codeChallenge); i++ {
			if !isValidBase64URLChar(codeChallenge[i]) {
				return ErrInvalidCodeChallenge
			}
		}
		return nil
	case constants.CodeChallengeMethodPlain:
		if !isUnreservedString(codeChallenge, minVerifierLength, maxVerifierLength) {
			return ErrInvalidCodeChallenge
		}
		return nil
	default:
		return ErrInvalidChallengeMethod
	}
}

// GenerateCodeVerifier returns a random code verifier carrying 256 bits of entropy.
func GenerateCodeVerifier() (string, error) {
	return utils.GenerateOpaqueValue(verifierEntropy)
}

// GenerateCodeChallenge generates a code challenge from a code verifier using the specified method.
func GenerateCodeChallenge(codeVerifier, method string) (string, error) {
	if !isUnreservedString(codeVerifier, minVerifierLength, maxVerifierLength) {
		return "", ErrInvalidCodeVerifier
	}

	switch method {
	case constants.CodeChallengeMethodPlain:
		return codeVerifier, nil
	case constants.CodeChallengeMethodS256:
		return s256(codeVerifier), nil
	default:
		return "", ErrInvalidChallengeMethod
	}
}

func s256(codeVerifier string) string {
	sum := sha256.Sum256([]byte(codeVerifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
