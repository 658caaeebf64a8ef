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

// Package hash provides generic hashing utilities for sensitive data.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// dummySecretHash is compared against when no stored hash exists, so lookups of unknown
// identities take as long as lookups of known ones.
var dummySecretHash = mustHash("dummy-secret-for-constant-time-comparison")

// Hash returns a SHA-256 hash of the input byte array.
func Hash(input []byte) string {
	h := sha256.Sum256(input)
	return hex.EncodeToString(h[:])
}

// HashString returns a SHA-256 hash of the input string.
func HashString(input string) string {
	return Hash([]byte(input))
}

// HashSecret returns the bcrypt hash of a secret such as a client secret or user password.
func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// IsSecretHash reports whether the value already is a bcrypt hash.
func IsSecretHash(value string) bool {
	if !strings.HasPrefix(value, "$2a$") && !strings.HasPrefix(value, "$2b$") && !strings.HasPrefix(value, "$2y$") {
		return false
	}
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}

// CompareSecret reports whether the secret matches the bcrypt hash. An empty hash is compared
// against a dummy hash and always reports false.
func CompareSecret(hashedSecret, secret string) bool {
	if hashedSecret == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummySecretHash), []byte(secret))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(secret)) == nil
}

func mustHash(secret string) string {
	hashed, err := HashSecret(secret)
	if err != nil {
		panic("failed to create dummy secret hash: " + err.Error())
	}
	return hashed
}
