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

package authn

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hansung/authserver/internal/system/config"
	"github.com/hansung/authserver/internal/system/crypto/hash"
	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/utils"
)

// SubjectProviderInterface resolves the authenticated subject of an HTTP request.
type SubjectProviderInterface interface {
	Authenticate(r *http.Request) (*AuthenticatedSubject, error)
}

type userRecord struct {
	passwordHash string
	roles        []string
}

// BasicSubjectProvider accepts a subject already placed on the request context by an upstream
// authenticator, and otherwise verifies HTTP Basic credentials against the configured user store.
type BasicSubjectProvider struct {
	users  map[string]userRecord
	now    func() time.Time
	logger *log.Logger
}

// NewBasicSubjectProvider creates a provider backed by the configured users. Plain text passwords
// are hashed with bcrypt at load time.
func NewBasicSubjectProvider(users []config.User) (*BasicSubjectProvider, error) {
	records := make(map[string]userRecord, len(users))
	for _, user := range users {
		if user.Username == "" {
			return nil, fmt.Errorf("username is required")
		}
		if _, exists := records[user.Username]; exists {
			return nil, fmt.Errorf("duplicate username %q", user.Username)
		}

		passwordHash := user.Password
		if !hash.IsSecretHash(passwordHash) {
			hashed, err := hash.HashSecret(user.Password)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password of user %q: %w", user.Username, err)
			}
			passwordHash = hashed
		}
		records[user.Username] = userRecord{
			passwordHash: passwordHash,
			roles:        append([]string(nil), user.Roles...),
		}
	}

	return &BasicSubjectProvider{
		users:  records,
		now:    time.Now,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "BasicSubjectProvider")),
	}, nil
}

// Authenticate returns the subject of the request or ErrUnauthenticated.
func (p *BasicSubjectProvider) Authenticate(r *http.Request) (*AuthenticatedSubject, error) {
	if subject, ok := SubjectFromContext(r.Context()); ok {
		return subject, nil
	}

	username, password, err := utils.ExtractBasicAuthCredentials(r)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	record, ok := p.users[username]
	if !ok {
		hash.CompareSecret("", password)
		p.logger.Debug("Unknown user", log.String(log.LoggerKeySubject, log.MaskString(username)))
		return nil, ErrUnauthenticated
	}
	if !hash.CompareSecret(record.passwordHash, password) {
		p.logger.Debug("Invalid user credentials", log.String(log.LoggerKeySubject, log.MaskString(username)))
		return nil, ErrUnauthenticated
	}

	return &AuthenticatedSubject{
		ID:       username,
		Roles:    append([]string(nil), record.roles...),
		AuthTime: p.now(),
	}, nil
}
