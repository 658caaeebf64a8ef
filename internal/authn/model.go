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

// Package authn resolves the resource owner on whose behalf an authorization request is made.
package authn

import (
	"context"
	"errors"
	"time"
)

// ErrUnauthenticated is returned when the request does not carry a verifiable subject.
var ErrUnauthenticated = errors.New("subject is not authenticated")

// AuthenticatedSubject is a verified resource owner identity.
type AuthenticatedSubject struct {
	ID       string
	Roles    []string
	AuthTime time.Time
}

type subjectContextKey struct{}

// WithSubject returns a copy of the context carrying the authenticated subject.
func WithSubject(ctx context.Context, subject *AuthenticatedSubject) context.Context {
	return context.WithValue(ctx, subjectContextKey{}, subject)
}

// SubjectFromContext returns the authenticated subject stored in the context, if any.
func SubjectFromContext(ctx context.Context) (*AuthenticatedSubject, bool) {
	subject, ok := ctx.Value(subjectContextKey{}).(*AuthenticatedSubject)
	if !ok || subject == nil || subject.ID == "" {
		return nil, false
	}
	return subject, true
}
