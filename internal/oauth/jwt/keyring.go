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

// Package jwt provides the signing keys of the server and the signing and verification of JWTs.
package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// PublicKey is a verification key together with its key id.
type PublicKey struct {
	Kid string
	Key *rsa.PublicKey
}

type signingKey struct {
	kid       string
	key       *rsa.PrivateKey
	retiredAt time.Time
}

// KeyRing holds the active signing key and the keys it replaced. A replaced key keeps verifying
// tokens until its grace period elapses so that rotation never invalidates tokens in flight.
type KeyRing struct {
	mu          sync.RWMutex
	active      *signingKey
	retired     map[string]*signingKey
	gracePeriod time.Duration
	now         func() time.Time
}

// NewKeyRing creates a key ring with the given active key.
func NewKeyRing(kid string, key *rsa.PrivateKey, gracePeriod time.Duration) (*KeyRing, error) {
	if key == nil {
		return nil, errors.New("signing key is required")
	}
	if kid == "" {
		kid = DeriveKeyID(&key.PublicKey)
	}

	return &KeyRing{
		active:      &signingKey{kid: kid, key: key},
		retired:     make(map[string]*signingKey),
		gracePeriod: gracePeriod,
		now:         time.Now,
	}, nil
}

// ActiveKey returns the key id and private key used to sign new tokens.
func (kr *KeyRing) ActiveKey() (string, *rsa.PrivateKey) {
	kr.mu.RLock()
	defer kr.mu.RUnlock()
	return kr.active.kid, kr.active.key
}

// Rotate makes the given key the active signing key. The previous key stays available for
// verification for the grace period.
func (kr *KeyRing) Rotate(kid string, key *rsa.PrivateKey) (string, error) {
	if key == nil {
		return "", errors.New("signing key is required")
	}
	if kid == "" {
		kid = DeriveKeyID(&key.PublicKey)
	}

	kr.mu.Lock()
	defer kr.mu.Unlock()

	if kid == kr.active.kid {
		return "", fmt.Errorf("key with ID %q is already active", kid)
	}
	if _, exists := kr.retired[kid]; exists {
		return "", fmt.Errorf("key with ID %q was already used", kid)
	}

	previous := kr.active
	previous.retiredAt = kr.now()
	kr.retired[previous.kid] = previous
	kr.active = &signingKey{kid: kid, key: key}

	return kid, nil
}

// VerificationKey returns the public key for the key id if it is the active key or a retired key
// still inside its grace period.
func (kr *KeyRing) VerificationKey(kid string) (*rsa.PublicKey, bool) {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	if kid == kr.active.kid {
		return &kr.active.key.PublicKey, true
	}
	if retired, ok := kr.retired[kid]; ok && kr.withinGrace(retired) {
		return &retired.key.PublicKey, true
	}
	return nil, false
}

// PublicKeys returns the active key followed by the retired keys still inside their grace period.
func (kr *KeyRing) PublicKeys() []PublicKey {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	keys := []PublicKey{{Kid: kr.active.kid, Key: &kr.active.key.PublicKey}}

	retired := make([]*signingKey, 0, len(kr.retired))
	for _, k := range kr.retired {
		if kr.withinGrace(k) {
			retired = append(retired, k)
		}
	}
	sort.Slice(retired, func(i, j int) bool {
		return retired[i].retiredAt.After(retired[j].retiredAt)
	})
	for _, k := range retired {
		keys = append(keys, PublicKey{Kid: k.kid, Key: &k.key.PublicKey})
	}
	return keys
}

// PruneRetired drops retired keys whose grace period has elapsed and returns how many were removed.
func (kr *KeyRing) PruneRetired() int {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	removed := 0
	for kid, k := range kr.retired {
		if !kr.withinGrace(k) {
			delete(kr.retired, kid)
			removed++
		}
	}
	return removed
}

// withinGrace must be called with the lock held.
func (kr *KeyRing) withinGrace(k *signingKey) bool {
	return kr.now().Before(k.retiredAt.Add(kr.gracePeriod))
}
