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

package jwt

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type KeyRingTestSuite struct {
	suite.Suite
	key1 *rsa.PrivateKey
	key2 *rsa.PrivateKey
	now  time.Time
}

func TestKeyRingSuite(t *testing.T) {
	suite.Run(t, new(KeyRingTestSuite))
}

func (suite *KeyRingTestSuite) SetupSuite() {
	var err error
	suite.key1, err = GenerateKey()
	require.NoError(suite.T(), err)
	suite.key2, err = GenerateKey()
	require.NoError(suite.T(), err)
}

func (suite *KeyRingTestSuite) newKeyRing() *KeyRing {
	kr, err := NewKeyRing("key-1", suite.key1, time.Hour)
	require.NoError(suite.T(), err)
	suite.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	kr.now = func() time.Time { return suite.now }
	return kr
}

func (suite *KeyRingTestSuite) TestActiveKey() {
	kr := suite.newKeyRing()
	kid, key := kr.ActiveKey()
	assert.Equal(suite.T(), "key-1", kid)
	assert.Same(suite.T(), suite.key1, key)
}

func (suite *KeyRingTestSuite) TestDerivedKeyID() {
	kr, err := NewKeyRing("", suite.key1, time.Hour)
	require.NoError(suite.T(), err)

	kid, _ := kr.ActiveKey()
	assert.Equal(suite.T(), DeriveKeyID(&suite.key1.PublicKey), kid)
	assert.NotEqual(suite.T(), DeriveKeyID(&suite.key2.PublicKey), kid)
	assert.Len(suite.T(), kid, 43)
}

func (suite *KeyRingTestSuite) TestRotateKeepsPreviousKeyWithinGrace() {
	kr := suite.newKeyRing()

	kid, err := kr.Rotate("key-2", suite.key2)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "key-2", kid)

	activeKid, _ := kr.ActiveKey()
	assert.Equal(suite.T(), "key-2", activeKid)

	pub, ok := kr.VerificationKey("key-1")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), &suite.key1.PublicKey, pub)

	keys := kr.PublicKeys()
	require.Len(suite.T(), keys, 2)
	assert.Equal(suite.T(), "key-2", keys[0].Kid)
	assert.Equal(suite.T(), "key-1", keys[1].Kid)

	suite.now = suite.now.Add(2 * time.Hour)

	_, ok = kr.VerificationKey("key-1")
	assert.False(suite.T(), ok)
	assert.Len(suite.T(), kr.PublicKeys(), 1)
	assert.Equal(suite.T(), 1, kr.PruneRetired())
	assert.Equal(suite.T(), 0, kr.PruneRetired())
}

func (suite *KeyRingTestSuite) TestRotateRejectsReusedKeyID() {
	kr := suite.newKeyRing()

	_, err := kr.Rotate("key-1", suite.key2)
	assert.Error(suite.T(), err)

	_, err = kr.Rotate("key-2", suite.key2)
	require.NoError(suite.T(), err)
	_, err = kr.Rotate("key-1", suite.key1)
	assert.Error(suite.T(), err)

	_, err = kr.Rotate("key-3", nil)
	assert.Error(suite.T(), err)
}

func (suite *KeyRingTestSuite) TestUnknownKey() {
	kr := suite.newKeyRing()
	_, ok := kr.VerificationKey("missing")
	assert.False(suite.T(), ok)
}

func (suite *KeyRingTestSuite) TestNewKeyRingRequiresKey() {
	_, err := NewKeyRing("kid", nil, time.Hour)
	assert.Error(suite.T(), err)
}

func (suite *KeyRingTestSuite) TestLoadPrivateKey() {
	dir := suite.T().TempDir()

	pkcs1 := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(suite.key1)})
	pkcs1Path := filepath.Join(dir, "pkcs1.key")
	require.NoError(suite.T(), os.WriteFile(pkcs1Path, pkcs1, 0o600))

	der, err := x509.MarshalPKCS8PrivateKey(suite.key2)
	require.NoError(suite.T(), err)
	pkcs8 := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	pkcs8Path := filepath.Join(dir, "pkcs8.key")
	require.NoError(suite.T(), os.WriteFile(pkcs8Path, pkcs8, 0o600))

	loaded1, err := LoadPrivateKey(pkcs1Path)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), suite.key1.Equal(loaded1))

	loaded2, err := LoadPrivateKey(pkcs8Path)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), suite.key2.Equal(loaded2))

	_, err = LoadPrivateKey(filepath.Join(dir, "missing.key"))
	assert.Error(suite.T(), err)
}

func (suite *KeyRingTestSuite) TestParsePrivateKeyErrors() {
	_, err := ParsePrivateKey([]byte("not pem"))
	assert.Error(suite.T(), err)

	cert := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{1, 2, 3}})
	_, err = ParsePrivateKey(cert)
	assert.Error(suite.T(), err)
}
