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

package config

// Server defaults.
const (
	DefaultHostname          = "localhost"
	DefaultPort              = 8081
	DefaultReadHeaderTimeout = 10
	DefaultWriteTimeout      = 10
	DefaultIdleTimeout       = 120
	DefaultShutdownTimeout   = 15
)

// Security defaults.
const (
	DefaultKeyRotationGracePeriod = 86400
)

// OAuth defaults. Validity periods are in seconds.
const (
	DefaultAuthorizationCodeValidity = 300
	DefaultCleanupInterval           = 60
	DefaultAccessTokenValidity       = 3600
	DefaultIDTokenValidity           = 3600
)

// Rate limiting defaults.
const (
	DefaultRateLimitRPS   = 20
	DefaultRateLimitBurst = 40
)

// Authorization code store types.
const (
	AuthorizationCodeStoreMemory   = "memory"
	AuthorizationCodeStoreDatabase = "database"
)
