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

import (
	"path"
	"path/filepath"
)

// Runtime bundles the loaded configuration with the server home directory.
// It is created once at startup and passed to the components that need it.
type Runtime struct {
	ServerHome string
	Config     *Config
}

// NewRuntime creates a runtime for the given home directory and configuration.
func NewRuntime(serverHome string, cfg *Config) *Runtime {
	return &Runtime{
		ServerHome: serverHome,
		Config:     cfg,
	}
}

// ResolvePath resolves a configured path relative to the server home directory.
func (r *Runtime) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(path.Join(r.ServerHome, p))
}
