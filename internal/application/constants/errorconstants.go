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

// Package constants defines the constants used by the application module.
package constants

import "github.com/hansung/authserver/internal/system/error/serviceerror"

// Client errors for application operations.
var (
	// ErrorApplicationNotFound is the error returned when an application is not found.
	ErrorApplicationNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APP-1001",
		Error:            "Application not found",
		ErrorDescription: "The requested application could not be found",
	}
	// ErrorInvalidClientID is the error returned when an invalid client ID is provided.
	ErrorInvalidClientID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APP-1003",
		Error:            "Invalid client ID",
		ErrorDescription: "The provided client ID is invalid or empty",
	}
	// ErrorInvalidClientCredentials is the error returned when client authentication fails.
	ErrorInvalidClientCredentials = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "APP-1005",
		Error:            "Invalid client credentials",
		ErrorDescription: "The client could not be authenticated with the provided credentials",
	}
)
