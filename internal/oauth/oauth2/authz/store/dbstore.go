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

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hansung/authserver/internal/oauth/oauth2/authz/constants"
	"github.com/hansung/authserver/internal/oauth/oauth2/authz/model"
	serverconst "github.com/hansung/authserver/internal/system/constants"
	"github.com/hansung/authserver/internal/system/crypto/hash"
	"github.com/hansung/authserver/internal/system/database/client"
	"github.com/hansung/authserver/internal/system/database/provider"
	"github.com/hansung/authserver/internal/system/log"
	"github.com/hansung/authserver/internal/system/utils"
)

// DBAuthorizationCodeStore persists authorization codes in the runtime database. Only the SHA-256
// hash of a code value is stored.
type DBAuthorizationCodeStore struct {
	DBProvider provider.DBProviderInterface
	validity   time.Duration
	now        func() time.Time
}

// NewDBAuthorizationCodeStore creates a new instance of DBAuthorizationCodeStore.
func NewDBAuthorizationCodeStore(dbProvider provider.DBProviderInterface,
	validity time.Duration) AuthorizationCodeStoreInterface {
	return newDBAuthorizationCodeStore(dbProvider, validity, time.Now)
}

func newDBAuthorizationCodeStore(dbProvider provider.DBProviderInterface, validity time.Duration,
	now func() time.Time) *DBAuthorizationCodeStore {
	return &DBAuthorizationCodeStore{
		DBProvider: dbProvider,
		validity:   validity,
		now:        now,
	}
}

// Issue inserts a new authorization code and its scopes in a single transaction.
func (s *DBAuthorizationCodeStore) Issue(ctx context.Context,
	request model.AuthorizationRequest) (model.AuthorizationCode, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	authzCode, err := newAuthorizationCode(request, s.now(), s.validity)
	if err != nil {
		return model.AuthorizationCode{}, err
	}

	dbClient, err := s.getDBClient()
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return model.AuthorizationCode{}, err
	}

	tx, err := dbClient.BeginTx(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", log.Error(err))
		return model.AuthorizationCode{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	req := authzCode.Request
	_, err = tx.Exec(ctx, constants.QueryInsertAuthorizationCode, authzCode.CodeID, hash.HashString(authzCode.Code),
		req.ClientID, req.RedirectURI, req.Subject, utils.JoinSpaceDelimited(req.SubjectRoles), req.CodeChallenge,
		req.CodeChallengeMethod, req.Nonce, req.AuthTime.UnixMilli(), authzCode.TimeCreated.UnixMilli(),
		authzCode.ExpiryTime.UnixMilli(), authzCode.State)
	if err != nil {
		logger.Error("Failed to insert authorization code", log.Error(err))
		return model.AuthorizationCode{}, rollback(tx.Rollback, logger,
			fmt.Errorf("failed to insert authorization code: %w", err))
	}

	_, err = tx.Exec(ctx, constants.QueryInsertAuthorizationCodeScopes, authzCode.CodeID,
		utils.JoinSpaceDelimited(req.Scopes))
	if err != nil {
		logger.Error("Failed to insert authorization code scopes", log.Error(err))
		return model.AuthorizationCode{}, rollback(tx.Rollback, logger,
			fmt.Errorf("failed to insert authorization code scopes: %w", err))
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit transaction", log.Error(err))
		return model.AuthorizationCode{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return authzCode, nil
}

// Consume deactivates the code with a conditional update. The caller whose update affects the row
// is the single winner and reads the bound request back.
func (s *DBAuthorizationCodeStore) Consume(ctx context.Context, code string) (*model.AuthorizationRequest, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.getDBClient()
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, err
	}

	hashedCode := hash.HashString(code)
	affected, err := dbClient.Execute(ctx, constants.QueryConsumeAuthorizationCode, constants.AuthCodeStateInactive,
		hashedCode, constants.AuthCodeStateActive, s.now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("error while consuming authorization code: %w", err)
	}

	if affected != 1 {
		return nil, s.classifyFailure(ctx, dbClient, hashedCode)
	}

	authzCode, err := s.getAuthorizationCode(ctx, dbClient, hashedCode)
	if err != nil {
		return nil, err
	}
	return &authzCode.Request, nil
}

// DeleteExpired removes expired codes and their scopes.
func (s *DBAuthorizationCodeStore) DeleteExpired(ctx context.Context) (int, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.getDBClient()
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return 0, err
	}

	tx, err := dbClient.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	cutoff := s.now().UnixMilli()
	if _, err := tx.Exec(ctx, constants.QueryDeleteExpiredAuthorizationCodeScopes, cutoff); err != nil {
		return 0, rollback(tx.Rollback, logger, fmt.Errorf("failed to delete expired code scopes: %w", err))
	}

	result, err := tx.Exec(ctx, constants.QueryDeleteExpiredAuthorizationCodes, cutoff)
	if err != nil {
		return 0, rollback(tx.Rollback, logger, fmt.Errorf("failed to delete expired codes: %w", err))
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, rollback(tx.Rollback, logger, fmt.Errorf("failed to count deleted codes: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(removed), nil
}

func (s *DBAuthorizationCodeStore) getDBClient() (client.DBClientInterface, error) {
	return s.DBProvider.GetDBClient(serverconst.RuntimeDBName)
}

// classifyFailure explains why a conditional update matched no row. The distinction is for logs only.
func (s *DBAuthorizationCodeStore) classifyFailure(ctx context.Context, dbClient client.DBClientInterface,
	hashedCode string) error {
	authzCode, err := s.getAuthorizationCode(ctx, dbClient, hashedCode)
	if err != nil {
		return err
	}
	if authzCode.State != constants.AuthCodeStateActive {
		return constants.ErrAuthorizationCodeConsumed
	}
	return constants.ErrAuthorizationCodeExpired
}

func (s *DBAuthorizationCodeStore) getAuthorizationCode(ctx context.Context, dbClient client.DBClientInterface,
	hashedCode string) (model.AuthorizationCode, error) {
	results, err := dbClient.Query(ctx, constants.QueryGetAuthorizationCode, hashedCode)
	if err != nil {
		return model.AuthorizationCode{}, fmt.Errorf("error while retrieving authorization code: %w", err)
	}
	if len(results) == 0 {
		return model.AuthorizationCode{}, constants.ErrAuthorizationCodeNotFound
	}
	row := results[0]

	codeID, err := stringField(row, "code_id")
	if err != nil {
		return model.AuthorizationCode{}, err
	}

	authTime, err := int64Field(row, "auth_time")
	if err != nil {
		return model.AuthorizationCode{}, err
	}
	timeCreated, err := int64Field(row, "time_created")
	if err != nil {
		return model.AuthorizationCode{}, err
	}
	expiryTime, err := int64Field(row, "expiry_time")
	if err != nil {
		return model.AuthorizationCode{}, err
	}

	scopeResults, err := dbClient.Query(ctx, constants.QueryGetAuthorizationCodeScopes, codeID)
	if err != nil {
		return model.AuthorizationCode{}, fmt.Errorf("error while retrieving authorized scopes: %w", err)
	}
	scopes := ""
	if len(scopeResults) > 0 {
		scopes, _ = stringField(scopeResults[0], "scope")
	}

	clientID, _ := stringField(row, "consumer_key")
	redirectURI, _ := stringField(row, "callback_url")
	subject, _ := stringField(row, "authz_user")
	roles, _ := stringField(row, "user_roles")
	challenge, _ := stringField(row, "code_challenge")
	challengeMethod, _ := stringField(row, "code_challenge_method")
	nonce, _ := stringField(row, "nonce")
	state, _ := stringField(row, "state")

	return model.AuthorizationCode{
		CodeID: codeID,
		Request: model.AuthorizationRequest{
			ClientID:            clientID,
			RedirectURI:         redirectURI,
			Scopes:              utils.ParseSpaceDelimited(scopes),
			CodeChallenge:       challenge,
			CodeChallengeMethod: challengeMethod,
			Nonce:               nonce,
			Subject:             subject,
			SubjectRoles:        utils.ParseSpaceDelimited(roles),
			AuthTime:            time.UnixMilli(authTime),
		},
		TimeCreated: time.UnixMilli(timeCreated),
		ExpiryTime:  time.UnixMilli(expiryTime),
		State:       state,
	}, nil
}

func rollback(rollbackFn func() error, logger *log.Logger, err error) error {
	if rollbackErr := rollbackFn(); rollbackErr != nil {
		logger.Error("Failed to rollback transaction", log.Error(rollbackErr))
		return errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
	}
	return err
}

func stringField(row map[string]interface{}, column string) (string, error) {
	switch v := row[column].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected type %T for column %s", v, column)
	}
}

func int64Field(row map[string]interface{}, column string) (int64, error) {
	switch v := row[column].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected type %T for column %s", v, column)
	}
}
