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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hansung/authserver/internal/system/config"
	"github.com/hansung/authserver/internal/system/constants"
	"github.com/hansung/authserver/internal/system/database/client"
	"github.com/hansung/authserver/internal/system/database/model"
	"github.com/hansung/authserver/internal/system/log"
)

const pingTimeout = 5 * time.Second

// ErrDataSourceNotConfigured is returned when a database is requested that has no data source configured.
var ErrDataSourceNotConfigured = errors.New("data source is not configured")

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	runtime       *config.Runtime
	runtimeClient client.DBClientInterface
	runtimeMutex  sync.RWMutex
}

// NewDBProvider creates a provider for the data sources configured in the given runtime.
// Connections are opened lazily on the first GetDBClient call.
func NewDBProvider(runtime *config.Runtime) DBProviderInterface {
	return &DBProvider{
		runtime: runtime,
	}
}

// GetDBClient returns a database client based on the provided database name.
// Not required to close the returned client manually since it manages its own connection pool.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	switch dbName {
	case constants.RuntimeDBName:
		runtimeDBConfig := d.runtime.Config.Database.Runtime
		return d.getOrInitClient(&d.runtimeClient, &d.runtimeMutex, runtimeDBConfig)
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}
}

// getOrInitClient gets or initializes a DB client with locking.
func (d *DBProvider) getOrInitClient(
	clientPtr *client.DBClientInterface,
	mutex *sync.RWMutex,
	dataSource config.DataSource,
) (client.DBClientInterface, error) {
	mutex.RLock()
	if *clientPtr != nil {
		c := *clientPtr
		mutex.RUnlock()
		return c, nil
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	if *clientPtr != nil {
		return *clientPtr, nil
	}

	if err := d.initializeClient(clientPtr, dataSource); err != nil {
		return nil, err
	}

	return *clientPtr, nil
}

// initializeClient initializes a database client and assigns it to the provided pointer.
func (d *DBProvider) initializeClient(clientPtr *client.DBClientInterface, dataSource config.DataSource) error {
	if !dataSource.IsConfigured() {
		return ErrDataSourceNotConfigured
	}

	dbConfig, err := d.getDBConfig(dataSource)
	if err != nil {
		return err
	}
	dbName := dataSource.Name

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}

	if dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dataSource.MaxOpenConns)
	}
	if dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dataSource.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return fmt.Errorf("failed to ping database %s: %w (close error: %w)", dbName, err, closeErr)
		}
		return fmt.Errorf("failed to ping database %s: %w", dbName, err)
	}

	// SQLite only allows one writer at a time; wait for the lock instead of failing fast.
	if dbConfig.driverName == model.DBTypeSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				return fmt.Errorf("failed to configure %s: %w (close error: %w)", dbName, err, closeErr)
			}
			return fmt.Errorf("failed to configure %s: %w", dbName, err)
		}
	}

	*clientPtr = client.NewDBClient(model.NewDB(db), dbConfig.driverName)
	return nil
}

// getDBConfig returns the database configuration based on the provided data source.
func (d *DBProvider) getDBConfig(dataSource config.DataSource) (dbConfig, error) {
	var dbConfig dbConfig

	switch dataSource.Type {
	case model.DBTypePostgres:
		dbConfig.driverName = model.DBTypePostgres
		dbConfig.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
			dataSource.Name, dataSource.SSLMode)
	case model.DBTypeSQLite:
		dbConfig.driverName = model.DBTypeSQLite
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		dbConfig.dsn = fmt.Sprintf("%s%s", d.runtime.ResolvePath(dataSource.Path), options)
	default:
		return dbConfig, fmt.Errorf("unsupported data source type: %s", dataSource.Type)
	}

	return dbConfig, nil
}

// Close closes the database connections.
func (d *DBProvider) Close() error {
	return d.closeClient(&d.runtimeClient, &d.runtimeMutex, constants.RuntimeDBName)
}

// closeClient is a helper to close a DB client with locking.
func (d *DBProvider) closeClient(clientPtr *client.DBClientInterface, mutex *sync.RWMutex, clientName string) error {
	mutex.Lock()
	defer mutex.Unlock()
	if *clientPtr != nil {
		if err := (*clientPtr).Close(); err != nil {
			return fmt.Errorf("failed to close %s client: %w", clientName, err)
		}
		log.GetLogger().Debug("Database connection closed", log.String("database", clientName))
		*clientPtr = nil
	}
	return nil
}
