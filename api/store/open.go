/* open.go
 * Contains the constructor that selects a storage backend from configuration
 */

package store

import (
	"context"
	"fmt"

	"pickems-tracker/config"

	"github.com/charmbracelet/log"
)

// Open connects to the backend named by cfg.Driver and prepares its schema.
// Preconditions: Receives a validated StoreConfig
// Postconditions: Returns a ready store the caller must Close, or an error if the backend is unknown or unreachable
func Open(ctx context.Context, cfg config.StoreConfig) (Interface, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		s, err := NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("Opened sqlite store", "path", cfg.SQLitePath)
		return s, nil
	case config.DriverMongo:
		s, err := NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		log.Info("Opened mongo store", "database", cfg.MongoDatabase)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
