/* types.go
 * Contains the configuration structures loaded at startup
 */

package config

import "time"

// Config holds all configuration for the application
type Config struct {
	DiscordToken string
	Admins       []string
	Store        StoreConfig
	HTTPAddr     string

	// LeaderboardRefresh is how often scores are recomputed in the background. Zero disables the job
	LeaderboardRefresh time.Duration

	CommandRate  float64
	CommandBurst int

	LogLevel  string
	LogFormat string

	EnableBot bool
	EnableWeb bool
}

// StoreConfig selects and locates the persistence backend
type StoreConfig struct {
	Driver        string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
}

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)
