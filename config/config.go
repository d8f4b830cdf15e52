/* config.go
 * Loads the application configuration from a .env file and the process environment
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
// Preconditions: None, every variable has a default apart from the credentials of the enabled components
// Postconditions: Returns the validated Config, or an error naming the first bad or missing variable
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from the given lookup function
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}

	var errs []error

	enableBot, err := ParseBool(get("ENABLE_BOT", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("ENABLE_BOT: %w", err))
	}
	enableWeb, err := ParseBool(get("ENABLE_WEB", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("ENABLE_WEB: %w", err))
	}
	refresh, err := time.ParseDuration(get("LEADERBOARD_REFRESH", "5m"))
	if err != nil || refresh < 0 {
		errs = append(errs, fmt.Errorf("LEADERBOARD_REFRESH: invalid duration %q", get("LEADERBOARD_REFRESH", "")))
	}
	rate, err := strconv.ParseFloat(get("COMMAND_RATE", "1"), 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("COMMAND_RATE: %w", err))
	}
	burst, err := strconv.Atoi(get("COMMAND_BURST", "3"))
	if err != nil {
		errs = append(errs, fmt.Errorf("COMMAND_BURST: %w", err))
	}

	cfg := Config{
		DiscordToken: get("DISCORD_TOKEN", ""),
		Admins:       splitList(get("ADMINS", "")),
		Store: StoreConfig{
			Driver:        strings.ToLower(get("STORE_DRIVER", DriverSQLite)),
			SQLitePath:    get("SQLITE_PATH", "pickems.db"),
			MongoURI:      get("MONGO_URI", ""),
			MongoDatabase: get("MONGO_DATABASE", "pickems"),
		},
		HTTPAddr:           get("HTTP_ADDR", ":8080"),
		LeaderboardRefresh: refresh,
		CommandRate:        rate,
		CommandBurst:       burst,
		LogLevel:           strings.ToLower(get("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(get("LOG_FORMAT", "text")),
		EnableBot:          enableBot,
		EnableWeb:          enableWeb,
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks that the enabled components have what they need
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo store")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %s or %s, got %q", DriverSQLite, DriverMongo, c.Store.Driver)
	}

	if c.EnableBot && c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required when the bot is enabled")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
