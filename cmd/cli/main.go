/* main.go
 * The operator command line for managing matches, multipliers and scores directly against the store
 */

package main

import (
	"context"
	"fmt"
	"os"

	"pickems-tracker/api/api"
	"pickems-tracker/api/metrics"
	"pickems-tracker/api/store"
	"pickems-tracker/config"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// storeFlags maps each persistent flag onto the environment variable it overrides
var storeFlags = map[string]string{
	"driver":      "STORE_DRIVER",
	"sqlite-path": "SQLITE_PATH",
	"mongo-uri":   "MONGO_URI",
	"mongo-db":    "MONGO_DATABASE",
}

// openFunc returns a ready API and a function releasing it
type openFunc func(cmd *cobra.Command) (*api.API, func(), error)

// openFromFlags builds the store from the environment, with any persistent flag the user set taking precedence
func openFromFlags(cmd *cobra.Command) (*api.API, func(), error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	cfg, err := config.FromEnv(func(key string) (string, bool) {
		switch key {
		case "ENABLE_BOT", "ENABLE_WEB":
			return "false", true
		}
		for flag, env := range storeFlags {
			if env == key && cmd.Flags().Changed(flag) {
				return cmd.Flags().Lookup(flag).Value.String(), true
			}
		}
		return os.LookupEnv(key)
	})
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	a, err := api.NewAPI(s, metrics.NewService(prometheus.NewRegistry()))
	if err != nil {
		s.Close(ctx)
		return nil, nil, err
	}
	return a, func() {
		if err := a.Close(context.Background()); err != nil {
			log.Error("Failed to close store", "error", err)
		}
	}, nil
}

func newRootCmd(open openFunc) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pickems-cli",
		Short: "A CLI to administer the pick'ems tracker",
		Long: `A command-line interface for operators of the pick'ems tracker. It works directly
against the configured store, so it can seed matches and stage multipliers before the
bot is started and fix results afterwards.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("driver", config.DriverSQLite, "Store backend, sqlite or mongo (overrides STORE_DRIVER)")
	flags.String("sqlite-path", "pickems.db", "Path of the sqlite database (overrides SQLITE_PATH)")
	flags.String("mongo-uri", "", "MongoDB connection string (overrides MONGO_URI)")
	flags.String("mongo-db", "pickems", "MongoDB database name (overrides MONGO_DATABASE)")

	addCommands(rootCmd, open)
	return rootCmd
}

func main() {
	if err := newRootCmd(openFromFlags).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}
