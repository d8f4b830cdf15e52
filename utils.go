/* utils.go
 * Utility functions used across the application
 */

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger configures the default logger used by every package
// Preconditions: Receives a level understood by log.ParseLevel and a format of text or json
// Postconditions: Updates the default logger, or returns an error and leaves it unchanged
func setupLogger(level string, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	var formatter log.Formatter
	switch format {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	default:
		return fmt.Errorf("invalid log format %q", format)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
	})
	log.SetDefault(logger)
	return nil
}
