/* main.go
 * The "main" method for running the tracker. Configuration is read from the environment (see config/config.go),
 * after which the discord bot, the JSON API and the leaderboard scheduler run until SIGINT or SIGTERM
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"pickems-tracker/api/api"
	"pickems-tracker/api/metrics"
	"pickems-tracker/api/store"
	"pickems-tracker/bot"
	"pickems-tracker/config"
	"pickems-tracker/scheduler"
	"pickems-tracker/web"

	"github.com/charmbracelet/log"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	if err := setupLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal("Invalid logger configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal("Failed to open store", "driver", cfg.Store.Driver, "error", err)
	}
	tracker, err := api.NewAPI(s, metrics.NewService())
	if err != nil {
		log.Fatal("Failed to initialize API", "error", err)
	}
	defer func() {
		log.Info("Closing store")
		if err := tracker.Close(context.Background()); err != nil {
			log.Error("Failed to close store", "error", err)
		}
	}()
	log.Info("Startup time recorded", "duration_ms", time.Since(startTime).Milliseconds())

	if err := run(ctx, cfg, tracker); err != nil {
		log.Error("Shutting down after component failure", "error", err)
		stop()
	}
	log.Info("Process shutting down")
}

// run starts every enabled component and blocks until ctx is cancelled or one of them fails
func run(ctx context.Context, cfg config.Config, tracker *api.API) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.LeaderboardRefresh > 0 {
		sched, err := scheduler.New(tracker, cfg.LeaderboardRefresh)
		if err != nil {
			return err
		}
		sched.Start(ctx)
		defer func() {
			if err := sched.Stop(); err != nil {
				log.Error("Failed to stop scheduler", "error", err)
			}
		}()
	}

	var components []func(context.Context) error
	if cfg.EnableWeb {
		webCfg := web.Config{Addr: cfg.HTTPAddr, API: tracker, MetricsHandler: metrics.NewMetricsHandler()}
		components = append(components, func(ctx context.Context) error { return web.Start(ctx, webCfg) })
	}
	if cfg.EnableBot {
		b, err := bot.NewBot(cfg.DiscordToken, tracker, cfg.Admins, bot.NewUserLimiter(cfg.CommandRate, cfg.CommandBurst))
		if err != nil {
			return err
		}
		components = append(components, b.Run)
	}
	if len(components) == 0 {
		return fmt.Errorf("nothing to run, enable the bot or the web server")
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(components))
	for _, component := range components {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := component(ctx); err != nil {
				errs <- err
				cancel()
			}
		}()
	}
	wg.Wait()
	close(errs)

	var all []error
	for err := range errs {
		all = append(all, err)
	}
	return errors.Join(all...)
}
