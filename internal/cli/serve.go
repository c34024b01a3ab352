package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/julianstephens/energyflow/internal/api"
	"github.com/julianstephens/energyflow/internal/config"
	"github.com/julianstephens/energyflow/internal/jobs"
	"github.com/julianstephens/energyflow/internal/lockfile"
	"github.com/julianstephens/energyflow/internal/logger"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Overrides server.addr in the app config."`
}

func (cmd *ServeCmd) Run(ctx *Context) error {
	cfg := config.Default()
	if ctx.Config != nil {
		cfg = ctx.Config.Get()
	}
	addr := cfg.Server.Addr
	if cmd.Addr != "" {
		addr = cmd.Addr
	}

	lockPath := serverLockPath(ctx)
	release, err := lockfile.Acquire(lockPath, addr)
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("Failed to remove server lockfile", "path", lockPath, "error", err)
		}
	}()

	ctx.PerformAutomaticBackup()

	svc := ctx.Service()
	limiter := api.NewLimiter(cfg.Rate(), cfg.Server.Burst)
	srv := api.NewServer(addr, api.NewRouter(svc, limiter), cfg.Shutdown())

	sched := jobs.New(svc.Location())
	if err := sched.SetBoardCleanup(cfg.CleanupSpec(), svc); err != nil {
		return fmt.Errorf("failed to schedule board cleanup: %w", err)
	}
	sched.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sched.Stop(stopCtx); err != nil {
			logger.Warn("Scheduled jobs did not stop cleanly", "error", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	g.Go(func() error { return srv.Run(gctx) })

	if ctx.Config != nil {
		updates := ctx.Config.Subscribe(1)
		defer ctx.Config.Unsubscribe(updates)

		g.Go(func() error {
			err := ctx.Config.Watch(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				// The server keeps running on the config it started with.
				logger.Warn("Config watch stopped", "error", err)
			}
			return nil
		})
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case next, ok := <-updates:
					if !ok {
						return nil
					}
					applyConfig(next, limiter, sched, svc, ctx.Debug)
				}
			}
		})
	}

	fmt.Printf("✓ Serving energyflow API on http://%s (lock %s)\n", addr, lockPath)
	if next := sched.Next(); !next.IsZero() {
		fmt.Printf("  Next board cleanup: %s\n", next.Format("2006-01-02 15:04"))
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("Server stopped.")
	return nil
}

// applyConfig applies the reloadable parts of cfg. The listen address needs a restart.
func applyConfig(cfg *config.Config, limiter *rate.Limiter, sched *jobs.Scheduler, board jobs.BoardClearer, forceDebug bool) {
	log := logger.Named("serve")
	api.SetLimit(limiter, cfg.Rate(), cfg.Server.Burst)
	if err := sched.SetBoardCleanup(cfg.CleanupSpec(), board); err != nil {
		log.Warn("Keeping previous board cleanup schedule", "error", err)
	}
	logger.SetDebug(forceDebug || cfg.Log.Debug)
	log.Info("Config reloaded", "rate_limit", cfg.Rate(), "burst", cfg.Server.Burst, "board_cleanup", cfg.CleanupSpec())
}
