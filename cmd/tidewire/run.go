package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tidewire/tidewire/internal/config"
	"github.com/tidewire/tidewire/internal/handlers"
	"github.com/tidewire/tidewire/internal/server"
	"github.com/tidewire/tidewire/internal/services"
	"github.com/tidewire/tidewire/internal/store"
	"github.com/tidewire/tidewire/internal/store/migrations"
	"github.com/tidewire/tidewire/pkg/timewheel"
)

func newRunCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the time wheel, the run journal and the status API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, flush, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			defer flush()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}
}

func run(ctx context.Context, cfg *config.Configuration) error {
	log := zap.S().Named("main")
	log.Infow("starting tidewire", "version", version, "wheel", cfg.TimeWheel.Name, "workers", len(cfg.TimeWheel.Workers))

	db, err := store.NewDB(cfg.Store.Path)
	if err != nil {
		return err
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to migrate run journal: %w", err)
	}
	s := store.NewStore(db)
	defer s.Close()

	mgr, err := services.NewExecutorManager(cfg.Executors)
	if err != nil {
		return err
	}

	var journal *services.Journal
	opts := []timewheel.Option{timewheel.WithName(cfg.TimeWheel.Name)}
	if cfg.Journal.Enabled {
		ex, err := mgr.Get(cfg.Journal.Executor)
		if err != nil {
			mgr.Close()
			return err
		}
		journal = services.NewJournal(s.Runs(), ex)
		opts = append(opts, timewheel.WithRunObserver(journal.Observe))
	}

	rt := services.NewRuntime(mgr, opts...)
	defer rt.Stop()

	workers, err := services.BuildWorkers(cfg.TimeWheel.Workers, journal, cfg.Journal.Retention)
	if err != nil {
		return err
	}
	if err := rt.Start(cfg.TimeWheel.Executor, workers); err != nil {
		return err
	}

	if !cfg.Server.Enabled {
		<-ctx.Done()
		log.Infow("shutting down")
		return nil
	}

	h := handlers.New(rt, journal)
	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		handlers.RegisterHandlers(router, h)
	})
	if err != nil {
		return err
	}
	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Infow("shutting down")

	// Start returns as soon as the listener closes; wait for in-flight
	// requests before the runtime and the store go away.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warnw("http server did not stop cleanly", "error", err)
	}
	return nil
}
