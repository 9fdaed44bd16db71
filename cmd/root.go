package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/apiclient"
	"github.com/brk3/streaks/internal/clock"
	"github.com/brk3/streaks/internal/config"
	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/internal/tracker"
)

var (
	cfg        *config.Config
	configPath string
	remote     bool
)

var rootCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Track daily habits and keep your streaks alive",
	Long: `
	Streaks keeps a short list of daily habits. Mark each one done for today,
	and see how long your current streak is and how much of today's list is
	complete. Data lives in a local store; "streaks server" exposes the same
	operations over HTTP and --remote drives a running server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("error loading config file: %w", err)
		}
		return logger.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HABITS_CONFIG or config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&remote, "remote", false, "operate on the server at api_base_url instead of the local store")
}

// openLocal opens the configured slot and loads the habit collection.
func openLocal() (*tracker.Store, storage.KV, error) {
	kv, err := openKV(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	loc, err := clock.Load(cfg.Timezone)
	if err != nil {
		_ = kv.Close()
		return nil, nil, err
	}

	st := tracker.New(kv, clock.NewLocal(loc), tracker.WithKey(cfg.Storage.Key))
	if err := st.Load(); err != nil {
		_ = kv.Close()
		if errors.Is(err, tracker.ErrCorruptData) {
			return nil, nil, fmt.Errorf("%w (run \"streaks check\" for details)", err)
		}
		return nil, nil, err
	}
	return st, kv, nil
}

// openService returns the event surface for the current mode. The returned
// close func releases the local store.
func openService() (tracker.Service, func() error, error) {
	if remote {
		logger.Debug("Using remote service", "base_url", cfg.APIBaseURL)
		return apiclient.New(cfg.APIBaseURL), func() error { return nil }, nil
	}
	st, kv, err := openLocal()
	if err != nil {
		return nil, nil, err
	}
	return tracker.NewLocal(st), kv.Close, nil
}

// withService runs fn against the configured service and closes it afterwards.
func withService(fn func(svc tracker.Service) error) (err error) {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(svc)
}
