package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chronicle/internal/bootstrap"
	"chronicle/internal/platform/config"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir     string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "chronicle",
		Short:         "Campaign chronicle for tabletop role-playing groups",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data", ".", "directory holding the chronicle store")
	root.PersistentFlags().StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides CHRONICLE_METRICS_ADDR)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newCampaignCmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newCharacterCmd(flags))
	root.AddCommand(newLanguageCmd(flags))
	root.AddCommand(newExportCmd(flags))
	return root
}

func loadApp(ctx context.Context, flags *rootFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return nil, err
	}
	if flags.metricsAddr != "" {
		cfg.MetricsAddr = flags.metricsAddr
	}
	return bootstrap.New(ctx, cfg)
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(cmd *cobra.Command, flags *rootFlags, fn func(context.Context, *bootstrap.App) error) error {
	ctx := cmd.Context()
	app, err := loadApp(ctx, flags)
	if err != nil {
		return err
	}
	stopMetrics := serveMetrics(app)
	defer func() {
		stopMetrics()
		_ = app.Close()
	}()
	return fn(ctx, app)
}

// serveMetrics exposes the app registry when an address is configured and
// returns a function that shuts the listener down.
func serveMetrics(app *bootstrap.App) func() {
	if app.Config.MetricsAddr == "" {
		return func() {}
	}
	srv := &http.Server{
		Addr:              app.Config.MetricsAddr,
		Handler:           promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	app.Logger.Info("serving metrics", zap.String("addr", app.Config.MetricsAddr))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the chronicle terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newLanguageCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "language [en|ru]",
		Short: "Show or set the chronicle language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang := ""
			if len(args) == 1 {
				lang = args[0]
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				ws, err := app.CampaignCLI.Language(ctx, lang)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", ws.Language, ws.Language.Name())
				return nil
			})
		},
	}
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [dir]",
		Short: "Write the active campaign as Markdown notes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				dir := app.Config.ExportDir()
				if len(args) == 1 {
					dir = args[0]
				}
				out, err := app.SessionCLI.Export(ctx, dir)
				if err != nil {
					return err
				}
				for _, f := range out.Files {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			})
		},
	}
}
