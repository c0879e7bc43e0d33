package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/santiago-labs/apphost/cmd/runner"
	"github.com/santiago-labs/apphost/host"
	"github.com/santiago-labs/apphost/lib/config"
	"github.com/santiago-labs/apphost/lib/ctxlog"
	"github.com/santiago-labs/apphost/lib/metrics"
	apphostotel "github.com/santiago-labs/apphost/lib/otel"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

var (
	declarationsFile string
	// cfg is loaded once from the environment by Execute.
	cfg config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&declarationsFile, "file", "", "Path to a YAML file of resource declarations. Defaults to the built-in program.")
}

var rootCmd = &cobra.Command{
	Use:           "apphost",
	Short:         "apphost - Declare cloud resources and publish them as a manifest or to Azure",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHost(cmd.Context(), cfg.Publisher, false)
	},
}

func Execute() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'\n", err)
		os.Exit(1)
	}
	cfg = loaded

	metrics.Init(cfg.PosthogKey, cfg.MetricsDisabled)
	metrics.RegisterCommand()

	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(os.Stderr, cfg.LogLevel))
	shutdown, err := apphostotel.Setup(ctx, apphostotel.Settings{
		ServiceName:    "apphost",
		ServiceVersion: Version,
		Endpoint:       cfg.OTelEndpoint,
		SubscriptionID: cfg.SubscriptionID,
		ResourceGroup:  cfg.ResourceGroup,
		Location:       cfg.Location,
		Publisher:      cfg.Publisher,
	})
	if err != nil {
		ctxlog.FromContext(ctx).Warn("tracing disabled", "error", err)
	}

	err = rootCmd.ExecuteContext(ctx)

	if shutdownErr := shutdown(ctx); shutdownErr != nil {
		ctxlog.FromContext(ctx).Warn("flush traces", "error", shutdownErr)
	}
	metrics.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'\n", err)
		os.Exit(1)
	}
}

// runHost builds the declarations, binds them to the named publisher and runs
// the host. With a TUI the host runs on a worker goroutine while the console
// owns the main one, and diagnostic logs are dropped so they do not draw over
// it.
func runHost(ctx context.Context, publisherName string, useTUI bool) error {
	b, err := loadBuilder()
	if err != nil {
		return err
	}

	consoleUI := runner.NewSTDOut()
	if useTUI {
		consoleUI = runner.NewTUI()
		ctx = ctxlog.WithLogger(ctx, ctxlog.New(io.Discard, cfg.LogLevel))
	}

	pub, err := newPublisher(publisherName, consoleUI)
	if err != nil {
		return err
	}

	h, err := host.New(b, pub)
	if err != nil {
		return err
	}
	total := len(h.Declarations())

	errCh := make(chan error, 1)
	go func() {
		err := h.Run(ctx)
		consoleUI.Done()
		errCh <- err
	}()
	consoleUI.Start()

	err = <-errCh
	metrics.RegisterPublish(pub.Name(), total, err)
	return err
}
