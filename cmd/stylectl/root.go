package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/config"
)

// Version is the application version.
const Version = "0.1.0"

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stylectl",
		Short:         "Inspect the hairstyle catalog and its asset names",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log skipped objects and listing details to stderr")

	root.AddCommand(newParseCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger logs to stderr, errors only unless --verbose is set
func newLogger() *slog.Logger {
	if verbose {
		return config.NewLoggerTo(os.Stderr, "development", "debug")
	}
	return config.NewLoggerTo(os.Stderr, "cli", "error")
}
