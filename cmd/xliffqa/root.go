package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/opts"
	"github.com/hnorjordet/xliff-regex-tool/pkg/config"
)

var (
	// Flags
	configFile string
	debug      bool
)

// initRootOpts fills the shared options once flags have been parsed
func initRootOpts(ctx context.Context, o *opts.RootOpts) error {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	path := configFile
	if path == "" {
		// No explicit config: prefer xliffqa.yaml, fall back to xliffqa.hcl.
		path = "xliffqa.yaml"
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if _, err := os.Stat("xliffqa.hcl"); err == nil {
				path = "xliffqa.hcl"
			}
		}
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	o.Config = cfg
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default xliffqa.yaml or xliffqa.hcl)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zlog.Logger = logger
	zerolog.DefaultContextLogger = &logger
}
