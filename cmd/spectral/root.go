package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectral/internal/config"
)

type options struct {
	configPath string
	effect     string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "spectral",
		Short:         "Streaming STFT spectral effects for modular synthesis",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"YAML configuration file (default "+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVarP(&opts.effect, "effect", "e", "",
		"effect type: freeze, pitch, rift, riftgate, bit or cheby")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"log at debug level")

	root.AddCommand(
		newRenderCmd(opts),
		newAnalyzeCmd(opts),
		newLiveCmd(opts),
		newDevicesCmd(opts),
		newWindowsCmd(opts),
	)

	return root
}

func (o *options) load() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	if o.effect != "" {
		cfg.Effect.Type = o.effect
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --effect: %w", err)
		}
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = slog.LevelDebug
	}

	o.cfg = cfg
	o.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(o.logger)

	return nil
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}
