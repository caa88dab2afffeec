package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectral/internal/live"
)

const statsInterval = 5 * time.Second

func newLiveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "live",
		Short: "Run the configured effect on the audio device (Enter triggers Freeze)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg

			proc, err := buildProcessor(cfg, cfg.Live.SampleRate)
			if err != nil {
				return err
			}

			if err := live.Initialize(); err != nil {
				return err
			}
			defer live.Terminate()

			host := live.NewHost(cfg.Live, cfg.Volts, proc)
			if err := host.Start(); err != nil {
				return err
			}
			defer host.Stop()

			opts.logger.Info("stream started",
				"effect", cfg.Effect.Type,
				"sampleRate", cfg.Live.SampleRate,
				"framesPerBuffer", cfg.Live.FramesPerBuffer,
				"latency", proc.Latency(),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				sc := bufio.NewScanner(os.Stdin)
				for sc.Scan() {
					host.Trigger()
					opts.logger.Debug("trigger")
				}
			}()

			return waitAndReport(ctx, opts, host)
		},
	}
}

func waitAndReport(ctx context.Context, opts *options, host *live.Host) error {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			st := host.Stats()
			opts.logger.Info("stream stopped", "frames", st.Frames, "clipped", st.Clipped)
			return nil
		case <-ticker.C:
			st := host.Stats()
			opts.logger.Debug("stream stats", "frames", st.Frames, "clipped", st.Clipped)
		}
	}
}
