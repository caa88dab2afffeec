package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectral/internal/live"
)

func newDevicesCmd(_ *options) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List available audio devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := live.Initialize(); err != nil {
				return err
			}
			defer live.Terminate()

			devices, err := live.Devices()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, d := range devices {
				fmt.Fprintf(w, "[%d] %s (%s)\n", d.ID, d.Name, d.Kind())
				fmt.Fprintf(w, "    Input channels: %d, Output channels: %d\n", d.MaxInputChannels, d.MaxOutputChannels)
				fmt.Fprintf(w, "    Default sample rate: %.0f Hz\n", d.DefaultSampleRate)
				fmt.Fprintf(w, "    Latency: Low=%.2fms, High=%.2fms\n\n",
					d.LowLatency.Seconds()*1000, d.HighLatency.Seconds()*1000)
			}
			return nil
		},
	}
}
