package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectral/internal/wavio"
	"github.com/cwbudde/algo-spectral/measure/band"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		low, high float64
		segment   int
	)

	cmd := &cobra.Command{
		Use:   "analyze in.wav",
		Short: "Print level, peak frequency and band energy of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clip, err := wavio.ReadFile(args[0])
			if err != nil {
				return err
			}

			sr := float64(clip.SampleRate)
			res, err := band.Analyze(clip.Samples, band.Config{
				SampleRate:  sr,
				SegmentSize: segment,
				LowerFreq:   low,
				UpperFreq:   high,
			})
			if err != nil {
				return err
			}

			opts.logger.Debug("analyzed", "path", args[0], "samples", len(clip.Samples))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "file\t%s\n", args[0])
			fmt.Fprintf(w, "sample rate\t%d Hz\n", clip.SampleRate)
			fmt.Fprintf(w, "duration\t%.3f s\n", clip.Duration())
			fmt.Fprintf(w, "rms\t%.6f\n", res.RMS)
			fmt.Fprintf(w, "peak\t%.6f\n", res.Peak)
			fmt.Fprintf(w, "mean\t%.6f\n", res.Mean)
			fmt.Fprintf(w, "std dev\t%.6f\n", res.StdDev)
			fmt.Fprintf(w, "peak frequency\t%.2f Hz\n", res.PeakFreq)
			fmt.Fprintf(w, "band\t%.1f - %.1f Hz\n", low, high)
			fmt.Fprintf(w, "band energy\t%.6g\n", res.BandEnergy)
			fmt.Fprintf(w, "band ratio\t%.4f (%.2f dB)\n", res.BandRatio, res.BandRatioDB)
			return w.Flush()
		},
	}

	cmd.Flags().Float64Var(&low, "low", 500, "lower band edge in Hz")
	cmd.Flags().Float64Var(&high, "high", 2000, "upper band edge in Hz")
	cmd.Flags().IntVar(&segment, "segment", 0, "Welch segment size (0 for default)")

	return cmd
}
