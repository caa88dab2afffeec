package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

var (
	windowTypes = []window.Type{
		window.TypeRectangular,
		window.TypeHann,
		window.TypeHamming,
		window.TypeBlackman,
	}
	overlaps = []int{1, 2, 4, 8}
)

func newWindowsCmd(_ *options) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "windows [name ...]",
		Short: "Print analysis gain and overlap-add ripple of the STFT windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			types := windowTypes
			if len(args) > 0 {
				types = types[:0:0]
				for _, name := range args {
					t, err := window.ParseType(name)
					if err != nil {
						return err
					}
					types = append(types, t)
				}
			}
			return printWindows(cmd.OutOrStdout(), types, size)
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", stft.DefaultConfig().WindowSize, "window size in samples")

	return cmd
}

// printWindows writes, per window, the coherent gain and for each overlap
// factor the peak-to-trough ripple in dB of the squared-window overlap sum
// that the overlap-add normalization divides out.
func printWindows(w io.Writer, types []window.Type, size int) error {
	if size < stft.MinWindowSize {
		return fmt.Errorf("%w: %d", stft.ErrWindowSize, size)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain")
	for _, o := range overlaps {
		fmt.Fprintf(tw, "\tRipple x%d [dB]", o)
	}
	fmt.Fprintln(tw)

	for _, t := range types {
		coeffs := window.Generate(t, size, window.WithPeriodic())

		sum := 0.0
		for _, c := range coeffs {
			sum += c
		}
		fmt.Fprintf(tw, "%s\t%d\t%.6f", t, size, sum/float64(size))

		for _, o := range overlaps {
			ripple, err := overlapRipple(coeffs, size/o)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "\t%.4f", ripple)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

func overlapRipple(coeffs []float64, hop int) (float64, error) {
	gain, err := window.OverlapGain(coeffs, hop)
	if err != nil {
		return 0, err
	}

	lo, hi := math.Inf(1), 0.0
	for _, g := range gain {
		lo = min(lo, g)
		hi = max(hi, g)
	}

	if lo <= 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(hi/lo), nil
}
