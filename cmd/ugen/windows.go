package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-ugen/dsp/window"
)

// printWindows prints the gain properties of the analysis windows the fft
// unit can use. No names means every type.
func printWindows(w io.Writer, names []string, size int, periodic bool) error {
	var types []window.Type

	for _, name := range names {
		t, err := window.ParseType(name)
		if err != nil {
			return err
		}

		types = append(types, t)
	}

	if len(types) == 0 {
		for t := window.TypeRectangular; t <= window.TypeBlackmanHarris; t++ {
			types = append(types, t)
		}
	}

	var opts []window.Option
	if periodic {
		opts = append(opts, window.WithPeriodic())
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\n------\t----\t-------------\t-----------\n"); err != nil {
		return err
	}

	for _, t := range types {
		coeffs, err := window.Generate(t, size, opts...)
		if err != nil {
			return err
		}

		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\n", t, size, window.Sum(coeffs)/float64(size), enbw); err != nil {
			return err
		}
	}

	return tw.Flush()
}
