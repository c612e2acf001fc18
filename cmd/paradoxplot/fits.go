package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/iafilius/ParadoxPlot/src/regress"
)

func newFitsCmd() *cobra.Command {
	var ascii bool
	cmd := &cobra.Command{
		Use:   "fits",
		Short: "Print the pooled and per-species trend fits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			_, sum, err := analyze()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DOMAIN\tSLOPE (mm/mm)\tINTERCEPT (mm)\tPOINTS")
			fmt.Fprintf(w, "pooled\t%.3f\t%.2f\t%d\n", sum.Pooled.Slope, sum.Pooled.Intercept, sum.Pooled.N)
			for _, label := range sum.Species() {
				line := sum.BySpecies[label]
				fmt.Fprintf(w, "%s\t%.3f\t%.2f\t%d\n", label, line.Slope, line.Intercept, line.N)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			for _, label := range sum.Skipped {
				fmt.Fprintf(out, "excluded (no valid fit): %s\n", label)
			}
			if !ascii {
				return nil
			}
			lines := []regress.TrendLine{sum.Pooled}
			legends := []string{"pooled"}
			for _, label := range sum.Species() {
				lines = append(lines, sum.BySpecies[label])
				legends = append(legends, label)
			}
			series := make([][]float64, len(lines))
			for i, ln := range lines {
				series[i] = sampleLine(ln, sum.Range.XMin, sum.Range.XMax, 60)
			}
			fmt.Fprintln(out, asciigraph.PlotMany(series,
				asciigraph.Height(12),
				asciigraph.Width(60),
				asciigraph.SeriesLegends(legends...),
				asciigraph.Caption("bill depth (mm) across the shared bill length range"),
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&ascii, "ascii", false, "Sketch the trend lines as an ascii chart")
	return cmd
}

// sampleLine evaluates the trend at n evenly spaced x positions in [x0,x1].
func sampleLine(t regress.TrendLine, x0, x1 float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	step := (x1 - x0) / float64(n-1)
	for i := range out {
		out[i] = t.At(x0 + float64(i)*step)
	}
	return out
}
