// ParadoxPlot entrypoint.
//
// Subcommands:
//   - render:  fit the bundled penguin table and write the narrated report plus figures
//   - fits:    print the pooled and per-species fit table, optionally as an ascii sketch
//   - preview: render the generated report.md in the terminal
//
// Design notes:
//   - All figures share one axis window computed from the valid data, so the
//     pooled and per-species charts stay visually comparable.
//   - A per-species fit failure only drops that species from the charts; a
//     pooled-fit or dataset failure aborts the run.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/iafilius/ParadoxPlot/src/config"
	"github.com/iafilius/ParadoxPlot/src/dataset"
	"github.com/iafilius/ParadoxPlot/src/logging"
	"github.com/iafilius/ParadoxPlot/src/paradox"
)

var (
	cfgPath  string
	outDir   string
	logLevel string
)

func main() {
	root := &cobra.Command{
		Use:          "paradoxplot",
		Short:        "Generate a narrated Simpson's Paradox report from the bundled penguin measurements",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	root.PersistentFlags().StringVar(&outDir, "out", "", "Output directory (overrides config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error; overrides config)")
	root.AddCommand(newRenderCmd(), newFitsCmd(), newPreviewCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges persistent flag overrides over the file config and
// applies the resulting log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func analyze() (*dataset.Dataset, paradox.Summary, error) {
	ds, err := dataset.Load()
	if err != nil {
		return nil, paradox.Summary{}, err
	}
	sum, err := paradox.Analyze(ds)
	if err != nil {
		return nil, paradox.Summary{}, err
	}
	return ds, sum, nil
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Fit the trends, render the figures, and write the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ds, sum, err := analyze()
			if err != nil {
				return err
			}
			logging.Infof("pooled slope %.3f over %d penguins; %d species fitted, %d skipped",
				sum.Pooled.Slope, sum.Pooled.N, len(sum.BySpecies), len(sum.Skipped))
			b, err := paradox.BuildReport(ds, sum, cfg)
			if err != nil {
				return err
			}
			path, err := b.WriteTo(cfg.OutputDir)
			if err != nil {
				return err
			}
			logging.Infof("report written to %s", path)
			return nil
		},
	}
}
