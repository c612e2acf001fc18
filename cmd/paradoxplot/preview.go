package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Render the generated report in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.OutputDir, "report.md")
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s (run `paradoxplot render` first): %w", path, err)
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("terminal renderer: %w", err)
			}
			out, err := r.Render(string(b))
			if err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
