// Package report assembles an ordered sequence of markdown prose and figure
// blocks into a generated document: one report.md plus one PNG per figure.
package report

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// Figure is a rendered image destined for the report directory.
type Figure struct {
	Name  string // file stem; written as <Name>.png
	Alt   string
	Image image.Image
}

// Block is either prose or a figure, never both.
type Block struct {
	Markdown string
	Figure   *Figure
}

// Builder accumulates blocks in document order.
type Builder struct {
	blocks []Block
}

// AddMarkdown appends a prose block.
func (b *Builder) AddMarkdown(md string) {
	b.blocks = append(b.blocks, Block{Markdown: md})
}

// AddFigure appends a figure block.
func (b *Builder) AddFigure(name, alt string, img image.Image) {
	b.blocks = append(b.blocks, Block{Figure: &Figure{Name: name, Alt: alt, Image: img}})
}

// Blocks returns the accumulated blocks in order.
func (b *Builder) Blocks() []Block { return b.blocks }

// Markdown renders the document body, referencing figures by their relative
// file names.
func (b *Builder) Markdown() string {
	var sb strings.Builder
	for i, blk := range b.blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		if blk.Figure != nil {
			fmt.Fprintf(&sb, "![%s](%s.png)\n", blk.Figure.Alt, blk.Figure.Name)
			continue
		}
		sb.WriteString(strings.TrimRight(blk.Markdown, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteTo writes report.md and every figure PNG under dir, creating it if
// needed. Returns the report path.
func (b *Builder) WriteTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	for _, blk := range b.blocks {
		if blk.Figure == nil {
			continue
		}
		f := blk.Figure
		if err := validFigureName(f.Name); err != nil {
			return "", err
		}
		if f.Image == nil {
			return "", fmt.Errorf("figure %q has no image", f.Name)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, f.Image); err != nil {
			return "", fmt.Errorf("png encode %s: %w", f.Name, err)
		}
		outPath := filepath.Join(dir, f.Name+".png")
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", outPath, err)
		}
	}
	reportPath := filepath.Join(dir, "report.md")
	if err := os.WriteFile(reportPath, []byte(b.Markdown()), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", reportPath, err)
	}
	return reportPath, nil
}

func validFigureName(name string) error {
	if name == "" {
		return fmt.Errorf("figure name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("figure name %q must be a bare file stem", name)
	}
	return nil
}
