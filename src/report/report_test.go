package report

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestBuilder_OrderPreserved(t *testing.T) {
	var b Builder
	b.AddMarkdown("# Title")
	b.AddFigure("fig1", "first figure", testImage())
	b.AddMarkdown("Closing prose.")

	blocks := b.Blocks()
	require.Len(t, blocks, 3)
	require.Equal(t, "# Title", blocks[0].Markdown)
	require.NotNil(t, blocks[1].Figure)
	require.Equal(t, "fig1", blocks[1].Figure.Name)
	require.Equal(t, "Closing prose.", blocks[2].Markdown)
}

func TestBuilder_MarkdownReferencesFigures(t *testing.T) {
	var b Builder
	b.AddMarkdown("intro")
	b.AddFigure("pooled", "pooled trend", testImage())

	md := b.Markdown()
	require.Contains(t, md, "intro\n")
	require.Contains(t, md, "![pooled trend](pooled.png)")
}

func TestWriteTo_WritesReportAndFigures(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var b Builder
	b.AddMarkdown("body")
	b.AddFigure("composite", "side by side", testImage())

	path, err := b.WriteTo(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "report.md"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), "![side by side](composite.png)")

	_, err = os.Stat(filepath.Join(dir, "composite.png"))
	require.NoError(t, err)
}

func TestWriteTo_RejectsBadFigureNames(t *testing.T) {
	for _, name := range []string{"", "a/b", `a\b`, "a..b"} {
		var b Builder
		b.AddFigure(name, "x", testImage())
		_, err := b.WriteTo(t.TempDir())
		require.Error(t, err, "name %q", name)
	}
}

func TestWriteTo_RejectsNilImage(t *testing.T) {
	var b Builder
	b.AddFigure("fig", "x", nil)
	_, err := b.WriteTo(t.TempDir())
	require.ErrorContains(t, err, "no image")
}
