package render

import (
	"unicode/utf8"

	"github.com/diewo77/doc-designer/internal/layout"
)

const (
	// PreviewRows is the number of empty rows drawn under a table header.
	PreviewRows = 3
	// previewRowHeight is the preferred row height of table previews.
	previewRowHeight = 8.0
	minLineWidth     = 0.2
)

var placeholderStroke = Gray

// PlanTemplate lays out a free-form template as one page of draw commands,
// painting blocks in ascending z-order. Images are looked up in images;
// unresolved images render as an outlined placeholder.
func PlanTemplate(t layout.Template, images Images) []Command {
	size := t.Page.PageSize()
	cmds := []Command{PageCmd{Width: size.Width, Height: size.Height, Orientation: t.Page.Orientation}}
	for _, b := range t.PaintOrder() {
		cmds = append(cmds, planBlock(b, images)...)
	}
	return cmds
}

// RenderTemplate plans t and replays it on s.
func RenderTemplate(t layout.Template, images Images, s Surface) ([]byte, error) {
	return Replay(s, PlanTemplate(t, images))
}

func planBlock(b layout.Block, images Images) []Command {
	switch c := b.Content.(type) {
	case layout.TextContent:
		return planText(b, c)
	case layout.ImageContent:
		return planImage(b, c, images)
	case layout.TableContent:
		return planTable(b, c)
	case layout.ShapeContent:
		fill := ParseColor(b.Style.Background, Gray.Lighten(0.6))
		return []Command{RectCmd{X: b.X, Y: b.Y, W: b.Width, H: b.Height, Fill: &fill}}
	case layout.LineContent:
		y := b.Y + b.Height/2
		return []Command{LineCmd{
			X1: b.X, Y1: y, X2: b.X + b.Width, Y2: y,
			Color: ParseColor(b.Style.Color, Black),
			Width: max(b.Height, minLineWidth),
		}}
	}
	return nil
}

func blockFont(s layout.Style) Font {
	return Font{
		Family:    s.FontFamily,
		Size:      s.FontSize,
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
	}
}

func planText(b layout.Block, c layout.TextContent) []Command {
	base := Run{Bold: b.Style.Bold, Italic: b.Style.Italic, Underline: b.Style.Underline}
	return []Command{TextCmd{
		X: b.X, Y: b.Y, W: b.Width, H: b.Height,
		Runs:  ParseMarkup(c.Markup, base),
		Font:  blockFont(b.Style),
		Color: ParseColor(b.Style.Color, Black),
		Fill:  OptionalColor(b.Style.Background),
		Align: b.Style.Align,
	}}
}

func planImage(b layout.Block, c layout.ImageContent, images Images) []Command {
	img, ok := images.Resolve(c.Source)
	if !ok {
		if c.Source != "" {
			Logger().Warn("image unavailable, drawing placeholder", "block", b.ID, "source", truncate(c.Source, 80))
		}
		stroke := placeholderStroke
		return []Command{RectCmd{X: b.X, Y: b.Y, W: b.Width, H: b.Height, Stroke: &stroke, LineWidth: minLineWidth}}
	}
	x, y, w, h := Contain(b.X, b.Y, b.Width, b.Height, img)
	return []Command{ImageCmd{X: x, Y: y, W: w, H: h, Ref: c.Source, Image: img}}
}

// planTable draws a structural preview: column widths are the raw
// percentages of the block width, never normalized.
func planTable(b layout.Block, c layout.TableContent) []Command {
	widths := make([]float64, len(c.Columns))
	var header []string
	if c.ShowHeader {
		header = make([]string, len(c.Columns))
	}
	for i, col := range c.Columns {
		widths[i] = col.WidthPercent / 100 * b.Width
		if header != nil {
			header[i] = col.Header
		}
	}
	rows := make([][]string, PreviewRows)
	for i := range rows {
		rows[i] = make([]string, len(c.Columns))
	}
	n := PreviewRows
	if header != nil {
		n++
	}
	rowHeight := previewRowHeight
	if b.Height > 0 && b.Height/float64(n) < rowHeight {
		rowHeight = b.Height / float64(n)
	}
	textColor := ParseColor(b.Style.Color, Black)
	border := Gray
	return []Command{TableCmd{
		X: b.X, Y: b.Y,
		Widths:      widths,
		Header:      header,
		Rows:        rows,
		RowHeight:   rowHeight,
		Font:        blockFont(b.Style),
		TextColor:   textColor,
		HeaderColor: textColor,
		HeaderFill:  OptionalColor(b.Style.Background),
		BorderColor: &border,
		BorderWidth: minLineWidth,
	}}
}

// truncate keeps at most n bytes of s, cut on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
