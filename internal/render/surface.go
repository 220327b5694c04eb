// Package render turns templates and business documents into draw commands
// replayed on a drawing surface. Planning is pure: it reads its inputs,
// never mutates them and holds no shared state, so distinct documents can
// be rendered concurrently.
package render

import "github.com/diewo77/doc-designer/internal/layout"

// Surface is a drawing backend working in millimeters, origin top-left.
// Implementations record their first failure and report it from Export.
type Surface interface {
	AddPage(PageCmd)
	DrawText(TextCmd)
	DrawImage(ImageCmd)
	DrawRect(RectCmd)
	DrawLine(LineCmd)
	DrawTable(TableCmd)
	Export() ([]byte, error)
}

// Command is one draw call.
type Command interface {
	Op() string
	Replay(Surface)
}

// Font selects one of the core fonts.
type Font struct {
	Family    layout.FontFamily `json:"family"`
	Size      float64           `json:"size"`
	Bold      bool              `json:"bold,omitempty"`
	Italic    bool              `json:"italic,omitempty"`
	Underline bool              `json:"underline,omitempty"`
}

// Run is a span of text sharing one inline style. Break runs end a line.
type Run struct {
	Text      string `json:"text,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Break     bool   `json:"break,omitempty"`
}

// PageCmd starts a new page.
type PageCmd struct {
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Orientation layout.Orientation `json:"orientation"`
}

// TextCmd places text inside a box. Runs style spans on top of Font.
type TextCmd struct {
	X     float64          `json:"x"`
	Y     float64          `json:"y"`
	W     float64          `json:"w"`
	H     float64          `json:"h"`
	Runs  []Run            `json:"runs"`
	Font  Font             `json:"font"`
	Color RGB              `json:"color"`
	Fill  *RGB             `json:"fill,omitempty"`
	Align layout.Alignment `json:"align"`
}

// Text returns the concatenated run text, breaks as newlines.
func (c TextCmd) Text() string {
	var s []byte
	for _, r := range c.Runs {
		if r.Break {
			s = append(s, '\n')
			continue
		}
		s = append(s, r.Text...)
	}
	return string(s)
}

// ImageCmd places an already fitted image.
type ImageCmd struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Ref   string  `json:"ref"`
	Image Image   `json:"-"`
}

// RectCmd draws a rectangle, filled and/or stroked.
type RectCmd struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Fill      *RGB    `json:"fill,omitempty"`
	Stroke    *RGB    `json:"stroke,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`
}

// LineCmd draws a straight line.
type LineCmd struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color RGB     `json:"color"`
	Width float64 `json:"width"`
}

// TableCmd draws a grid of text cells. Header is nil when hidden.
type TableCmd struct {
	X           float64            `json:"x"`
	Y           float64            `json:"y"`
	Widths      []float64          `json:"widths"`
	Header      []string           `json:"header,omitempty"`
	Rows        [][]string         `json:"rows"`
	Aligns      []layout.Alignment `json:"aligns,omitempty"`
	RowHeight   float64            `json:"row_height"`
	Font        Font               `json:"font"`
	TextColor   RGB                `json:"text_color"`
	HeaderColor RGB                `json:"header_color"`
	HeaderFill  *RGB               `json:"header_fill,omitempty"`
	StripeFill  *RGB               `json:"stripe_fill,omitempty"`
	BorderColor *RGB               `json:"border_color,omitempty"`
	BorderWidth float64            `json:"border_width,omitempty"`

	// RowHeights, when set, sizes each body row on its own and makes the
	// surface wrap cell text on lines of LineHeight instead of cutting it.
	RowHeights []float64 `json:"row_heights,omitempty"`
	LineHeight float64   `json:"line_height,omitempty"`
}

// Width is the sum of the column widths.
func (c TableCmd) Width() float64 {
	var w float64
	for _, cw := range c.Widths {
		w += cw
	}
	return w
}

// Height is the laid-out height before any pagination.
func (c TableCmd) Height() float64 {
	var h float64
	if c.Header != nil {
		h = c.RowHeight
	}
	for r := range c.Rows {
		h += c.BodyRowHeight(r)
	}
	return h
}

// Wrapped reports whether body rows carry their own heights.
func (c TableCmd) Wrapped() bool { return len(c.RowHeights) == len(c.Rows) && len(c.Rows) > 0 }

// BodyRowHeight is the height of body row r.
func (c TableCmd) BodyRowHeight(r int) float64 {
	if c.Wrapped() {
		return c.RowHeights[r]
	}
	return c.RowHeight
}

func (PageCmd) Op() string  { return "page" }
func (TextCmd) Op() string  { return "text" }
func (ImageCmd) Op() string { return "image" }
func (RectCmd) Op() string  { return "rect" }
func (LineCmd) Op() string  { return "line" }
func (TableCmd) Op() string { return "table" }

func (c PageCmd) Replay(s Surface)  { s.AddPage(c) }
func (c TextCmd) Replay(s Surface)  { s.DrawText(c) }
func (c ImageCmd) Replay(s Surface) { s.DrawImage(c) }
func (c RectCmd) Replay(s Surface)  { s.DrawRect(c) }
func (c LineCmd) Replay(s Surface)  { s.DrawLine(c) }
func (c TableCmd) Replay(s Surface) { s.DrawTable(c) }

// Replay issues cmds on s in order and exports the result.
func Replay(s Surface, cmds []Command) ([]byte, error) {
	for _, c := range cmds {
		c.Replay(s)
	}
	return s.Export()
}
