// Package pdfsurface draws render commands into a PDF with gofpdf, using
// the core fonts and millimeter units.
package pdfsurface

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/render"
)

// Option configures a Surface.
type Option func(*Surface)

// WithFlowPagination lets tables overflow onto new pages; every command
// after a break moves up by the distance consumed. Without it each page is
// drawn exactly as planned.
func WithFlowPagination(top, bottom float64) Option {
	return func(s *Surface) {
		s.flow = true
		s.top, s.bottom = top, bottom
	}
}

// WithCreationDate fixes the document creation date.
func WithCreationDate(t time.Time) Option {
	return func(s *Surface) { s.created = t }
}

// Surface implements render.Surface on top of gofpdf.
type Surface struct {
	pdf     *gofpdf.Fpdf
	tr      func(string) string
	images  map[string]string
	created time.Time

	flow        bool
	top, bottom float64
	shift       float64
	page        render.PageCmd
}

var _ render.Surface = (*Surface)(nil)

// New returns an empty PDF surface.
func New(opts ...Option) *Surface {
	pdf := gofpdf.New("P", "mm", "A4", "")
	s := &Surface{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		images:  map[string]string{},
		created: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		top:     15,
		bottom:  15,
	}
	for _, opt := range opts {
		opt(s)
	}
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(render.CellPadding)
	pdf.SetCreationDate(s.created)
	pdf.SetCatalogSort(true)
	return s
}

func (s *Surface) AddPage(c render.PageCmd) {
	s.page = c
	s.shift = 0
	s.newPage()
}

func (s *Surface) newPage() {
	orientation := "P"
	if s.page.Orientation == layout.Landscape {
		orientation = "L"
	}
	w, h := s.page.Width, s.page.Height
	if orientation == "L" && w > h {
		w, h = h, w
	}
	s.pdf.AddPageFormat(orientation, gofpdf.SizeType{Wd: w, Ht: h})
}

// place maps a planned y to the current page, breaking first when a flowing
// element of height h would cross the bottom margin.
func (s *Surface) place(y, h float64) float64 {
	y -= s.shift
	if s.flow && y+h > s.page.Height-s.bottom && y > s.top {
		s.newPage()
		s.shift += y - s.top
		y = s.top
	}
	return y
}

func setColor(set func(r, g, b int), c render.RGB) {
	set(int(c.R), int(c.G), int(c.B))
}

func alignStr(a layout.Alignment) string {
	switch a {
	case layout.AlignCenter:
		return "C"
	case layout.AlignRight:
		return "R"
	}
	return "L"
}

func (s *Surface) setFont(f render.Font, bold, italic, underline bool) {
	size := f.Size
	if size <= 0 {
		size = 10
	}
	s.pdf.SetFont(render.CoreFontName(f.Family), render.CoreFontStyle(f.Bold || bold, f.Italic || italic, f.Underline || underline), size)
}

func (s *Surface) DrawText(c render.TextCmd) {
	y := s.place(c.Y, c.H)
	if c.Fill != nil {
		setColor(s.pdf.SetFillColor, *c.Fill)
		s.pdf.Rect(c.X, y, c.W, c.H, "F")
	}
	setColor(s.pdf.SetTextColor, c.Color)
	size := c.Font.Size
	if size <= 0 {
		size = 10
	}
	lh := size * 25.4 / 72 * 1.2

	if uniform(c.Runs) {
		style := render.Run{}
		if len(c.Runs) > 0 {
			style = c.Runs[0]
		}
		s.setFont(c.Font, style.Bold, style.Italic, style.Underline)
		s.pdf.SetXY(c.X, y)
		s.pdf.MultiCell(c.W, lh, s.tr(c.Text()), "", alignStr(c.Align), false)
		return
	}
	// Mixed styles flow left-aligned inside the box margins.
	s.pdf.SetLeftMargin(c.X)
	s.pdf.SetRightMargin(max(s.page.Width-c.X-c.W, 0))
	s.pdf.SetXY(c.X, y)
	for _, r := range c.Runs {
		if r.Break {
			s.pdf.Ln(lh)
			continue
		}
		s.setFont(c.Font, r.Bold, r.Italic, r.Underline)
		s.pdf.Write(lh, s.tr(r.Text))
	}
	s.pdf.SetMargins(0, 0, 0)
}

func uniform(runs []render.Run) bool {
	var first *render.Run
	for i := range runs {
		r := &runs[i]
		if r.Break {
			continue
		}
		if first == nil {
			first = r
			continue
		}
		if r.Bold != first.Bold || r.Italic != first.Italic || r.Underline != first.Underline {
			return false
		}
	}
	return true
}

// imageName registers img once per reference. WebP and BMP are re-encoded
// as PNG since gofpdf only reads PNG, JPEG and GIF.
func (s *Surface) imageName(c render.ImageCmd) (string, error) {
	key := c.Ref
	if key == "" {
		key = fmt.Sprintf("anon-%d", len(s.images))
	}
	if name, ok := s.images[key]; ok {
		return name, nil
	}
	data, typ := c.Image.Data, ""
	switch c.Image.Format {
	case "png":
		typ = "PNG"
	case "jpeg":
		typ = "JPG"
	case "gif":
		typ = "GIF"
	default:
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("decode %s image: %w", c.Image.Format, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("encode png: %w", err)
		}
		data, typ = buf.Bytes(), "PNG"
	}
	name := fmt.Sprintf("img%d", len(s.images))
	s.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: typ}, bytes.NewReader(data))
	s.images[key] = name
	return name, nil
}

func (s *Surface) DrawImage(c render.ImageCmd) {
	if !c.Image.Valid() || c.W <= 0 || c.H <= 0 {
		return
	}
	name, err := s.imageName(c)
	if err != nil {
		s.pdf.SetError(err)
		return
	}
	y := s.place(c.Y, c.H)
	s.pdf.ImageOptions(name, c.X, y, c.W, c.H, false, gofpdf.ImageOptions{}, 0, "")
}

func (s *Surface) DrawRect(c render.RectCmd) {
	y := s.place(c.Y, c.H)
	style := ""
	if c.Fill != nil {
		setColor(s.pdf.SetFillColor, *c.Fill)
		style += "F"
	}
	if c.Stroke != nil {
		setColor(s.pdf.SetDrawColor, *c.Stroke)
		s.pdf.SetLineWidth(max(c.LineWidth, 0.1))
		style += "D"
	}
	if style == "" {
		return
	}
	s.pdf.Rect(c.X, y, c.W, c.H, style)
}

func (s *Surface) DrawLine(c render.LineCmd) {
	y1 := s.place(c.Y1, 0)
	y2 := c.Y2 - s.shift
	setColor(s.pdf.SetDrawColor, c.Color)
	s.pdf.SetLineWidth(max(c.Width, 0.1))
	s.pdf.Line(c.X1, y1, c.X2, y2)
}

func (s *Surface) DrawTable(c render.TableCmd) {
	y := s.place(c.Y, c.RowHeight)
	border := ""
	if c.BorderColor != nil {
		setColor(s.pdf.SetDrawColor, *c.BorderColor)
		s.pdf.SetLineWidth(max(c.BorderWidth, 0.1))
		border = "1"
	}
	align := func(i int) string {
		if i < len(c.Aligns) {
			return alignStr(c.Aligns[i])
		}
		return "L"
	}
	header := func() {
		if c.Header == nil {
			return
		}
		s.setFont(c.Font, true, false, false)
		setColor(s.pdf.SetTextColor, c.HeaderColor)
		if c.HeaderFill != nil {
			setColor(s.pdf.SetFillColor, *c.HeaderFill)
		}
		x := c.X
		for i, w := range c.Widths {
			s.pdf.SetXY(x, y)
			s.pdf.CellFormat(w, c.RowHeight, s.tr(cell(c.Header, i)), border, 0, align(i), c.HeaderFill != nil, 0, "")
			x += w
		}
		y += c.RowHeight
	}
	header()
	s.setFont(c.Font, false, false, false)
	for r, row := range c.Rows {
		h := c.BodyRowHeight(r)
		if s.flow && y+h > s.page.Height-s.bottom && y > s.top {
			s.newPage()
			s.shift += y - s.top
			y = s.top
			header()
			s.setFont(c.Font, false, false, false)
		}
		stripe := c.StripeFill != nil && r%2 == 1
		if stripe {
			setColor(s.pdf.SetFillColor, *c.StripeFill)
		}
		setColor(s.pdf.SetTextColor, c.TextColor)
		x := c.X
		for i, w := range c.Widths {
			s.pdf.SetXY(x, y)
			if !c.Wrapped() {
				s.pdf.CellFormat(w, h, s.tr(fit(s.pdf, cell(row, i), w)), border, 0, align(i), stripe, 0, "")
				x += w
				continue
			}
			s.pdf.CellFormat(w, h, "", border, 0, "", stripe, 0, "")
			for j, line := range s.wrap(cell(row, i), w) {
				s.pdf.SetXY(x, y+1+float64(j)*c.LineHeight)
				s.pdf.CellFormat(w, c.LineHeight, s.tr(line), "", 0, align(i), false, 0, "")
			}
			x += w
		}
		y += h
	}
}

// wrap breaks s into the lines a cell of width w holds in the current font.
func (s *Surface) wrap(text string, w float64) []string {
	return render.WrapLines(text, w-2*s.pdf.GetCellMargin(), func(t string) float64 {
		return s.pdf.GetStringWidth(s.tr(t))
	})
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// fit cuts s so that it stays inside a cell of width w. Only fixed-height
// rows, such as headers and block previews, are cut.
func fit(pdf *gofpdf.Fpdf, s string, w float64) string {
	limit := w - 2*pdf.GetCellMargin()
	if limit <= 0 || pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// Pages returns the number of pages drawn so far.
func (s *Surface) Pages() int { return s.pdf.PageCount() }

// Export writes the PDF, reporting the first drawing error if any.
func (s *Surface) Export() ([]byte, error) {
	if s.pdf.PageCount() == 0 {
		s.pdf.AddPage()
	}
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
