package render

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/phpdave11/gofpdf"

	"github.com/diewo77/doc-designer/internal/layout"
)

// CellPadding is the horizontal inset of text inside a box, on each side.
// Surfaces draw text with the same inset so planned lines never re-wrap.
const CellPadding = 1.0

// Measurer breaks text into the lines a box of the given width (mm) holds
// in font f. It always returns at least one line.
type Measurer interface {
	Wrap(text string, f Font, width float64) []string
}

// WrapLines splits text greedily on spaces so that every line measures at
// most limit. Newlines force a break; a word wider than limit is split
// between runes. Non-breaking spaces never break.
func WrapLines(text string, limit float64, width func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.FieldsFunc(para, breakable)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := ""
		for _, w := range words {
			candidate := w
			if cur != "" {
				candidate = cur + " " + w
			}
			if width(candidate) <= limit {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			for width(w) > limit && utf8.RuneCountInString(w) > 1 {
				head := splitRunes(w, limit, width)
				lines = append(lines, head)
				w = w[len(head):]
			}
			cur = w
		}
		lines = append(lines, cur)
	}
	return lines
}

func breakable(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

// splitRunes returns the longest prefix of w (at least one rune) within limit.
func splitRunes(w string, limit float64, width func(string) float64) string {
	_, size := utf8.DecodeRuneInString(w)
	end := size
	for end < len(w) {
		_, n := utf8.DecodeRuneInString(w[end:])
		if width(w[:end+n]) > limit {
			break
		}
		end += n
	}
	return w[:end]
}

// CoreFontMeasurer measures with the metrics of the PDF core fonts, the
// same ones the PDF surface draws with.
type CoreFontMeasurer struct {
	mu  sync.Mutex
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func NewCoreFontMeasurer() *CoreFontMeasurer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return &CoreFontMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// Wrap implements Measurer.
func (m *CoreFontMeasurer) Wrap(text string, f Font, width float64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	size := f.Size
	if size <= 0 {
		size = 10
	}
	m.pdf.SetFont(CoreFontName(f.Family), CoreFontStyle(f.Bold, f.Italic, false), size)
	return WrapLines(text, width-2*CellPadding, func(s string) float64 {
		return m.pdf.GetStringWidth(m.tr(s))
	})
}

// CoreFontName maps a font family to its core font.
func CoreFontName(f layout.FontFamily) string {
	switch f {
	case layout.FontTimes:
		return "Times"
	case layout.FontCourier:
		return "Courier"
	}
	return "Helvetica"
}

// CoreFontStyle is the gofpdf style string.
func CoreFontStyle(bold, italic, underline bool) string {
	var b strings.Builder
	if bold {
		b.WriteByte('B')
	}
	if italic {
		b.WriteByte('I')
	}
	if underline {
		b.WriteByte('U')
	}
	return b.String()
}

var defaultMeasurer = sync.OnceValue(func() Measurer { return NewCoreFontMeasurer() })
