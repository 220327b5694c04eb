// Package validation collects field violations as field -> message code.
// Codes are translated with i18n.T at the edge.
package validation

import (
	"fmt"
	"strings"

	"github.com/diewo77/doc-designer/i18n"
	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/models"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Localize translates every code for lang.
func (v Violations) Localize(lang string) map[string]string {
	out := make(map[string]string, len(v))
	for k, code := range v {
		out[k] = i18n.T(lang, code)
	}
	return out
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// RenderRequest checks what the document renderer takes for granted: a
// dated line for every item when the date column is on, and sane numbers.
func RenderRequest(doc models.Document, style models.StyleTemplate) Violations {
	v := Violations{}
	Required("number", doc.Number, v)
	if doc.IssueDate.IsZero() {
		v["issue_date"] = "required"
	}
	for i, it := range doc.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		if style.ShowDate && it.Date == nil {
			v[field("date")] = "required"
		}
		NonNegativeFloat(field("quantity"), it.Quantity, v)
		RangeFloat(field("vat_rate"), it.VATRate, 0, 1, v)
		NonNegativeFloat(field("discount"), it.Discount, v)
	}
	RangeFloat("style.base_font_size", style.BaseFontSize, 4, 72, v)
	return v
}

// Template checks a block template before it is stored.
func Template(t layout.Template) Violations {
	v := Violations{}
	Required("name", t.Name, v)
	if err := t.Validate(); err != nil {
		v["blocks"] = err.Error()
	}
	return v
}

// Style checks a style template before it is stored.
func Style(st models.StyleTemplate) Violations {
	v := Violations{}
	Required("name", st.Name, v)
	RangeFloat("base_font_size", st.BaseFontSize, 4, 72, v)
	RangeFloat("title_font_size", st.TitleFontSize, 4, 96, v)
	for field, m := range map[string]float64{
		"margin_top":    st.MarginTop,
		"margin_right":  st.MarginRight,
		"margin_bottom": st.MarginBottom,
		"margin_left":   st.MarginLeft,
	} {
		NonNegativeFloat(field, m, v)
	}
	return v
}
