package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/models"
)

func TestBasicValidators(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	PositiveFloat("qty", 0, v)
	RangeFloat("rate", 1.5, 0, 1, v)
	NonNegativeFloat("discount", 0, v)
	assert.Equal(t, Violations{"name": "required", "qty": "must_be_positive", "rate": "out_of_range"}, v)
	assert.Equal(t, "Requis", v.Localize("fr")["name"])
	assert.Equal(t, "Required", v.Localize("en")["name"])
}

func TestRenderRequestRequiresDatesWhenColumnShown(t *testing.T) {
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	doc := models.Document{
		Number:    "F-1",
		IssueDate: day,
		Items: []models.LineItem{
			{Description: "a", Quantity: 1, Date: &day},
			{Description: "b", Quantity: 1},
		},
	}
	style := models.DefaultStyleTemplate()
	assert.True(t, RenderRequest(doc, style).Empty())

	style.ShowDate = true
	v := RenderRequest(doc, style)
	assert.Equal(t, Violations{"items[1].date": "required"}, v)
}

func TestRenderRequestNumbers(t *testing.T) {
	doc := models.Document{Items: []models.LineItem{{Quantity: -1, VATRate: 20, Discount: -5}}}
	v := RenderRequest(doc, models.StyleTemplate{})
	assert.Equal(t, "required", v["number"])
	assert.Equal(t, "required", v["issue_date"])
	assert.Equal(t, "must_be_positive", v["items[0].quantity"])
	assert.Equal(t, "out_of_range", v["items[0].vat_rate"])
	assert.Equal(t, "must_be_positive", v["items[0].discount"])
	assert.Equal(t, "out_of_range", v["style.base_font_size"])
}

func TestTemplate(t *testing.T) {
	tpl := layout.New("t", "", time.Now())
	tpl.Blocks = []layout.Block{layout.NewBlock("a", layout.TypeText, 0, 0), layout.NewBlock("a", layout.TypeLine, 0, 0)}
	v := Template(tpl)
	assert.Equal(t, "required", v["name"])
	assert.Contains(t, v, "blocks")
}

func TestStyle(t *testing.T) {
	assert.True(t, Style(models.DefaultStyleTemplate()).Empty())

	st := models.DefaultStyleTemplate()
	st.Name = " "
	st.BaseFontSize = 2
	st.MarginLeft = -1
	v := Style(st)
	assert.Equal(t, "required", v["name"])
	assert.Equal(t, "out_of_range", v["base_font_size"])
	assert.Equal(t, "must_be_positive", v["margin_left"])
	assert.NotContains(t, v, "margin_top")
}
