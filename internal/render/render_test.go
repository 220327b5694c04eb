package render

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/doc-designer/i18n"
	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleInput() DocumentInput {
	issued := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	due := issued.AddDate(0, 0, 30)
	return DocumentInput{
		Document: models.Document{
			Kind:      models.KindInvoice,
			Number:    "FAC-2025-001",
			IssueDate: issued,
			DueDate:   &due,
			Currency:  "EUR",
			TotalHT:   300,
			TotalTTC:  360,
			Items: []models.LineItem{
				{Description: "Développement", Quantity: 2, UnitPrice: 100, VATRate: 0.2},
				{Description: "Hébergement", Quantity: 1, UnitPrice: 100, VATRate: 0.2},
			},
		},
		Style: models.DefaultStyleTemplate(),
		Company: models.CompanySettings{
			Name:       "Acme",
			LegalForm:  "SAS",
			Capital:    "10 000 €",
			Address:    "1 rue de la Paix",
			PostalCode: "75002",
			City:       "Paris",
			SIRET:      "12345678900011",
			RCS:        "Paris B 123 456 789",
			VATNumber:  "FR12345678901",
			BankName:   "Banque Populaire",
			IBAN:       "FR76 3000 6000 0112 3456 7890 189",
			BIC:        "AGRIFRPP",
		},
		Client: models.Client{Name: "Client SA", Address: "2 avenue Foch", PostalCode: "69006", City: "Lyon"},
	}
}

func texts(cmds []Command) []string {
	var out []string
	for _, c := range cmds {
		if t, ok := c.(TextCmd); ok {
			out = append(out, t.Text())
		}
	}
	return out
}

func findText(cmds []Command, s string) (TextCmd, bool) {
	for _, c := range cmds {
		if t, ok := c.(TextCmd); ok && t.Text() == s {
			return t, true
		}
	}
	return TextCmd{}, false
}

func tables(cmds []Command) []TableCmd {
	var out []TableCmd
	for _, c := range cmds {
		if t, ok := c.(TableCmd); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestItemColumns(t *testing.T) {
	st := models.StyleTemplate{ShowQuantity: true, ShowVAT: true}
	assert.Equal(t, []ColumnKey{ColDescription, ColQuantity, ColUnitPrice, ColVAT, ColAmount}, ItemColumns(st))

	st = models.StyleTemplate{ShowDate: true, ShowQuantity: true, ShowVAT: true, ShowDiscount: true}
	assert.Equal(t, []ColumnKey{ColDescription, ColDate, ColQuantity, ColUnitPrice, ColVAT, ColDiscount, ColAmount}, ItemColumns(st))

	assert.Equal(t, []ColumnKey{ColDescription, ColUnitPrice, ColAmount}, ItemColumns(models.StyleTemplate{}))
}

func TestItemsTableColumnSetForAnyDocument(t *testing.T) {
	labels := i18n.Labels{Lang: "fr"}
	want := []string{
		labels.Get("description"), labels.Get("quantity"), labels.Get("unit_price"),
		labels.Get("vat"), labels.Get("amount"),
	}
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	properties := gopter.NewProperties(params)

	properties.Property("header matches the enabled flags", prop.ForAll(
		func(qty []float64, striped bool) bool {
			in := sampleInput()
			in.Style.ShowDate, in.Style.ShowQuantity, in.Style.ShowVAT, in.Style.ShowDiscount = false, true, true, false
			if striped {
				in.Style.TableTheme = models.ThemeStriped
			} else {
				in.Style.TableTheme = models.ThemePlain
			}
			in.Document.Items = nil
			for _, q := range qty {
				in.Document.Items = append(in.Document.Items, models.LineItem{Description: "x", Quantity: q, UnitPrice: 3})
			}
			tbl := ItemsTable(in, 0)
			if len(tbl.Header) != len(want) || len(tbl.Widths) != len(want) || len(tbl.Rows) != len(qty) {
				return false
			}
			for i := range want {
				if tbl.Header[i] != want[i] {
					return false
				}
			}
			for _, row := range tbl.Rows {
				if len(row) != len(want) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(0, 1000)),
		gen.Bool(),
	))
	properties.TestingRun(t)
}

func TestItemsTableWidthsFillContentArea(t *testing.T) {
	in := sampleInput()
	tbl := ItemsTable(in, 50)
	assert.InDelta(t, 210-15-15, tbl.Width(), 1e-9)
	assert.Equal(t, 15.0, tbl.X)
	assert.Equal(t, 50.0, tbl.Y)
}

func TestItemsMissingValuesRenderBlankOrZero(t *testing.T) {
	in := sampleInput()
	in.Style.ShowDate = true
	day := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	in.Document.Items = []models.LineItem{
		{Description: "dated", Quantity: 1, UnitPrice: 10, Date: &day},
		{Description: "undated"},
	}
	tbl := ItemsTable(in, 0)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "14/02/2025", tbl.Rows[0][1])
	assert.Equal(t, "", tbl.Rows[1][1])
	assert.Equal(t, "0,00", tbl.Rows[1][len(tbl.Rows[1])-1])
}

func TestLineTTCSwitchesAmountColumn(t *testing.T) {
	in := sampleInput()
	in.Style.ShowLineTTC = true
	tbl := ItemsTable(in, 0)
	last := len(tbl.Header) - 1
	assert.Equal(t, i18n.T("fr", "amount_ttc"), tbl.Header[last])
	assert.Equal(t, "240,00", tbl.Rows[0][last])
}

func TestTotalsVATIsTTCMinusHT(t *testing.T) {
	in := sampleInput()
	// Stored totals disagree with the line rates on purpose.
	in.Document.TotalHT = 100
	in.Document.TotalTTC = 105.5
	cmds := PlanDocument(in)
	_, ok := findText(cmds, "5,50 €")
	assert.True(t, ok, "vat amount from totals, got %v", texts(cmds))
	_, ok = findText(cmds, "105,50 €")
	assert.True(t, ok)
	_, ok = findText(cmds, i18n.T("fr", "total_ttc"))
	assert.True(t, ok)
}

func TestTotalsVATExemptDropsTTC(t *testing.T) {
	in := sampleInput()
	in.Company.VATExempt = true
	cmds := PlanDocument(in)
	_, ok := findText(cmds, i18n.T("fr", "total_ttc"))
	assert.False(t, ok)
	_, ok = findText(cmds, i18n.T("fr", "vat_exempt"))
	assert.True(t, ok)
}

func TestLegalFooter(t *testing.T) {
	labels := i18n.Labels{Lang: "fr"}
	c := sampleInput().Company
	assert.Equal(t,
		"Acme SAS - Capital : 10 000 € - 1 rue de la Paix, 75002 Paris - SIRET : 12345678900011 - RCS : Paris B 123 456 789 - N° TVA : FR12345678901",
		LegalFooter(c, labels),
	)

	c.RCS = ""
	footer := LegalFooter(c, labels)
	assert.NotContains(t, footer, "RCS")
	assert.NotContains(t, footer, " -  - ")
	assert.False(t, strings.HasSuffix(footer, " - "))

	assert.Equal(t, "", LegalFooter(models.CompanySettings{}, labels))
	assert.Equal(t, "Solo", LegalFooter(models.CompanySettings{Name: "Solo"}, labels))
}

func TestPaymentLines(t *testing.T) {
	labels := i18n.Labels{Lang: "en"}
	lines := PaymentLines(models.CompanySettings{IBAN: "FR76", BIC: " "}, labels)
	assert.Equal(t, []string{"IBAN : FR76"}, lines)
	assert.Empty(t, PaymentLines(models.CompanySettings{}, labels))
}

func TestPaymentRegionSkippedWhenEmpty(t *testing.T) {
	in := sampleInput()
	in.Company.BankName, in.Company.IBAN, in.Company.BIC = "", "", ""
	cmds := PlanDocument(in)
	_, ok := findText(cmds, i18n.T("fr", "payment_info"))
	assert.False(t, ok)
}

func TestStagesRunInOrder(t *testing.T) {
	in := sampleInput()
	in.Style.ShowSiretTop = true
	stages := DocumentStages(in)
	var names []string
	y := 15.0
	for _, st := range stages {
		names = append(names, st.Name)
		end, cmds := st.Run(y)
		require.NotEmpty(t, cmds, st.Name)
		assert.Greater(t, end, y, st.Name)
		y = end + RegionGap
	}
	assert.Equal(t, []string{"siret", "header", "parties", "items", "totals", "payment", "footer"}, names)
}

func TestRegionsFollowEachOther(t *testing.T) {
	in := sampleInput()
	cmds := PlanDocument(in)
	tbl := tables(cmds)
	require.Len(t, tbl, 1)
	recipient, ok := findText(cmds, i18n.T("fr", "recipient"))
	require.True(t, ok)
	assert.Greater(t, tbl[0].Y, recipient.Y)
	ht, ok := findText(cmds, i18n.T("fr", "total_ht"))
	require.True(t, ok)
	assert.InDelta(t, tbl[0].Y+tbl[0].Height()+RegionGap, ht.Y, 1e-9)
}

func TestSiretTopAlignment(t *testing.T) {
	in := sampleInput()
	in.Style.ShowSiretTop = true
	cmds := PlanDocument(in)
	siret, ok := findText(cmds, "SIRET : 12345678900011")
	require.True(t, ok)
	assert.Equal(t, layout.AlignLeft, siret.Align)
	assert.Equal(t, 15.0, siret.Y)

	in.Style.HeaderLayout = models.LayoutCentered
	siret, _ = findText(PlanDocument(in), "SIRET : 12345678900011")
	assert.Equal(t, layout.AlignCenter, siret.Align)
}

func TestLogoFallsBackToCompanyName(t *testing.T) {
	in := sampleInput()
	in.Company.LogoURL = "https://example.com/logo.png"
	cmds := PlanDocument(in)
	for _, c := range cmds {
		_, isImage := c.(ImageCmd)
		assert.False(t, isImage)
	}
	name, ok := findText(cmds, "Acme")
	require.True(t, ok)
	assert.True(t, name.Font.Bold)
}

func TestLogoIsContained(t *testing.T) {
	in := sampleInput()
	img, err := DecodeImage(pngBytes(t, 200, 50))
	require.NoError(t, err)
	in.Logo = &img
	var logo *ImageCmd
	for _, c := range PlanDocument(in) {
		if ic, ok := c.(ImageCmd); ok {
			logo = &ic
		}
	}
	require.NotNil(t, logo)
	assert.InDelta(t, 45, logo.W, 1e-9)
	assert.InDelta(t, 11.25, logo.H, 1e-9)
	assert.Equal(t, 15.0, logo.X)
}

func TestQuoteUsesValidityDate(t *testing.T) {
	in := sampleInput()
	in.Document.Kind = models.KindQuote
	all := strings.Join(texts(PlanDocument(in)), "\n")
	assert.Contains(t, all, i18n.T("fr", "quote_title"))
	assert.Contains(t, all, i18n.T("fr", "valid_until"))
	assert.NotContains(t, all, i18n.T("fr", "due_date"))
}

func TestLabelsOverride(t *testing.T) {
	in := sampleInput()
	in.Style.Labels = map[string]string{"invoice_title": "HONORAIRES"}
	_, ok := findText(PlanDocument(in), "HONORAIRES")
	assert.True(t, ok)
}

// footerSpan returns the first and last lines of the legal footer, which
// closes the command list and may wrap.
func footerSpan(t *testing.T, cmds []Command) (first, last TextCmd) {
	t.Helper()
	last, ok := cmds[len(cmds)-1].(TextCmd)
	require.True(t, ok)
	first = last
	var parts []string
	for i := len(cmds) - 1; i >= 0; i-- {
		tc, ok := cmds[i].(TextCmd)
		if !ok || tc.Font.Size != last.Font.Size {
			break
		}
		first = tc
		parts = append([]string{tc.Text()}, parts...)
	}
	require.Contains(t, strings.Join(parts, " "), "SIRET")
	return first, last
}

func TestTrailerPinnedInMinimalistLayout(t *testing.T) {
	in := sampleInput()
	in.Style.HeaderLayout = models.LayoutMinimalist
	_, footer := footerSpan(t, PlanDocument(in))
	assert.InDelta(t, 297-15, footer.Y+footer.H, 1e-9)

	in.Style.HeaderLayout = models.LayoutStandard
	_, footer = footerSpan(t, PlanDocument(in))
	assert.Less(t, footer.Y+footer.H, 200.0)
}

func TestTrailerFlowsWhenPageIsFull(t *testing.T) {
	in := sampleInput()
	in.Style.HeaderLayout = models.LayoutModern
	in.Document.Items = nil
	for i := 0; i < 60; i++ {
		in.Document.Items = append(in.Document.Items, models.LineItem{Description: "ligne", Quantity: 1, UnitPrice: 1})
	}
	cmds := PlanDocument(in)
	ht, ok := findText(cmds, i18n.T("fr", "total_ht"))
	require.True(t, ok)
	first, last := footerSpan(t, cmds)
	assert.Greater(t, first.Y, ht.Y)
	assert.Greater(t, last.Y+last.H, 297.0)
}

func TestModernHeaderBand(t *testing.T) {
	in := sampleInput()
	in.Style.HeaderLayout = models.LayoutModern
	cmds := PlanDocument(in)
	band, ok := cmds[1].(RectCmd)
	require.True(t, ok)
	require.NotNil(t, band.Fill)
	assert.Equal(t, ParseColor(in.Style.AccentColor, Black), *band.Fill)
	assert.Equal(t, 15.0, band.Y)
}

func TestPlanDocumentDoesNotMutateInput(t *testing.T) {
	in := sampleInput()
	in.Style.Labels = map[string]string{"issuer": "De"}
	before, err := json.Marshal(in.Document)
	require.NoError(t, err)
	PlanDocument(in)
	after, err := json.Marshal(in.Document)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, map[string]string{"issuer": "De"}, in.Style.Labels)
}

func TestRenderTemplateEndToEnd(t *testing.T) {
	tpl := layout.New("tpl", "Test", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	text := layout.NewBlock("text", layout.TypeText, 0, 0)
	text.X, text.Y, text.Width, text.Height = 10, 10, 40, 20
	text.Content = layout.TextContent{Markup: "Hello <b>world</b>"}
	table := layout.NewBlock("table", layout.TypeTable, 0, 0)
	table.X, table.Y, table.Width, table.Height = 10, 40, 190, 60
	table.Content = layout.TableContent{ShowHeader: true, Columns: []layout.Column{
		{ID: "a", Header: "A", WidthPercent: 25},
		{ID: "b", Header: "B", WidthPercent: 25},
		{ID: "c", Header: "C", WidthPercent: 25},
		{ID: "d", Header: "D", WidthPercent: 25},
	}}
	tpl.Blocks = []layout.Block{text, table}

	rec := NewRecorder()
	out, err := RenderTemplate(tpl, nil, rec)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Pages())

	calls := rec.Calls()
	require.Len(t, calls, 3)
	tc, ok := calls[1].(TextCmd)
	require.True(t, ok)
	assert.Equal(t, [4]float64{10, 10, 40, 20}, [4]float64{tc.X, tc.Y, tc.W, tc.H})
	assert.Equal(t, "Hello world", tc.Text())

	tb, ok := calls[2].(TableCmd)
	require.True(t, ok)
	assert.Equal(t, 10.0, tb.X)
	assert.Equal(t, 40.0, tb.Y)
	require.Len(t, tb.Widths, 4)
	for _, w := range tb.Widths {
		assert.InDelta(t, 47.5, w, 1e-9)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, tb.Header)
	assert.Len(t, tb.Rows, PreviewRows)
	assert.LessOrEqual(t, tb.Height(), 60.0)

	var log []struct {
		Op   string          `json:"op"`
		Args json.RawMessage `json:"args"`
	}
	require.NoError(t, json.Unmarshal(out, &log))
	require.Len(t, log, 3)
	assert.Equal(t, []string{"page", "text", "table"}, []string{log[0].Op, log[1].Op, log[2].Op})
}

func TestTableWidthsAreNotNormalized(t *testing.T) {
	b := layout.NewBlock("t", layout.TypeTable, 0, 0)
	b.Width = 100
	b.Content = layout.TableContent{Columns: []layout.Column{{ID: "a", WidthPercent: 30}, {ID: "b", WidthPercent: 30}}}
	tb := planBlock(b, nil)[0].(TableCmd)
	assert.InDeltaSlice(t, []float64{30, 30}, tb.Widths, 1e-9)
	assert.Nil(t, tb.Header)
}

func TestTemplatePaintsInZOrder(t *testing.T) {
	tpl := layout.New("tpl", "Z", time.Now())
	a := layout.NewBlock("a", layout.TypeShape, 0, 0)
	z := 10
	a.Style.ZIndex = &z
	b := layout.NewBlock("b", layout.TypeLine, 0, 0)
	tpl.Blocks = []layout.Block{a, b}
	cmds := PlanTemplate(tpl, nil)
	require.Len(t, cmds, 3)
	assert.Equal(t, "line", cmds[1].Op())
	assert.Equal(t, "rect", cmds[2].Op())
}

func TestTemplateImages(t *testing.T) {
	data := pngBytes(t, 100, 100)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	tpl := layout.New("tpl", "img", time.Now())
	inline := layout.NewBlock("inline", layout.TypeImage, 0, 0)
	inline.Width, inline.Height = 40, 20
	inline.Content = layout.ImageContent{Source: uri}
	missing := layout.NewBlock("missing", layout.TypeImage, 50, 0)
	missing.Content = layout.ImageContent{Source: "https://example.com/none.png"}
	tpl.Blocks = []layout.Block{inline, missing}

	cmds := PlanTemplate(tpl, Images{})
	require.Len(t, cmds, 3)
	img, ok := cmds[1].(ImageCmd)
	require.True(t, ok)
	assert.Equal(t, [4]float64{10, 0, 20, 20}, [4]float64{img.X, img.Y, img.W, img.H})
	ph, ok := cmds[2].(RectCmd)
	require.True(t, ok)
	assert.NotNil(t, ph.Stroke)
	assert.Nil(t, ph.Fill)
}

func TestParseMarkup(t *testing.T) {
	runs := ParseMarkup("Hello <b>big <i>world</i></b><br>next<p>para</p>", Run{})
	assert.Equal(t, []Run{
		{Text: "Hello "},
		{Text: "big ", Bold: true},
		{Text: "world", Bold: true, Italic: true},
		{Break: true},
		{Text: "next"},
		{Break: true},
		{Text: "para"},
	}, runs)

	assert.Equal(t, []Run{{Text: "a & b", Underline: true}}, ParseMarkup("a &amp; <span>b</span>", Run{Underline: true}))
	assert.Empty(t, ParseMarkup("", Run{}))
}

func TestContain(t *testing.T) {
	x, y, w, h := Contain(0, 0, 40, 40, Image{Width: 200, Height: 100})
	assert.Equal(t, [4]float64{0, 10, 40, 20}, [4]float64{x, y, w, h})
	_, _, w, h = Contain(0, 0, 40, 40, Image{})
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestDecodeImage(t *testing.T) {
	_, err := DecodeImage(nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
	_, err = DecodeImage([]byte("not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	img, err := DecodeImage(pngBytes(t, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 3, img.Width)

	_, ok := DecodeDataURI("data:image/png;base64,%%%")
	assert.False(t, ok)
	_, ok = DecodeDataURI("https://example.com/a.png")
	assert.False(t, ok)
}

func TestColors(t *testing.T) {
	assert.Equal(t, RGB{0x1e, 0x3a, 0x8a}, ParseColor("#1e3a8a", Black))
	assert.Equal(t, RGB{0xff, 0xaa, 0x00}, ParseColor("#fa0", Black))
	assert.Equal(t, White, ParseColor("nope", White))
	assert.Nil(t, OptionalColor(""))
	assert.Nil(t, OptionalColor("zzz"))
	require.NotNil(t, OptionalColor("#000"))
	assert.Equal(t, White, Black.Lighten(1))

	b, err := json.Marshal(RGB{R: 255})
	require.NoError(t, err)
	assert.Equal(t, `"#ff0000"`, string(b))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "court", truncate("court", 80))
	assert.Equal(t, "ab…", truncate("abcdef", 2))

	src := "data:image/png;base64,é" + strings.Repeat("à", 40)
	for n := 20; n < 30; n++ {
		out := truncate(src, n)
		assert.True(t, utf8.ValidString(out), "n=%d: %q", n, out)
		assert.True(t, strings.HasPrefix(src, strings.TrimSuffix(out, "…")))
	}
}
