package render

import (
	"strings"

	"github.com/diewo77/doc-designer/i18n"
	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/models"
)

const (
	// RegionGap separates consecutive regions of a document.
	RegionGap = 6.0
	// TotalsWidth is the width of the totals box, right-aligned.
	TotalsWidth = 80.0

	logoWidth   = 45.0
	logoHeight  = 20.0
	ptToMM      = 25.4 / 72
	lineSpacing = 1.3
	footerSep   = " - "
)

// DocumentInput gathers everything the standard renderer reads. Logo holds
// the fetched company logo, nil when unavailable. Measure breaks text into
// lines; nil uses the core font metrics.
type DocumentInput struct {
	Document models.Document
	Style    models.StyleTemplate
	Company  models.CompanySettings
	Client   models.Client
	Logo     *Image
	Measure  Measurer
}

// Stage is one region of the document flow. Run receives the cursor where
// the region starts and returns where it ends with its draw calls; a stage
// returning no commands takes no space.
type Stage struct {
	Name string
	Run  func(y float64) (float64, []Command)
}

// DocumentStages returns the regions of in, in layout order.
func DocumentStages(in DocumentInput) []Stage {
	return newDocLayout(in).stages()
}

func (l *docLayout) stages() []Stage {
	return []Stage{
		{"siret", l.siret},
		{"header", l.header},
		{"parties", l.parties},
		{"items", l.items},
		{"totals", l.totals},
		{"payment", l.payment},
		{"footer", l.footer},
	}
}

// PlanDocument lays out an invoice or quote as draw commands. Each region
// starts RegionGap below the end of the previous non-empty one.
func PlanDocument(in DocumentInput) []Command {
	l := newDocLayout(in)
	cmds := []Command{PageCmd{Width: l.pageW, Height: l.pageH, Orientation: layout.Portrait}}
	y := l.top
	for _, st := range l.stages() {
		end, out := st.Run(y)
		if len(out) == 0 {
			continue
		}
		cmds = append(cmds, out...)
		y = end + RegionGap
	}
	return cmds
}

// RenderDocument plans in and replays it on s.
func RenderDocument(in DocumentInput, s Surface) ([]byte, error) {
	return Replay(s, PlanDocument(in))
}

type docLayout struct {
	in      DocumentInput
	labels  i18n.Labels
	lang    string
	measure Measurer

	pageW, pageH             float64
	top, right, bottom, left float64
	width                    float64

	family      layout.FontFamily
	base, title float64

	primary, secondary, text, accent RGB
}

func newDocLayout(in DocumentInput) *docLayout {
	st := in.Style
	lang := i18n.Normalize(st.Lang)
	size := layout.FormatA4.Size()
	l := &docLayout{
		in:        in,
		labels:    i18n.Labels{Lang: lang, Overrides: st.Labels},
		lang:      lang,
		pageW:     size.Width,
		pageH:     size.Height,
		top:       max(st.MarginTop, 0),
		right:     max(st.MarginRight, 0),
		bottom:    max(st.MarginBottom, 0),
		left:      max(st.MarginLeft, 0),
		family:    layout.FontFamily(strings.ToLower(st.FontFamily)),
		base:      st.BaseFontSize,
		title:     st.TitleFontSize,
		primary:   ParseColor(st.PrimaryColor, RGB{30, 58, 138}),
		secondary: ParseColor(st.SecondaryColor, RGB{229, 231, 235}),
		text:      ParseColor(st.TextColor, RGB{17, 24, 39}),
		accent:    ParseColor(st.AccentColor, RGB{37, 99, 235}),
	}
	l.width = l.pageW - l.left - l.right
	l.measure = in.Measure
	if l.measure == nil {
		l.measure = defaultMeasurer()
	}
	switch l.family {
	case layout.FontHelvetica, layout.FontTimes, layout.FontCourier:
	default:
		l.family = layout.FontHelvetica
	}
	if l.base <= 0 {
		l.base = 10
	}
	if l.title <= 0 {
		l.title = 20
	}
	return l
}

func (l *docLayout) lineHeight(size float64) float64 {
	return size * ptToMM * lineSpacing
}

func (l *docLayout) font(size float64, bold bool) Font {
	return Font{Family: l.family, Size: size, Bold: bold}
}

// textLine emits s wrapped to w, one command per line, and returns the
// cursor below the last line.
func (l *docLayout) textLine(cmds *[]Command, x, y, w float64, s string, f Font, color RGB, align layout.Alignment) float64 {
	h := l.lineHeight(f.Size)
	for _, line := range l.measure.Wrap(s, f, w) {
		*cmds = append(*cmds, TextCmd{X: x, Y: y, W: w, H: h, Runs: plain(line), Font: f, Color: color, Align: align})
		y += h
	}
	return y
}

// textHeight is the height textLine takes for s.
func (l *docLayout) textHeight(w float64, s string, f Font) float64 {
	return float64(len(l.measure.Wrap(s, f, w))) * l.lineHeight(f.Size)
}

func (l *docLayout) mode() models.HeaderLayout {
	switch l.in.Style.HeaderLayout {
	case models.LayoutCentered, models.LayoutMinimalist, models.LayoutModern:
		return l.in.Style.HeaderLayout
	}
	return models.LayoutStandard
}

func (l *docLayout) siret(y float64) (float64, []Command) {
	c := l.in.Company
	if !l.in.Style.ShowSiretTop || c.SIRET == "" {
		return y, nil
	}
	align := layout.AlignLeft
	if l.mode() == models.LayoutCentered {
		align = layout.AlignCenter
	}
	var cmds []Command
	end := l.textLine(&cmds, l.left, y, l.width, l.labels.Field("siret", c.SIRET), l.font(l.base-1, false), l.text, align)
	return end, cmds
}

func (l *docLayout) titleText() string {
	if l.in.Document.IsQuote() {
		return l.labels.Get("quote_title")
	}
	return l.labels.Get("invoice_title")
}

// dateLines are the issue date and, when set, the due or validity date.
func (l *docLayout) dateLines() []string {
	d := l.in.Document
	lines := []string{l.labels.Field("issue_date", i18n.FormatDate(l.lang, d.IssueDate))}
	if d.DueDate != nil {
		key := "due_date"
		if d.IsQuote() {
			key = "valid_until"
		}
		lines = append(lines, l.labels.Field(key, i18n.FormatDate(l.lang, *d.DueDate)))
	}
	return lines
}

// brand draws the logo in a logoWidth x logoHeight box, or the company name
// when no usable logo was supplied.
func (l *docLayout) brand(cmds *[]Command, x, y, w float64, align layout.Alignment) float64 {
	if logo := l.in.Logo; logo != nil && logo.Valid() {
		bx := x
		switch align {
		case layout.AlignCenter:
			bx = x + (w-logoWidth)/2
		case layout.AlignRight:
			bx = x + w - logoWidth
		}
		ix, iy, iw, ih := Contain(bx, y, logoWidth, logoHeight, *logo)
		*cmds = append(*cmds, ImageCmd{X: ix, Y: iy, W: iw, H: ih, Ref: l.in.Company.LogoURL, Image: *logo})
		return y + logoHeight
	}
	if l.in.Company.LogoURL != "" {
		Logger().Warn("logo unavailable, using company name", "company", l.in.Company.Name)
	}
	if l.in.Company.Name == "" {
		return y
	}
	return l.textLine(cmds, x, y, w, l.in.Company.Name, l.font(l.title*0.8, true), l.primary, align)
}

func (l *docLayout) header(y float64) (float64, []Command) {
	switch l.mode() {
	case models.LayoutCentered:
		return l.headerCentered(y)
	case models.LayoutMinimalist, models.LayoutModern:
		return l.headerSplit(y)
	}
	return l.headerStandard(y)
}

// headerStandard: brand on the left, title and references on the right.
func (l *docLayout) headerStandard(y float64) (float64, []Command) {
	var cmds []Command
	half := l.width / 2
	leftEnd := l.brand(&cmds, l.left, y, half, layout.AlignLeft)
	x := l.left + half
	ry := l.textLine(&cmds, x, y, half, l.titleText(), l.font(l.title, true), l.primary, layout.AlignRight)
	ry = l.textLine(&cmds, x, ry, half, l.labels.Field("number", l.in.Document.Number), l.font(l.base, true), l.text, layout.AlignRight)
	for _, s := range l.dateLines() {
		ry = l.textLine(&cmds, x, ry, half, s, l.font(l.base, false), l.text, layout.AlignRight)
	}
	return max(leftEnd, ry), cmds
}

// headerCentered stacks everything on the page axis.
func (l *docLayout) headerCentered(y float64) (float64, []Command) {
	var cmds []Command
	y = l.brand(&cmds, l.left, y, l.width, layout.AlignCenter)
	y += 2
	y = l.textLine(&cmds, l.left, y, l.width, l.titleText(), l.font(l.title, true), l.primary, layout.AlignCenter)
	y = l.textLine(&cmds, l.left, y, l.width, l.labels.Field("number", l.in.Document.Number), l.font(l.base, true), l.text, layout.AlignCenter)
	for _, s := range l.dateLines() {
		y = l.textLine(&cmds, l.left, y, l.width, s, l.font(l.base, false), l.text, layout.AlignCenter)
	}
	return y, cmds
}

// headerSplit serves minimalist and modern. Modern opens with an accent
// band carrying the title and number.
func (l *docLayout) headerSplit(y float64) (float64, []Command) {
	var cmds []Command
	half := l.width / 2
	if l.mode() == models.LayoutModern {
		band := l.lineHeight(l.title) + 4
		accent := l.accent
		cmds = append(cmds, RectCmd{X: l.left, Y: y, W: l.width, H: band, Fill: &accent})
		l.textLine(&cmds, l.left+4, y+2, half-4, l.titleText(), l.font(l.title, true), White, layout.AlignLeft)
		l.textLine(&cmds, l.left+half, y+2+(l.lineHeight(l.title)-l.lineHeight(l.base))/2, half-4,
			l.in.Document.Number, l.font(l.base, true), White, layout.AlignRight)
		y += band + 3
	} else {
		y = l.textLine(&cmds, l.left, y, l.width, l.titleText()+" "+l.in.Document.Number, l.font(l.base+2, true), l.text, layout.AlignLeft)
		y += 2
	}
	leftEnd := l.brand(&cmds, l.left, y, half, layout.AlignLeft)
	ry := y
	for _, s := range l.dateLines() {
		ry = l.textLine(&cmds, l.left+half, ry, half, s, l.font(l.base, false), l.text, layout.AlignRight)
	}
	return max(leftEnd, ry), cmds
}

func (l *docLayout) issuerLines() []string {
	c := l.in.Company
	lines := append([]string{}, c.AddressLines()...)
	if c.Email != "" {
		lines = append(lines, c.Email)
	}
	if c.Phone != "" {
		lines = append(lines, c.Phone)
	}
	return lines
}

func (l *docLayout) recipientLines() []string {
	c := l.in.Client
	var lines []string
	if c.Contact != "" {
		lines = append(lines, c.Contact)
	}
	lines = append(lines, c.AddressLines()...)
	if c.Email != "" {
		lines = append(lines, c.Email)
	}
	if c.VATNumber != "" {
		lines = append(lines, l.labels.Field("vat_number", c.VATNumber))
	}
	return lines
}

// recipientBox returns the recipient column for the current layout mode.
func (l *docLayout) recipientBox() (x, w float64, align layout.Alignment) {
	switch l.mode() {
	case models.LayoutMinimalist:
		return l.left + l.width*0.6, l.width * 0.4, layout.AlignRight
	case models.LayoutCentered:
		return l.left + l.width/2 + 5, l.width/2 - 5, layout.AlignCenter
	}
	return l.left + l.width/2 + 5, l.width/2 - 5, layout.AlignLeft
}

// party writes a labelled address column, one line at a time.
func (l *docLayout) party(cmds *[]Command, x, y, w float64, label, name string, lines []string, align layout.Alignment) float64 {
	y = l.textLine(cmds, x, y, w, label, l.font(l.base-1, true), l.primary, align)
	if name != "" {
		y = l.textLine(cmds, x, y, w, name, l.font(l.base, true), l.text, align)
	}
	for _, s := range lines {
		y = l.textLine(cmds, x, y, w, s, l.font(l.base, false), l.text, align)
	}
	return y
}

func (l *docLayout) parties(y float64) (float64, []Command) {
	var cmds []Command
	issuerAlign := layout.AlignLeft
	if l.mode() == models.LayoutCentered {
		issuerAlign = layout.AlignCenter
	}
	leftEnd := l.party(&cmds, l.left, y, l.width/2-5, l.labels.Get("issuer"), l.in.Company.Name, l.issuerLines(), issuerAlign)

	x, w, align := l.recipientBox()
	var rcmds []Command
	ry := y
	if l.mode() == models.LayoutModern {
		ry += 2
	}
	ry = l.party(&rcmds, x+l.pad(), ry, w-2*l.pad(), l.labels.Get("recipient"), l.in.Client.Name, l.recipientLines(), align)
	if l.mode() == models.LayoutModern {
		ry += 2
		fill := l.secondary
		cmds = append(cmds, RectCmd{X: x, Y: y, W: w, H: ry - y, Fill: &fill})
	}
	cmds = append(cmds, rcmds...)
	return max(leftEnd, ry), cmds
}

func (l *docLayout) pad() float64 {
	if l.mode() == models.LayoutModern {
		return 3
	}
	return 0
}

// itemWidths gives each fixed column its width and the description the rest.
func (l *docLayout) itemWidths(cols []ColumnKey) []float64 {
	widths := make([]float64, len(cols))
	used := 0.0
	for i, c := range cols {
		widths[i] = columnWidths[c]
		used += widths[i]
	}
	widths[0] = max(l.width-used, 20)
	return widths
}

// ItemsTable builds the line-items table command for in at y.
func ItemsTable(in DocumentInput, y float64) TableCmd {
	return newDocLayout(in).itemsTable(y)
}

func (l *docLayout) itemsTable(y float64) TableCmd {
	st := l.in.Style
	cols := ItemColumns(st)
	header := make([]string, len(cols))
	aligns := make([]layout.Alignment, len(cols))
	for i, c := range cols {
		header[i] = columnLabel(c, st, l.labels)
		aligns[i] = columnAlign(c)
	}
	widths := l.itemWidths(cols)
	font := l.font(l.base, false)
	lh := l.lineHeight(l.base)
	rows := make([][]string, len(l.in.Document.Items))
	heights := make([]float64, len(rows))
	for r, it := range l.in.Document.Items {
		row := make([]string, len(cols))
		lines := 1
		for i, c := range cols {
			row[i] = cellValue(c, it, st, l.lang)
			lines = max(lines, len(l.measure.Wrap(row[i], font, widths[i])))
		}
		rows[r] = row
		heights[r] = float64(lines)*lh + 2
	}
	t := TableCmd{
		X:           l.left,
		Y:           y,
		Widths:      widths,
		Header:      header,
		Rows:        rows,
		Aligns:      aligns,
		RowHeight:   lh + 2,
		Font:        font,
		TextColor:   l.text,
		HeaderColor: l.text,
		BorderWidth: st.BorderWidth,
		RowHeights:  heights,
		LineHeight:  lh,
	}
	if b := OptionalColor(st.BorderColor); b != nil {
		t.BorderColor = b
		if t.BorderWidth <= 0 {
			t.BorderWidth = minLineWidth
		}
	}
	if st.TableTheme == models.ThemeStriped {
		fill, stripe := l.primary, l.secondary.Lighten(0.5)
		t.HeaderFill = &fill
		t.HeaderColor = White
		t.StripeFill = &stripe
	} else {
		fill := l.secondary
		t.HeaderFill = &fill
	}
	return t
}

func (l *docLayout) items(y float64) (float64, []Command) {
	t := l.itemsTable(y)
	return y + t.Height(), []Command{t}
}

// totals: HT, VAT recomputed as TTC minus HT, then TTC unless the issuer is
// VAT exempt, in which case the exemption mention replaces it.
func (l *docLayout) totals(y float64) (float64, []Command) {
	d := l.in.Document
	var cmds []Command
	x := l.left + l.width - TotalsWidth
	half := TotalsWidth / 2
	row := func(label, value string, bold bool, color RGB) {
		f := l.font(l.base, bold)
		l.textLine(&cmds, x, y, half, label, f, color, layout.AlignLeft)
		y = l.textLine(&cmds, x+half, y, half, value, f, color, layout.AlignRight) + 1
	}
	row(l.labels.Get("total_ht"), i18n.FormatMoney(l.lang, d.TotalHT, d.Currency), false, l.text)
	row(l.labels.Get("total_vat"), i18n.FormatMoney(l.lang, d.TotalTTC-d.TotalHT, d.Currency), false, l.text)
	if l.in.Company.VATExempt {
		f := l.font(l.base-1, false)
		f.Italic = true
		y = l.textLine(&cmds, l.left, y, l.width, l.labels.Get("vat_exempt"), f, l.text, layout.AlignLeft)
		return y, cmds
	}
	cmds = append(cmds, LineCmd{X1: x, Y1: y, X2: x + TotalsWidth, Y2: y, Color: l.primary, Width: 0.3})
	y += 1
	row(l.labels.Get("total_ttc"), i18n.FormatMoney(l.lang, d.TotalTTC, d.Currency), true, l.primary)
	return y, cmds
}

// PaymentLines lists bank name, IBAN and BIC, skipping empty fields.
func PaymentLines(c models.CompanySettings, labels i18n.Labels) []string {
	var lines []string
	for _, f := range []struct{ key, value string }{
		{"bank", c.BankName},
		{"iban", c.IBAN},
		{"bic", c.BIC},
	} {
		if v := strings.TrimSpace(f.value); v != "" {
			lines = append(lines, labels.Field(f.key, v))
		}
	}
	return lines
}

// LegalFooter joins the legal fragments that are present with " - ".
func LegalFooter(c models.CompanySettings, labels i18n.Labels) string {
	var parts []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	add(strings.TrimSpace(c.Name + " " + c.LegalForm))
	if c.Capital != "" {
		add(labels.Field("capital", c.Capital))
	}
	add(c.OneLineAddress())
	if c.SIRET != "" {
		add(labels.Field("siret", c.SIRET))
	}
	if c.RCS != "" {
		add(labels.Field("rcs", c.RCS))
	}
	if c.VATNumber != "" {
		add(labels.Field("vat_number", c.VATNumber))
	}
	return strings.Join(parts, footerSep)
}

func (l *docLayout) paymentLines() []string {
	if !l.in.Style.ShowPaymentInfo {
		return nil
	}
	return PaymentLines(l.in.Company, l.labels)
}

func (l *docLayout) footerText() string {
	if !l.in.Style.ShowLegalFooter {
		return ""
	}
	return LegalFooter(l.in.Company, l.labels)
}

func (l *docLayout) paymentHeight(lines []string) float64 {
	if len(lines) == 0 {
		return 0
	}
	h := l.textHeight(l.width, l.labels.Get("payment_info"), l.font(l.base, true))
	for _, s := range lines {
		h += l.textHeight(l.width, s, l.font(l.base-1, false))
	}
	return h
}

func (l *docLayout) footerHeight(text string) float64 {
	return l.textHeight(l.width, text, l.font(l.base-2, false))
}

// trailerStart pins the payment and footer regions to the bottom margin in
// minimalist and modern layouts when they fit below y; otherwise they flow.
func (l *docLayout) trailerStart(y float64) float64 {
	if m := l.mode(); m != models.LayoutMinimalist && m != models.LayoutModern {
		return y
	}
	lines, text := l.paymentLines(), l.footerText()
	h := l.paymentHeight(lines)
	if len(lines) > 0 && text != "" {
		h += RegionGap
	}
	if text != "" {
		h += l.footerHeight(text)
	}
	if bottom := l.pageH - l.bottom; bottom-y > h {
		return bottom - h
	}
	return y
}

func (l *docLayout) payment(y float64) (float64, []Command) {
	lines := l.paymentLines()
	if len(lines) == 0 {
		return y, nil
	}
	y = l.trailerStart(y)
	var cmds []Command
	y = l.textLine(&cmds, l.left, y, l.width, l.labels.Get("payment_info"), l.font(l.base, true), l.primary, layout.AlignLeft)
	for _, s := range lines {
		y = l.textLine(&cmds, l.left, y, l.width, s, l.font(l.base-1, false), l.text, layout.AlignLeft)
	}
	return y, cmds
}

func (l *docLayout) footer(y float64) (float64, []Command) {
	text := l.footerText()
	if text == "" {
		return y, nil
	}
	if len(l.paymentLines()) == 0 {
		y = l.trailerStart(y)
	}
	var cmds []Command
	y = l.textLine(&cmds, l.left, y, l.width, text, l.font(l.base-2, false), l.text.Lighten(0.35), layout.AlignCenter)
	return y, cmds
}
