package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/doc-designer/i18n"
)

// runeMeasurer gives every rune the same advance, in mm.
type runeMeasurer float64

func (m runeMeasurer) Wrap(text string, _ Font, width float64) []string {
	return WrapLines(text, width-2*CellPadding, m.width)
}

func (m runeMeasurer) width(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * float64(m)
}

func TestWrapLines(t *testing.T) {
	w := runeMeasurer(1).width
	assert.Equal(t, []string{""}, WrapLines("", 10, w))
	assert.Equal(t, []string{"un deux", "trois"}, WrapLines("un deux trois", 8, w))
	assert.Equal(t, []string{"a", "b c"}, WrapLines("a\nb c", 10, w))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, WrapLines("abcdefghij", 4, w))
	assert.Equal(t, []string{"éèàç", "ùô"}, WrapLines("éèàçùô", 4, w))
	assert.Equal(t, []string{"x"}, WrapLines("x", 0, w), "one rune per line at worst")
	assert.Equal(t, []string{"a\u00a0b", "c"}, WrapLines("a\u00a0b c", 3, w))
}

func TestCoreFontMeasurerStaysInsideWidth(t *testing.T) {
	m := NewCoreFontMeasurer()
	f := Font{Size: 10}
	text := "Intégration continue, revue de code et accompagnement des équipes sur trois sprints"
	lines := m.Wrap(text, f, 50)
	require.Greater(t, len(lines), 1)
	assert.Equal(t, text, strings.Join(lines, " "))

	m.pdf.SetFont("Helvetica", "", 10)
	for _, l := range lines {
		assert.LessOrEqual(t, m.pdf.GetStringWidth(m.tr(l)), 50-2*CellPadding, l)
	}
	assert.Equal(t, []string{"court"}, m.Wrap("court", f, 50))
}

func TestLongRecipientAddressWrapsAndPushesItems(t *testing.T) {
	const street = "Zone d'activité des Grandes Terres, bâtiment C, troisième étage, porte gauche"
	plan := func(address string) ([]TextCmd, TableCmd) {
		in := sampleInput()
		in.Measure = runeMeasurer(2)
		in.Client.Address = address
		cmds := PlanDocument(in)
		label, ok := findText(cmds, i18n.T("fr", "recipient"))
		require.True(t, ok)
		var column []TextCmd
		for _, c := range cmds {
			if tc, ok := c.(TextCmd); ok && tc.X == label.X && tc.Y >= label.Y {
				column = append(column, tc)
			}
		}
		tbl := tables(cmds)
		require.Len(t, tbl, 1)
		return column, tbl[0]
	}

	short, shortTable := plan("2 avenue Foch")
	long, longTable := plan(street)

	var joined []string
	for i, tc := range long {
		joined = append(joined, tc.Text())
		assert.LessOrEqual(t, float64(utf8.RuneCountInString(tc.Text()))*2, tc.W-2*CellPadding, tc.Text())
		if i > 0 {
			prev := long[i-1]
			assert.GreaterOrEqual(t, tc.Y, prev.Y+prev.H-1e-9, "lines overlap")
		}
	}
	assert.Contains(t, strings.Join(joined, " "), street)
	assert.GreaterOrEqual(t, len(long), len(short)+1)

	extra := float64(len(long)-len(short)) * long[len(long)-1].H
	assert.Greater(t, longTable.Y, shortTable.Y)
	assert.InDelta(t, shortTable.Y+extra, longTable.Y, 1e-9)
}

func TestItemRowsGrowToFitDescription(t *testing.T) {
	in := sampleInput()
	in.Measure = runeMeasurer(2)
	desc := strings.Repeat("Maintenance applicative et support utilisateur. ", 4) + "Fin."
	in.Document.Items[0].Description = desc
	cmds := PlanDocument(in)
	tbl := tables(cmds)
	require.Len(t, tbl, 1)
	tb := tbl[0]

	require.True(t, tb.Wrapped())
	assert.Equal(t, desc, tb.Rows[0][0])
	lines := in.Measure.Wrap(desc, tb.Font, tb.Widths[0])
	require.Greater(t, len(lines), 1)
	assert.InDelta(t, float64(len(lines))*tb.LineHeight+2, tb.RowHeights[0], 1e-9)
	assert.InDelta(t, tb.RowHeight, tb.RowHeights[1], 1e-9)
	assert.InDelta(t, tb.RowHeight+tb.RowHeights[0]+tb.RowHeights[1], tb.Height(), 1e-9)

	ht, ok := findText(cmds, i18n.T("fr", "total_ht"))
	require.True(t, ok)
	assert.InDelta(t, tb.Y+tb.Height()+RegionGap, ht.Y, 1e-9)
}
