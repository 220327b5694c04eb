package render

import (
	"github.com/diewo77/doc-designer/i18n"
	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/models"
)

// ColumnKey identifies a column of the items table.
type ColumnKey string

const (
	ColDescription ColumnKey = "description"
	ColDate        ColumnKey = "date"
	ColQuantity    ColumnKey = "quantity"
	ColUnitPrice   ColumnKey = "unit_price"
	ColVAT         ColumnKey = "vat"
	ColDiscount    ColumnKey = "discount"
	ColAmount      ColumnKey = "amount"
)

// Fixed widths (mm); the description takes what is left.
var columnWidths = map[ColumnKey]float64{
	ColDate:      22,
	ColQuantity:  14,
	ColUnitPrice: 26,
	ColVAT:       16,
	ColDiscount:  20,
	ColAmount:    28,
}

// ItemColumns returns the column set selected by the style switches.
// Description, unit price and amount are always present; the table theme
// has no influence on it.
func ItemColumns(style models.StyleTemplate) []ColumnKey {
	cols := []ColumnKey{ColDescription}
	if style.ShowDate {
		cols = append(cols, ColDate)
	}
	if style.ShowQuantity {
		cols = append(cols, ColQuantity)
	}
	cols = append(cols, ColUnitPrice)
	if style.ShowVAT {
		cols = append(cols, ColVAT)
	}
	if style.ShowDiscount {
		cols = append(cols, ColDiscount)
	}
	return append(cols, ColAmount)
}

func columnLabel(key ColumnKey, style models.StyleTemplate, labels i18n.Labels) string {
	if key == ColAmount && style.ShowLineTTC {
		return labels.Get("amount_ttc")
	}
	return labels.Get(string(key))
}

func columnAlign(key ColumnKey) layout.Alignment {
	switch key {
	case ColDescription:
		return layout.AlignLeft
	case ColDate, ColQuantity, ColVAT:
		return layout.AlignCenter
	}
	return layout.AlignRight
}

// cellValue formats one cell. Missing numbers print as zero and a missing
// date as an empty cell; nothing here rejects incomplete items.
func cellValue(key ColumnKey, it models.LineItem, style models.StyleTemplate, lang string) string {
	switch key {
	case ColDescription:
		return it.Description
	case ColDate:
		if it.Date == nil {
			return ""
		}
		return i18n.FormatDate(lang, *it.Date)
	case ColQuantity:
		return i18n.FormatQuantity(lang, it.Quantity)
	case ColUnitPrice:
		return i18n.FormatAmount(lang, it.UnitPrice)
	case ColVAT:
		return i18n.FormatPercent(lang, it.VATRate)
	case ColDiscount:
		return i18n.FormatAmount(lang, it.Discount)
	case ColAmount:
		if style.ShowLineTTC {
			return i18n.FormatAmount(lang, it.TotalTTC())
		}
		return i18n.FormatAmount(lang, it.TotalHT())
	}
	return ""
}
