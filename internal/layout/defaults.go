package layout

// DefaultX and DefaultY place new blocks inside the default margins.
const (
	DefaultX = 20.0
	DefaultY = 20.0
)

// PlaceholderText is the initial markup of a new text block.
const PlaceholderText = "Double-cliquez pour modifier le texte"

// DefaultStyle is the style of freshly created blocks.
func DefaultStyle() Style {
	return Style{
		FontFamily: FontHelvetica,
		FontSize:   12,
		Color:      "#1f2937",
		Align:      AlignLeft,
	}
}

// NewBlock builds a block of the given type with its type-specific defaults.
func NewBlock(id string, typ BlockType, x, y float64) Block {
	b := Block{ID: id, X: x, Y: y, Style: DefaultStyle()}
	switch typ {
	case TypeText:
		b.Width, b.Height = 80, 10
		b.Content = TextContent{Markup: PlaceholderText}
	case TypeImage:
		b.Width, b.Height = 40, 40
		b.Content = ImageContent{}
	case TypeTable:
		b.Width, b.Height = 170, 40
		b.Style.FontSize = 10
		b.Content = TableContent{
			ShowHeader: true,
			Columns: []Column{
				{ID: "description", Header: "Description", WidthPercent: 40},
				{ID: "quantity", Header: "Quantité", WidthPercent: 20},
				{ID: "unit_price", Header: "Prix unitaire", WidthPercent: 20},
				{ID: "total", Header: "Total", WidthPercent: 20},
			},
		}
	case TypeShape:
		b.Width, b.Height = 40, 20
		b.Style.Background = "#e5e7eb"
		b.Content = ShapeContent{}
	case TypeLine:
		b.Width, b.Height = 100, 0.5
		b.Content = LineContent{}
	default:
		b.Width, b.Height = 40, 10
		b.Content = ShapeContent{}
	}
	return b
}
