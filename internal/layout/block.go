package layout

// BlockType discriminates the content carried by a block.
type BlockType string

const (
	TypeText  BlockType = "text"
	TypeImage BlockType = "image"
	TypeTable BlockType = "table"
	TypeShape BlockType = "shape"
	TypeLine  BlockType = "line"
)

// Valid reports whether t is a known block type.
func (t BlockType) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeTable, TypeShape, TypeLine:
		return true
	}
	return false
}

// FontFamily is restricted to the core PDF fonts.
type FontFamily string

const (
	FontHelvetica FontFamily = "helvetica"
	FontTimes     FontFamily = "times"
	FontCourier   FontFamily = "courier"
)

// Alignment of text inside its box.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Style is the visual style of a block.
type Style struct {
	FontFamily FontFamily `json:"font_family"`
	FontSize   float64    `json:"font_size"`
	Color      string     `json:"color"`
	Background string     `json:"background,omitempty"`
	Bold       bool       `json:"bold,omitempty"`
	Italic     bool       `json:"italic,omitempty"`
	Underline  bool       `json:"underline,omitempty"`
	Align      Alignment  `json:"align"`
	ZIndex     *int       `json:"z_index,omitempty"`
}

func (s Style) clone() Style {
	if s.ZIndex != nil {
		z := *s.ZIndex
		s.ZIndex = &z
	}
	return s
}

// Content is the type-specific payload of a block. The set of
// implementations is closed: TextContent, ImageContent, TableContent,
// ShapeContent and LineContent.
type Content interface {
	Type() BlockType
	cloneContent() Content
}

// TextContent holds rich inline markup (<b>, <i>, <u>, <br>).
type TextContent struct {
	Markup string `json:"markup"`
}

// ImageContent references an image by URL or data URI.
type ImageContent struct {
	Source string `json:"source"`
}

// Column of a table block. WidthPercent is relative to the block width.
type Column struct {
	ID           string  `json:"id"`
	Header       string  `json:"header"`
	WidthPercent float64 `json:"width_percent"`
}

// TableContent is a structural table preview.
type TableContent struct {
	Columns    []Column `json:"columns"`
	ShowHeader bool     `json:"show_header"`
}

// ShapeContent is a filled rectangle.
type ShapeContent struct{}

// LineContent is a horizontal rule.
type LineContent struct{}

func (TextContent) Type() BlockType  { return TypeText }
func (ImageContent) Type() BlockType { return TypeImage }
func (TableContent) Type() BlockType { return TypeTable }
func (ShapeContent) Type() BlockType { return TypeShape }
func (LineContent) Type() BlockType  { return TypeLine }

func (c TextContent) cloneContent() Content  { return c }
func (c ImageContent) cloneContent() Content { return c }
func (c ShapeContent) cloneContent() Content { return c }
func (c LineContent) cloneContent() Content  { return c }

func (c TableContent) cloneContent() Content {
	cols := make([]Column, len(c.Columns))
	copy(cols, c.Columns)
	c.Columns = cols
	return c
}

// Block is one positioned, styled element of a template.
type Block struct {
	ID      string
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Style   Style
	Content Content
	Locked  bool
}

// Type returns the discriminator of the block content.
func (b Block) Type() BlockType {
	if b.Content == nil {
		return ""
	}
	return b.Content.Type()
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	c := b
	c.Style = b.Style.clone()
	if b.Content != nil {
		c.Content = b.Content.cloneContent()
	}
	return c
}
