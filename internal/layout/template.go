// Package layout holds the free-form document template model: page settings
// and an ordered list of positioned blocks, all measured in millimeters.
package layout

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDuplicateBlockID = errors.New("duplicate_block_id")
	ErrEmptyBlockID     = errors.New("empty_block_id")
	ErrUnknownBlockType = errors.New("unknown_block_type")
	ErrNegativeSize     = errors.New("negative_block_size")
)

// PaperFormat is one of the supported fixed paper sizes.
type PaperFormat string

const (
	FormatA4     PaperFormat = "A4"
	FormatLetter PaperFormat = "Letter"
)

// Orientation of the page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Size is a width/height pair in millimeters.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var paperSizes = map[PaperFormat]Size{
	FormatA4:     {Width: 210, Height: 297},
	FormatLetter: {Width: 215.9, Height: 279.4},
}

// Size returns the portrait dimensions of the format, A4 for unknown values.
func (f PaperFormat) Size() Size {
	if s, ok := paperSizes[f]; ok {
		return s
	}
	return paperSizes[FormatA4]
}

// Margins in millimeters.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// PageSettings describes the single page of a template.
type PageSettings struct {
	Format      PaperFormat `json:"format"`
	Orientation Orientation `json:"orientation"`
	Margins     Margins     `json:"margins"`
	GridSize    float64     `json:"grid_size"`
	ShowGrid    bool        `json:"show_grid"`
	SnapToGrid  bool        `json:"snap_to_grid"`
}

// PageSize returns the oriented page dimensions.
func (p PageSettings) PageSize() Size {
	s := p.Format.Size()
	if p.Orientation == Landscape {
		s.Width, s.Height = s.Height, s.Width
	}
	return s
}

// DefaultPageSettings is an A4 portrait page with 15mm margins and a 5mm grid.
func DefaultPageSettings() PageSettings {
	return PageSettings{
		Format:      FormatA4,
		Orientation: Portrait,
		Margins:     Margins{Top: 15, Right: 15, Bottom: 15, Left: 15},
		GridSize:    5,
		ShowGrid:    true,
		SnapToGrid:  false,
	}
}

// Template is an editable free-form document template.
type Template struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Page      PageSettings `json:"page"`
	Blocks    []Block      `json:"blocks"`
}

// New returns an empty template with default page settings.
func New(id, name string, now time.Time) Template {
	return Template{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Page:      DefaultPageSettings(),
		Blocks:    []Block{},
	}
}

// Clone returns a deep copy sharing no mutable state with t.
func (t Template) Clone() Template {
	c := t
	c.Blocks = make([]Block, len(t.Blocks))
	for i, b := range t.Blocks {
		c.Blocks[i] = b.Clone()
	}
	return c
}

// IndexOf returns the position of the block with the given id, or -1.
func (t *Template) IndexOf(id string) int {
	for i := range t.Blocks {
		if t.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// Block returns a copy of the block with the given id.
func (t *Template) Block(id string) (Block, bool) {
	i := t.IndexOf(id)
	if i < 0 {
		return Block{}, false
	}
	return t.Blocks[i].Clone(), true
}

// Validate checks the structural invariants expected from persisted or
// imported templates. Column width percentages are intentionally not checked.
func (t *Template) Validate() error {
	seen := make(map[string]struct{}, len(t.Blocks))
	for i, b := range t.Blocks {
		if b.ID == "" {
			return fmt.Errorf("block %d: %w", i, ErrEmptyBlockID)
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("block %q: %w", b.ID, ErrDuplicateBlockID)
		}
		seen[b.ID] = struct{}{}
		if b.Content == nil {
			return fmt.Errorf("block %q: %w", b.ID, ErrUnknownBlockType)
		}
		if b.Width < 0 || b.Height < 0 {
			return fmt.Errorf("block %q: %w", b.ID, ErrNegativeSize)
		}
	}
	return nil
}
