package layout

// StylePatch changes only the style fields that are set.
type StylePatch struct {
	FontFamily *FontFamily `json:"font_family,omitempty"`
	FontSize   *float64    `json:"font_size,omitempty"`
	Color      *string     `json:"color,omitempty"`
	Background *string     `json:"background,omitempty"`
	Bold       *bool       `json:"bold,omitempty"`
	Italic     *bool       `json:"italic,omitempty"`
	Underline  *bool       `json:"underline,omitempty"`
	Align      *Alignment  `json:"align,omitempty"`
	ZIndex     *int        `json:"z_index,omitempty"`
}

// BlockPatch is a partial block update. Content, when set, must carry the
// block's own type; a mismatching variant is ignored.
type BlockPatch struct {
	X       *float64    `json:"x,omitempty"`
	Y       *float64    `json:"y,omitempty"`
	Width   *float64    `json:"width,omitempty"`
	Height  *float64    `json:"height,omitempty"`
	Style   *StylePatch `json:"style,omitempty"`
	Content Content     `json:"-"`
	Locked  *bool       `json:"locked,omitempty"`
}

// TouchesGeometry reports whether the patch moves, resizes or rewrites content.
func (p BlockPatch) TouchesGeometry() bool {
	return p.X != nil || p.Y != nil || p.Width != nil || p.Height != nil || p.Content != nil
}

// Apply merges p into b. When the block is locked (before the patch), the
// geometry and content fields are skipped; the returned bool reports it.
func (p BlockPatch) Apply(b *Block) (skipped bool) {
	if b.Locked && p.TouchesGeometry() {
		skipped = true
	} else {
		if p.X != nil {
			b.X = *p.X
		}
		if p.Y != nil {
			b.Y = *p.Y
		}
		if p.Width != nil {
			b.Width = max(*p.Width, 0)
		}
		if p.Height != nil {
			b.Height = max(*p.Height, 0)
		}
		if p.Content != nil && p.Content.Type() == b.Type() {
			b.Content = p.Content.cloneContent()
		}
	}
	if p.Style != nil {
		p.Style.apply(&b.Style)
	}
	if p.Locked != nil {
		b.Locked = *p.Locked
	}
	return skipped
}

func (p StylePatch) apply(s *Style) {
	if p.FontFamily != nil {
		s.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.Background != nil {
		s.Background = *p.Background
	}
	if p.Bold != nil {
		s.Bold = *p.Bold
	}
	if p.Italic != nil {
		s.Italic = *p.Italic
	}
	if p.Underline != nil {
		s.Underline = *p.Underline
	}
	if p.Align != nil {
		s.Align = *p.Align
	}
	if p.ZIndex != nil {
		z := *p.ZIndex
		s.ZIndex = &z
	}
}

// PageSettingsPatch changes only the page fields that are set.
type PageSettingsPatch struct {
	Format      *PaperFormat `json:"format,omitempty"`
	Orientation *Orientation `json:"orientation,omitempty"`
	Margins     *Margins     `json:"margins,omitempty"`
	GridSize    *float64     `json:"grid_size,omitempty"`
	ShowGrid    *bool        `json:"show_grid,omitempty"`
	SnapToGrid  *bool        `json:"snap_to_grid,omitempty"`
}

// Apply merges p into s.
func (p PageSettingsPatch) Apply(s *PageSettings) {
	if p.Format != nil {
		s.Format = *p.Format
	}
	if p.Orientation != nil {
		s.Orientation = *p.Orientation
	}
	if p.Margins != nil {
		s.Margins = *p.Margins
	}
	if p.GridSize != nil {
		s.GridSize = max(*p.GridSize, 0)
	}
	if p.ShowGrid != nil {
		s.ShowGrid = *p.ShowGrid
	}
	if p.SnapToGrid != nil {
		s.SnapToGrid = *p.SnapToGrid
	}
}

// Ptr returns a pointer to v, handy for building patches.
func Ptr[T any](v T) *T { return &v }
