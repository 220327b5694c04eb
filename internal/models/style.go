package models

import (
	"time"

	"gorm.io/gorm"
)

// HeaderLayout selects the header arrangement of a rendered document.
type HeaderLayout string

const (
	LayoutStandard   HeaderLayout = "standard"
	LayoutCentered   HeaderLayout = "centered"
	LayoutMinimalist HeaderLayout = "minimalist"
	LayoutModern     HeaderLayout = "modern"
)

// TableTheme controls the header fill and borders of the items table.
type TableTheme string

const (
	ThemePlain   TableTheme = "plain"
	ThemeStriped TableTheme = "striped"
)

// StyleTemplate is the flat configuration of standard invoice/quote
// rendering. It is unrelated to block templates.
type StyleTemplate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name      string `gorm:"size:100;not null" json:"name"`
	IsDefault bool   `json:"is_default,omitempty"`
	Lang      string `gorm:"size:5;default:'fr'" json:"lang,omitempty"`

	// Page margins in millimeters.
	MarginTop    float64 `json:"margin_top"`
	MarginRight  float64 `json:"margin_right"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left"`

	PrimaryColor   string `gorm:"size:9" json:"primary_color"`
	SecondaryColor string `gorm:"size:9" json:"secondary_color"`
	TextColor      string `gorm:"size:9" json:"text_color"`
	AccentColor    string `gorm:"size:9" json:"accent_color"`

	FontFamily    string  `gorm:"size:20" json:"font_family"`
	BaseFontSize  float64 `json:"base_font_size"`
	TitleFontSize float64 `json:"title_font_size"`

	HeaderLayout HeaderLayout `gorm:"size:20;default:'standard'" json:"header_layout"`
	TableTheme   TableTheme   `gorm:"size:20;default:'plain'" json:"table_theme"`
	BorderColor  string       `gorm:"size:9" json:"border_color,omitempty"`
	BorderWidth  float64      `json:"border_width,omitempty"`

	// Optional columns of the items table.
	ShowDate     bool `json:"show_date"`
	ShowQuantity bool `json:"show_quantity"`
	ShowVAT      bool `json:"show_vat"`
	ShowDiscount bool `json:"show_discount"`
	ShowLineTTC  bool `json:"show_line_ttc"`

	// Optional regions.
	ShowSiretTop    bool `json:"show_siret_top"`
	ShowPaymentInfo bool `json:"show_payment_info"`
	ShowLegalFooter bool `json:"show_legal_footer"`

	// Labels overrides the built-in document labels by key.
	Labels map[string]string `gorm:"serializer:json" json:"labels,omitempty"`
}

// DefaultStyleTemplate is the style seeded on first start and used when
// no style is requested.
func DefaultStyleTemplate() StyleTemplate {
	return StyleTemplate{
		Name:            "Standard",
		IsDefault:       true,
		Lang:            "fr",
		MarginTop:       15,
		MarginRight:     15,
		MarginBottom:    15,
		MarginLeft:      15,
		PrimaryColor:    "#1e3a8a",
		SecondaryColor:  "#e5e7eb",
		TextColor:       "#111827",
		AccentColor:     "#2563eb",
		FontFamily:      "helvetica",
		BaseFontSize:    10,
		TitleFontSize:   20,
		HeaderLayout:    LayoutStandard,
		TableTheme:      ThemeStriped,
		ShowQuantity:    true,
		ShowVAT:         true,
		ShowPaymentInfo: true,
		ShowLegalFooter: true,
		Labels:          map[string]string{},
	}
}
