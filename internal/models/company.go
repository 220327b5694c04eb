package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// CompanySettings is the issuer of invoices and quotes.
type CompanySettings struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identity
	Name      string `gorm:"size:255;not null" json:"name"`
	LegalForm string `gorm:"size:50" json:"legal_form,omitempty"`
	Capital   string `gorm:"size:100" json:"capital,omitempty"`
	Email     string `gorm:"size:255" json:"email,omitempty"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`

	// Address
	Address    string `gorm:"size:500" json:"address,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	PostalCode string `gorm:"size:20" json:"postal_code,omitempty"`
	Country    string `gorm:"size:100" json:"country,omitempty"`

	// Tax & legal information
	SIRET     string `gorm:"size:14" json:"siret,omitempty"`
	VATNumber string `gorm:"size:20" json:"vat_number,omitempty"`
	RCS       string `gorm:"size:100" json:"rcs,omitempty"`
	VATExempt bool   `json:"vat_exempt,omitempty"`

	// Payment
	BankName string `gorm:"size:100" json:"bank_name,omitempty"`
	IBAN     string `gorm:"size:34" json:"iban,omitempty"`
	BIC      string `gorm:"size:11" json:"bic,omitempty"`

	// Branding
	LogoURL string `gorm:"size:500" json:"logo_url,omitempty"`
}

// AddressLines returns the non-empty address lines.
func (c *CompanySettings) AddressLines() []string {
	return addressLines(c.Address, c.PostalCode, c.City, c.Country)
}

// OneLineAddress joins the address lines with commas.
func (c *CompanySettings) OneLineAddress() string {
	return strings.Join(c.AddressLines(), ", ")
}

// addressLines splits multi-line street addresses and appends
// "postal code city" and country when present.
func addressLines(street, postalCode, city, country string) []string {
	var lines []string
	for _, l := range strings.Split(street, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if pc := strings.TrimSpace(postalCode + " " + city); pc != "" {
		lines = append(lines, pc)
	}
	if country != "" {
		lines = append(lines, country)
	}
	return lines
}
