package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Client is the recipient of invoices and quotes.
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Contact string `gorm:"size:255" json:"contact,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`

	Address    string `gorm:"size:500" json:"address,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	PostalCode string `gorm:"size:20" json:"postal_code,omitempty"`
	Country    string `gorm:"size:100" json:"country,omitempty"`

	VATNumber string `gorm:"size:20" json:"vat_number,omitempty"`
}

// AddressLines returns the non-empty address lines.
func (c *Client) AddressLines() []string {
	return addressLines(c.Address, c.PostalCode, c.City, c.Country)
}

// FullAddress returns the address lines joined by newlines.
func (c *Client) FullAddress() string {
	return strings.Join(c.AddressLines(), "\n")
}
