package models

import (
	"time"

	"gorm.io/gorm"
)

// DocumentKind distinguishes invoices from quotes.
type DocumentKind string

const (
	KindInvoice DocumentKind = "invoice"
	KindQuote   DocumentKind = "quote"
)

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusFinal     DocumentStatus = "final"
	StatusPaid      DocumentStatus = "paid"
	StatusCancelled DocumentStatus = "cancelled"
	StatusAccepted  DocumentStatus = "accepted"
	StatusRejected  DocumentStatus = "rejected"
)

// Document is an invoice or a quote. Rendering only reads it.
type Document struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Kind   DocumentKind   `gorm:"size:20;not null;default:'invoice'" json:"kind"`
	Number string         `gorm:"size:50;index" json:"number"`
	Status DocumentStatus `gorm:"size:20;default:'draft'" json:"status"`

	CompanyID uint             `gorm:"index" json:"company_id"`
	Company   *CompanySettings `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	ClientID  uint             `gorm:"index" json:"client_id"`
	Client    *Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	IssueDate time.Time `gorm:"not null" json:"issue_date"`
	// DueDate is the payment due date of an invoice or the validity date of a quote.
	DueDate *time.Time `json:"due_date,omitempty"`

	Currency string `gorm:"size:3;default:'EUR'" json:"currency,omitempty"`

	// Stored totals, kept in sync by the document service.
	TotalHT  float64 `json:"total_ht"`
	TotalTTC float64 `json:"total_ttc"`

	Items []LineItem `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"items"`
}

// IsQuote reports whether the document is a quote.
func (d *Document) IsQuote() bool { return d.Kind == KindQuote }

// TotalVAT is derived from the stored totals, never summed from lines.
func (d *Document) TotalVAT() float64 { return d.TotalTTC - d.TotalHT }

// LineItem is one row of a document.
type LineItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	DocumentID uint `gorm:"index;not null" json:"-"`

	Description string     `gorm:"size:500" json:"description"`
	Quantity    float64    `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	VATRate     float64    `json:"vat_rate"`
	Discount    float64    `json:"discount,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Position    int        `gorm:"default:0" json:"position,omitempty"`
}

// TotalHT is quantity × unit price minus the discount, which is an
// absolute amount capped at the gross line amount.
func (it *LineItem) TotalHT() float64 {
	gross := it.Quantity * it.UnitPrice
	if it.Discount > 0 && gross > 0 {
		return gross - min(it.Discount, gross)
	}
	return gross
}

// TotalVAT is the VAT of the line.
func (it *LineItem) TotalVAT() float64 {
	return it.TotalHT() * it.VATRate
}

// TotalTTC is the line amount including VAT.
func (it *LineItem) TotalTTC() float64 {
	return it.TotalHT() + it.TotalVAT()
}
