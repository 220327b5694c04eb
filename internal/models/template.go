package models

import (
	"time"

	"github.com/diewo77/doc-designer/internal/layout"
)

// DocumentTemplate persists a whole free-form template. The block tree is
// stored as one JSON column; it is always read and written as a unit.
type DocumentTemplate struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Body      layout.Template `gorm:"serializer:json" json:"template"`
}

// FromTemplate wraps t for persistence.
func FromTemplate(t layout.Template) DocumentTemplate {
	return DocumentTemplate{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Body:      t.Clone(),
	}
}

// Template returns the stored template with the record's identity.
func (r DocumentTemplate) Template() layout.Template {
	t := r.Body.Clone()
	t.ID = r.ID
	t.Name = r.Name
	t.CreatedAt = r.CreatedAt
	t.UpdatedAt = r.UpdatedAt
	return t
}
