package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/models"
	"github.com/diewo77/doc-designer/validation"
)

var (
	ErrTemplateNotFound = errors.New("template_not_found")
	ErrInvalidRequest   = errors.New("invalid_request")
)

// ValidationError carries field violations; it matches ErrInvalidRequest.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid_request: %d violation(s)", len(e.Violations))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// TemplateService stores whole block templates; there is no partial update.
type TemplateService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db, now: time.Now}
}

// TemplateSummary is a template listing entry.
type TemplateSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *TemplateService) List() ([]TemplateSummary, error) {
	var rows []models.DocumentTemplate
	if err := s.db.Select("id", "name", "updated_at").Order("updated_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := make([]TemplateSummary, len(rows))
	for i, r := range rows {
		out[i] = TemplateSummary{ID: r.ID, Name: r.Name, UpdatedAt: r.UpdatedAt}
	}
	return out, nil
}

func (s *TemplateService) Get(id string) (layout.Template, error) {
	var row models.DocumentTemplate
	err := s.db.First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return layout.Template{}, ErrTemplateNotFound
	}
	if err != nil {
		return layout.Template{}, fmt.Errorf("load template %s: %w", id, err)
	}
	return row.Template(), nil
}

// Create stores t under a new id unless it carries one.
func (s *TemplateService) Create(t layout.Template) (layout.Template, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := s.now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	if v := validation.Template(t); !v.Empty() {
		return t, &ValidationError{Violations: v}
	}
	row := models.FromTemplate(t)
	if err := s.db.Create(&row).Error; err != nil {
		return t, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// Save replaces template id with t, last write wins.
func (s *TemplateService) Save(id string, t layout.Template) (layout.Template, error) {
	prev, err := s.Get(id)
	if err != nil {
		return t, err
	}
	t.ID = id
	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = s.now().UTC()
	if v := validation.Template(t); !v.Empty() {
		return t, &ValidationError{Violations: v}
	}
	row := models.FromTemplate(t)
	if err := s.db.Save(&row).Error; err != nil {
		return t, fmt.Errorf("save template %s: %w", id, err)
	}
	return t, nil
}

func (s *TemplateService) Delete(id string) error {
	res := s.db.Delete(&models.DocumentTemplate{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete template %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
