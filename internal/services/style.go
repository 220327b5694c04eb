package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/doc-designer/internal/models"
)

var ErrStyleNotFound = errors.New("style_not_found")

type StyleService struct {
	db *gorm.DB
}

func NewStyleService(db *gorm.DB) *StyleService { return &StyleService{db: db} }

func (s *StyleService) List() ([]models.StyleTemplate, error) {
	var out []models.StyleTemplate
	if err := s.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list styles: %w", err)
	}
	return out, nil
}

// Get returns style id; id 0 selects the default style, falling back to
// the built-in one when none is stored.
func (s *StyleService) Get(id uint) (models.StyleTemplate, error) {
	var st models.StyleTemplate
	var err error
	if id == 0 {
		err = s.db.Where("is_default = ?", true).First(&st).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultStyleTemplate(), nil
		}
	} else {
		err = s.db.First(&st, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return st, ErrStyleNotFound
		}
	}
	if err != nil {
		return st, fmt.Errorf("load style %d: %w", id, err)
	}
	return st, nil
}

func (s *StyleService) Create(st *models.StyleTemplate) error {
	st.ID = 0
	return s.save(st)
}

// Update replaces style id with st. Marking it default clears the flag on
// the others.
func (s *StyleService) Update(id uint, st *models.StyleTemplate) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	st.ID = id
	return s.save(st)
}

func (s *StyleService) save(st *models.StyleTemplate) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if st.IsDefault {
			if err := tx.Model(&models.StyleTemplate{}).Where("is_default = ?", true).Update("is_default", false).Error; err != nil {
				return fmt.Errorf("clear default style: %w", err)
			}
		}
		if err := tx.Save(st).Error; err != nil {
			return fmt.Errorf("save style: %w", err)
		}
		return nil
	})
}
