package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/doc-designer/internal/models"
)

var ErrDocumentNotFound = errors.New("document_not_found")

type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

// ComputeTotals calculates HT, TVA, and TTC for a document.
func (s *DocumentService) ComputeTotals(doc *models.Document) (ht, tva, ttc float64) {
	for _, item := range doc.Items {
		ht += item.TotalHT()
		tva += item.TotalVAT()
	}
	ttc = ht + tva
	return
}

// Get loads a document with its issuer, recipient and ordered items.
func (s *DocumentService) Get(id uint) (*models.Document, error) {
	var doc models.Document
	err := s.db.
		Preload("Company").
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document %d: %w", id, err)
	}
	return &doc, nil
}

// Create stores doc and its items with freshly computed totals.
func (s *DocumentService) Create(doc *models.Document) error {
	for i := range doc.Items {
		doc.Items[i].Position = i
	}
	doc.TotalHT, _, doc.TotalTTC = s.ComputeTotals(doc)
	if err := s.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// Recalculate refreshes the stored totals of document id from its items.
func (s *DocumentService) Recalculate(id uint) (*models.Document, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	doc.TotalHT, _, doc.TotalTTC = s.ComputeTotals(doc)
	if err := s.db.Model(doc).Updates(map[string]any{"total_ht": doc.TotalHT, "total_ttc": doc.TotalTTC}).Error; err != nil {
		return nil, fmt.Errorf("update totals %d: %w", id, err)
	}
	return doc, nil
}
