package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/models"
)

// DefaultTemplateID is the id of the seeded block template.
const DefaultTemplateID = "default"

// Migrate runs AutoMigrate for all models.
// Call this at application startup or as part of a migration step.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.CompanySettings{},
		&models.Client{},
		&models.Document{},
		&models.LineItem{},
		&models.StyleTemplate{},
		&models.DocumentTemplate{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Seed creates the default style template and a starter block template.
// Existing rows are left untouched, so it is safe to run on every start.
func Seed(db *gorm.DB) error {
	var style models.StyleTemplate
	err := db.Where("is_default = ?", true).First(&style).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		style = models.DefaultStyleTemplate()
		if err := db.Create(&style).Error; err != nil {
			return fmt.Errorf("seed style: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("seed style: %w", err)
	}

	var count int64
	if err := db.Model(&models.DocumentTemplate{}).Where("id = ?", DefaultTemplateID).Count(&count).Error; err != nil {
		return fmt.Errorf("seed template: %w", err)
	}
	if count == 0 {
		row := models.FromTemplate(starterTemplate(time.Now().UTC()))
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("seed template: %w", err)
		}
	}
	return nil
}

// starterTemplate is a title, a logo slot, an items table and a rule.
func starterTemplate(now time.Time) layout.Template {
	t := layout.New(DefaultTemplateID, "Modèle standard", now)
	title := layout.NewBlock("title", layout.TypeText, 15, 15)
	title.Content = layout.TextContent{Markup: "<b>FACTURE</b>"}
	title.Style.FontSize = 20
	logo := layout.NewBlock("logo", layout.TypeImage, 155, 15)
	items := layout.NewBlock("items", layout.TypeTable, 15, 90)
	rule := layout.NewBlock("rule", layout.TypeLine, 15, 270)
	rule.Width = 180
	t.Blocks = append(t.Blocks, title, logo, items, rule)
	return t
}
