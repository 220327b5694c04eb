package db

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/diewo77/doc-designer/internal/config"
	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/models"
)

func memoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := Connect(config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, slog.Default())
	require.NoError(t, err)
	require.NoError(t, Migrate(d))
	return d
}

func TestSeedIdempotent(t *testing.T) {
	d := memoryDB(t)
	require.NoError(t, Seed(d))
	require.NoError(t, Seed(d))

	var styles, templates int64
	d.Model(&models.StyleTemplate{}).Count(&styles)
	d.Model(&models.DocumentTemplate{}).Count(&templates)
	if styles != 1 || templates != 1 {
		t.Fatalf("seed duplicated or missing rows: styles=%d templates=%d", styles, templates)
	}

	var row models.DocumentTemplate
	require.NoError(t, d.First(&row, "id = ?", DefaultTemplateID).Error)
	tpl := row.Template()
	require.NoError(t, tpl.Validate())
	assert.Len(t, tpl.Blocks, 4)
	assert.Equal(t, layout.TypeTable, tpl.Blocks[2].Type())

	var style models.StyleTemplate
	require.NoError(t, d.First(&style).Error)
	assert.True(t, style.IsDefault)
	assert.Equal(t, models.ThemeStriped, style.TableTheme)
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "oracle"}, slog.Default())
	assert.Error(t, err)
}

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  'postgres://u:p@h:5432/db'  ", "postgres://u:p@h:5432/db"},
		{"host=h   user=u dbname=d", "host=h user=u dbname=d sslmode=disable"},
		{"host=h sslmode=require", "host=h sslmode=require"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDSN(tt.in), tt.in)
	}
}
