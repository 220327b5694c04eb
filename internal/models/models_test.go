package models

import (
	"testing"
	"time"

	"github.com/diewo77/doc-designer/internal/layout"
)

func TestClient_FullAddress(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   string
	}{
		{
			name: "full address",
			client: Client{
				Address:    "123 Main St",
				PostalCode: "75001",
				City:       "Paris",
				Country:    "France",
			},
			want: "123 Main St\n75001 Paris\nFrance",
		},
		{
			name:   "only city",
			client: Client{City: "Paris"},
			want:   "Paris",
		},
		{
			name:   "multi-line street",
			client: Client{Address: "Bât. B\n 12 rue des Lilas ", City: "Lyon"},
			want:   "Bât. B\n12 rue des Lilas\nLyon",
		},
		{
			name:   "empty",
			client: Client{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.FullAddress(); got != tt.want {
				t.Errorf("FullAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompany_OneLineAddress(t *testing.T) {
	c := CompanySettings{Address: "1 rue de la Paix", PostalCode: "75002", City: "Paris"}
	if got := c.OneLineAddress(); got != "1 rue de la Paix, 75002 Paris" {
		t.Errorf("OneLineAddress() = %q", got)
	}
}

func TestLineItem_Totals(t *testing.T) {
	tests := []struct {
		name    string
		item    LineItem
		wantHT  float64
		wantTTC float64
	}{
		{"plain", LineItem{Quantity: 5, UnitPrice: 20, VATRate: 0.20}, 100, 120},
		{"discount", LineItem{Quantity: 2, UnitPrice: 50, VATRate: 0.10, Discount: 10}, 90, 99},
		{"discount capped", LineItem{Quantity: 1, UnitPrice: 30, Discount: 50}, 0, 0},
		{"missing values", LineItem{Description: "x"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.TotalHT(); got != tt.wantHT {
				t.Errorf("TotalHT() = %f, want %f", got, tt.wantHT)
			}
			if got := tt.item.TotalTTC(); diff(got, tt.wantTTC) > 0.001 {
				t.Errorf("TotalTTC() = %f, want %f", got, tt.wantTTC)
			}
		})
	}
}

func TestDocument_TotalVATUsesStoredTotals(t *testing.T) {
	d := Document{TotalHT: 100, TotalTTC: 119.6, Items: []LineItem{{Quantity: 1, UnitPrice: 100, VATRate: 0.2}}}
	if got := d.TotalVAT(); diff(got, 19.6) > 0.0001 {
		t.Errorf("TotalVAT() = %f, want 19.6", got)
	}
}

func TestDocumentTemplate_RoundTrip(t *testing.T) {
	tpl := layout.New("tpl-1", "Facture", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	tpl.Blocks = append(tpl.Blocks, layout.NewBlock("b1", layout.TypeText, 1, 2))
	rec := FromTemplate(tpl)
	rec.Name = "Renamed"
	got := rec.Template()
	if got.Name != "Renamed" || got.ID != "tpl-1" || len(got.Blocks) != 1 {
		t.Errorf("unexpected template %+v", got)
	}
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
