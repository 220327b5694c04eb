package i18n

import (
	"context"
	"testing"
	"time"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "fr" {
		t.Fatalf("expected fr fallback")
	}
	if DetectLanguage("") != "fr" {
		t.Fatalf("expected default fr")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("fr", "required") != "Requis" {
		t.Fatalf("expected Requis")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to fr translation if exists
	if T("es", "required") != "Requis" {
		t.Fatalf("expected fr fallback for es lang")
	}
}

func TestLabelsOverride(t *testing.T) {
	l := Labels{Lang: "fr", Overrides: map[string]string{"invoice_title": "Facture client", "quote_title": ""}}
	if got := l.Get("invoice_title"); got != "Facture client" {
		t.Fatalf("override ignored: %q", got)
	}
	if got := l.Get("quote_title"); got != "DEVIS" {
		t.Fatalf("empty override should fall back: %q", got)
	}
	if got := l.Field("rcs", "Paris B 123"); got != "RCS : Paris B 123" {
		t.Fatalf("unexpected field %q", got)
	}
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"fr amount", FormatAmount("fr", 1234.5), "1234,50"},
		{"en amount", FormatAmount("en", 1234.5), "1234.50"},
		{"negative zero", FormatAmount("fr", -0.001), "0,00"},
		{"whole quantity", FormatQuantity("fr", 3), "3"},
		{"fractional quantity", FormatQuantity("fr", 1.5), "1,50"},
		{"percent", FormatPercent("fr", 0.2), "20 %"},
		{"money", FormatMoney("en", 10, "usd"), "10.00 $"},
		{"money default", FormatMoney("fr", 10, ""), "10,00 €"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestFormatDateAndContext(t *testing.T) {
	d := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	if FormatDate("fr", d) != "07/03/2025" || FormatDate("en", d) != "2025-03-07" {
		t.Fatalf("unexpected date formats")
	}
	if LangFrom(context.Background()) != DefaultLang {
		t.Fatalf("expected default lang")
	}
	if LangFrom(WithLang(context.Background(), "en")) != "en" {
		t.Fatalf("expected en from context")
	}
}
