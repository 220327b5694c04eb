// Package i18n holds the translated labels used on rendered documents and
// API messages, and the locale rules for numbers and dates.
package i18n

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DefaultLang is used when nothing else matches.
const DefaultLang = "fr"

var supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supported)

var messages = map[string]map[string]string{
	"fr": {
		"required":         "Requis",
		"must_be_positive": "Doit être positif",
		"out_of_range":     "Hors limites",
		"not_found":        "Introuvable",

		"invoice_title": "FACTURE",
		"quote_title":   "DEVIS",
		"number":        "N°",
		"issue_date":    "Date",
		"due_date":      "Échéance",
		"valid_until":   "Valable jusqu'au",
		"issuer":        "Émetteur",
		"recipient":     "Destinataire",
		"description":   "Désignation",
		"date":          "Date",
		"quantity":      "Qté",
		"unit_price":    "P.U. HT",
		"vat":           "TVA",
		"discount":      "Remise",
		"amount":        "Montant HT",
		"amount_ttc":    "Montant TTC",
		"total_ht":      "Total HT",
		"total_vat":     "TVA",
		"total_ttc":     "Total TTC",
		"vat_exempt":    "TVA non applicable, art. 293 B du CGI",
		"payment_info":  "Informations de paiement",
		"bank":          "Banque",
		"iban":          "IBAN",
		"bic":           "BIC",
		"siret":         "SIRET",
		"rcs":           "RCS",
		"vat_number":    "N° TVA",
		"capital":       "Capital",
		"email":         "E-mail",
		"phone":         "Tél.",
	},
	"en": {
		"required":         "Required",
		"must_be_positive": "Must be positive",
		"out_of_range":     "Out of range",
		"not_found":        "Not found",

		"invoice_title": "INVOICE",
		"quote_title":   "QUOTE",
		"number":        "No.",
		"issue_date":    "Date",
		"due_date":      "Due date",
		"valid_until":   "Valid until",
		"issuer":        "From",
		"recipient":     "Bill to",
		"description":   "Description",
		"date":          "Date",
		"quantity":      "Qty",
		"unit_price":    "Unit price",
		"vat":           "VAT",
		"discount":      "Discount",
		"amount":        "Amount",
		"amount_ttc":    "Amount incl. VAT",
		"total_ht":      "Subtotal",
		"total_vat":     "VAT",
		"total_ttc":     "Total incl. VAT",
		"vat_exempt":    "VAT not applicable, art. 293 B of the French tax code",
		"payment_info":  "Payment details",
		"bank":          "Bank",
		"iban":          "IBAN",
		"bic":           "BIC",
		"siret":         "SIRET",
		"rcs":           "RCS",
		"vat_number":    "VAT No.",
		"capital":       "Share capital",
		"email":         "Email",
		"phone":         "Phone",
	},
}

// T translates code. Unknown languages fall back to French, unknown codes
// to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Labels resolves document labels for one language, with per-template
// overrides taking precedence.
type Labels struct {
	Lang      string
	Overrides map[string]string
}

// Get returns the override for key, else its translation.
func (l Labels) Get(key string) string {
	if s, ok := l.Overrides[key]; ok && s != "" {
		return s
	}
	return T(l.Lang, key)
}

// Field formats "label: value".
func (l Labels) Field(key, value string) string {
	return l.Get(key) + " : " + value
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// Normalize maps any language string to a supported code.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := messages[lang]; ok {
		return lang
	}
	return DetectLanguage(lang)
}

// DecimalSeparator returns the decimal separator of lang.
func DecimalSeparator(lang string) string {
	if lang == "en" {
		return "."
	}
	return ","
}

// FormatAmount formats v with two decimals and the locale separator.
func FormatAmount(lang string, v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		s = "0.00"
	}
	return strings.Replace(s, ".", DecimalSeparator(lang), 1)
}

// FormatQuantity drops the decimals of whole quantities.
func FormatQuantity(lang string, v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return FormatAmount(lang, v)
}

// FormatPercent formats a fraction (0.2) as a percentage ("20 %").
func FormatPercent(lang string, fraction float64) string {
	return FormatQuantity(lang, math.Round(fraction*10000)/100) + " %"
}

var currencySymbols = map[string]string{"EUR": "€", "USD": "$", "GBP": "£"}

// FormatMoney formats an amount followed by its currency symbol.
func FormatMoney(lang string, v float64, currency string) string {
	sym, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		sym = strings.ToUpper(currency)
	}
	if sym == "" {
		sym = "€"
	}
	return FormatAmount(lang, v) + " " + sym
}

// FormatDate formats t for lang: 02/01/2006 in French, 2006-01-02 otherwise.
func FormatDate(lang string, t time.Time) string {
	if lang == "en" {
		return t.Format("2006-01-02")
	}
	return t.Format("02/01/2006")
}

type ctxKey struct{}

// WithLang stores lang in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFrom returns the language stored in ctx or DefaultLang.
func LangFrom(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKey{}).(string); ok && s != "" {
		return s
	}
	return DefaultLang
}
