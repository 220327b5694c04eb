package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/diewo77/doc-designer/internal/layout"
	"github.com/diewo77/doc-designer/internal/models"
	"github.com/diewo77/doc-designer/internal/render"
	"github.com/diewo77/doc-designer/internal/render/pdfsurface"
	"github.com/diewo77/doc-designer/validation"
)

// Output formats.
const (
	FormatPDF = "pdf"
	FormatLog = "log"
)

var ErrUnknownFormat = errors.New("unknown_format")

const maxImageBytes = 5 << 20

// ImageFetcher loads image bytes referenced by URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches images over HTTP(S) with a per-request timeout.
type HTTPFetcher struct {
	Client  *http.Client
	Timeout time.Duration
}

func (f HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// Output is a rendered artifact.
type Output struct {
	Data        []byte
	ContentType string
}

// RenderService resolves records and assets around the pure renderers.
type RenderService struct {
	docs   *DocumentService
	styles *StyleService
	images ImageFetcher
	log    *slog.Logger
}

func NewRenderService(docs *DocumentService, styles *StyleService, images ImageFetcher, log *slog.Logger) *RenderService {
	if log == nil {
		log = slog.Default()
	}
	return &RenderService{docs: docs, styles: styles, images: images, log: log}
}

// NewSurface returns the drawing surface for format; opts apply to PDF.
func NewSurface(format string, opts ...pdfsurface.Option) (render.Surface, string, error) {
	switch strings.ToLower(format) {
	case FormatPDF, "":
		return pdfsurface.New(opts...), "application/pdf", nil
	case FormatLog, "json":
		return render.NewRecorder(), "application/json", nil
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// DocumentRequest is a self-contained render request.
type DocumentRequest struct {
	Document models.Document        `json:"document"`
	Style    *models.StyleTemplate  `json:"style,omitempty"`
	StyleID  uint                   `json:"style_id,omitempty"`
	Company  models.CompanySettings `json:"company"`
	Client   models.Client          `json:"client"`
}

// Render validates req and renders it. Invalid requests are rejected with
// a *ValidationError before anything is drawn.
func (s *RenderService) Render(ctx context.Context, req DocumentRequest, format string) (Output, error) {
	style := models.DefaultStyleTemplate()
	switch {
	case req.Style != nil:
		style = *req.Style
	case s.styles != nil:
		st, err := s.styles.Get(req.StyleID)
		if err != nil {
			return Output{}, err
		}
		style = st
	}
	if v := validation.RenderRequest(req.Document, style); !v.Empty() {
		return Output{}, &ValidationError{Violations: v}
	}
	surface, ct, err := NewSurface(format, pdfsurface.WithFlowPagination(style.MarginTop, style.MarginBottom))
	if err != nil {
		return Output{}, err
	}
	in := render.DocumentInput{
		Document: req.Document,
		Style:    style,
		Company:  req.Company,
		Client:   req.Client,
		Logo:     s.fetchImage(ctx, req.Company.LogoURL),
	}
	data, err := render.RenderDocument(in, surface)
	if err != nil {
		return Output{}, fmt.Errorf("render %s: %w", req.Document.Number, err)
	}
	s.log.Info("document rendered", "number", req.Document.Number, "style", style.Name, "format", format, "bytes", len(data))
	return Output{Data: data, ContentType: ct}, nil
}

// RenderStored renders document id with style styleID (0 for default).
func (s *RenderService) RenderStored(ctx context.Context, id, styleID uint, format string) (Output, *models.Document, error) {
	doc, err := s.docs.Get(id)
	if err != nil {
		return Output{}, nil, err
	}
	req := DocumentRequest{Document: *doc, StyleID: styleID}
	if doc.Company != nil {
		req.Company = *doc.Company
	}
	if doc.Client != nil {
		req.Client = *doc.Client
	}
	out, err := s.Render(ctx, req, format)
	return out, doc, err
}

// ExportTemplate renders a block template, fetching remote images first.
// Images that fail to load become placeholders.
func (s *RenderService) ExportTemplate(ctx context.Context, t layout.Template, format string) (Output, error) {
	surface, ct, err := NewSurface(format)
	if err != nil {
		return Output{}, err
	}
	images := render.Images{}
	for _, b := range t.Blocks {
		c, ok := b.Content.(layout.ImageContent)
		if !ok || strings.HasPrefix(c.Source, "data:") {
			continue
		}
		if _, done := images[c.Source]; done {
			continue
		}
		if img := s.fetchImage(ctx, c.Source); img != nil {
			images[c.Source] = *img
		}
	}
	data, err := render.RenderTemplate(t, images, surface)
	if err != nil {
		return Output{}, fmt.Errorf("export template %s: %w", t.ID, err)
	}
	return Output{Data: data, ContentType: ct}, nil
}

// fetchImage resolves ref to a decoded image, or nil.
func (s *RenderService) fetchImage(ctx context.Context, ref string) *render.Image {
	if ref == "" {
		return nil
	}
	if img, ok := render.DecodeDataURI(ref); ok {
		return &img
	}
	if s.images == nil || !(strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")) {
		return nil
	}
	data, err := s.images.Fetch(ctx, ref)
	if err != nil {
		s.log.Warn("image fetch failed", "url", ref, "err", err)
		return nil
	}
	img, err := render.DecodeImage(data)
	if err != nil {
		s.log.Warn("image decode failed", "url", ref, "err", err)
		return nil
	}
	return &img
}
