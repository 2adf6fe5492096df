package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// Image is the rendered preview produced by a converter.
type Image struct {
	Data        []byte
	ContentType string
}

// Converter renders a document into a preview image. Rendering fidelity is
// the converter's concern; callers only see bytes or an error.
type Converter interface {
	Convert(ctx context.Context, document []byte) (Image, error)
}

// ErrNotConfigured is returned when no rendering utility is wired.
var ErrNotConfigured = errors.New("converter not configured")

// HTTPConverter calls an external document-to-image rendering utility.
type HTTPConverter struct {
	url        string
	httpClient *http.Client
}

// NewHTTPConverter builds a converter for the given rendering endpoint.
func NewHTTPConverter(url string) (*HTTPConverter, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNotConfigured
	}
	return &HTTPConverter{
		url: url,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Convert renders the first page of a PDF document to an image. The
// document is preflighted locally so corrupt uploads fail before the
// rendering call is paid for.
func (c *HTTPConverter) Convert(ctx context.Context, document []byte) (Image, error) {
	if err := Preflight(document); err != nil {
		return Image{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(document))
	if err != nil {
		return Image{}, err
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Accept", "image/png")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("converter request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Image{}, fmt.Errorf("converter status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Image{}, fmt.Errorf("converter read: %w", err)
	}
	if len(data) == 0 {
		return Image{}, errors.New("converter returned empty image")
	}

	contentType := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return Image{Data: data, ContentType: contentType}, nil
}

// Preflight checks the document parses as a PDF with at least one page.
func Preflight(document []byte) error {
	reader, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return fmt.Errorf("preflight: %w", err)
	}
	if reader.NumPage() < 1 {
		return errors.New("preflight: document has no pages")
	}
	return nil
}

// Unconfigured is a Converter that always fails with ErrNotConfigured; the
// pipeline's conversion-failure policy then applies.
type Unconfigured struct{}

// Convert returns ErrNotConfigured.
func (Unconfigured) Convert(ctx context.Context, document []byte) (Image, error) {
	_ = ctx
	_ = document
	return Image{}, ErrNotConfigured
}

var (
	_ Converter = (*HTTPConverter)(nil)
	_ Converter = Unconfigured{}
)
