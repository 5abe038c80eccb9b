// Package docinfo probes uploaded source files for the metadata the
// enhancement pipeline needs: file kind detection, PDF validation and
// page counts, and raster image dimensions.
package docinfo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrUnsupportedKind indicates the file is neither a PDF nor a
// supported raster image.
var ErrUnsupportedKind = errors.New("unsupported document kind")

// Kind classifies a source file.
type Kind string

// Document kinds.
const (
	KindPDF   Kind = "pdf"
	KindImage Kind = "image"
)

// Info describes a probed source file.
type Info struct {
	Kind        Kind   `json:"kind"`
	ContentType string `json:"content_type"`
	PageCount   int    `json:"page_count"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	SizeBytes   int64  `json:"size_bytes"`
}

// Probe inspects raw file bytes and returns document metadata.
// PDFs are validated and page-counted with pdfcpu; images are probed
// with image.DecodeConfig. Returns ErrUnsupportedKind for anything else.
func Probe(data []byte) (*Info, error) {
	contentType := detectContentType(data)

	switch {
	case contentType == "application/pdf":
		return probePDF(data, contentType)
	case strings.HasPrefix(contentType, "image/"):
		return probeImage(data, contentType)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, contentType)
	}
}

func probePDF(data []byte, contentType string) (*Info, error) {
	if err := api.Validate(bytes.NewReader(data), nil); err != nil {
		return nil, fmt.Errorf("validate pdf: %w", err)
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("count pdf pages: %w", err)
	}

	return &Info{
		Kind:        KindPDF,
		ContentType: contentType,
		PageCount:   count,
		SizeBytes:   int64(len(data)),
	}, nil
}

func probeImage(data []byte, contentType string) (*Info, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image config: %w", err)
	}

	return &Info{
		Kind:        KindImage,
		ContentType: contentType,
		PageCount:   1,
		Width:       cfg.Width,
		Height:      cfg.Height,
		SizeBytes:   int64(len(data)),
	}, nil
}

func detectContentType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}
