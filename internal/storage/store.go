package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ikkim/catalog-console/internal/app/model"
)

var (
	// ErrPreviewNotFound is returned for unknown or released preview ids
	ErrPreviewNotFound = errors.New("preview not found")

	// ErrFileTooLarge is returned by ValidateUpload for oversized files
	ErrFileTooLarge = errors.New("file too large")

	// ErrContentType is returned by ValidateUpload for non-image files
	ErrContentType = errors.New("content type not allowed")
)

// PreviewStore keeps staged uploads viewable until they are submitted or
// discarded. Every Put must eventually be matched by a Release.
type PreviewStore interface {
	Put(ctx context.Context, filename, contentType string, data []byte) (model.Preview, error)
	Release(ctx context.Context, id string) error
}

// AllowedImageTypes lists the content types accepted for product images
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// DetectContentType sniffs the content type when the client did not send a
// usable one.
func DetectContentType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}

// ValidateUpload validates the size and content type of a staged file
func ValidateUpload(size, maxSize int64, contentType string) error {
	if maxSize > 0 && size > maxSize {
		return fmt.Errorf("%w: exceeds maximum allowed size of %d bytes", ErrFileTooLarge, maxSize)
	}
	for _, allowed := range AllowedImageTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrContentType, contentType)
}
