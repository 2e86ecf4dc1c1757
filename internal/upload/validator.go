// Package upload implements the upload pipeline: file validation, storage
// name generation and the validate → name → write-blob → create-record
// sequence.
package upload

import (
	"io"
	"sync"

	"github.com/code19m/errx"
	"github.com/gabriel-vasile/mimetype"
)

// sniffLimit bounds how much of the stream is read for content detection.
const sniffLimit = 2048

// setSniffLimit applies the package-wide mimetype read limit once.
var setSniffLimit = sync.OnceFunc(func() { //nolint:gochecknoglobals // process-wide detector setting
	mimetype.SetLimit(sniffLimit)
})

// Validator checks incoming files against a size ceiling and a MIME
// allow-list. Classification is done by content signature on a small prefix
// of the stream; the client-supplied content type and filename extension are
// never trusted.
type Validator struct {
	maxSize int64
	allowed []string
}

// NewValidator creates a Validator from the given configuration.
func NewValidator(cfg Config) *Validator {
	setSniffLimit()

	allowed := cfg.AllowedTypes
	if len(allowed) == 0 {
		allowed = defaultAllowedTypes()
	}

	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = defaultMaxFileSize
	}

	return &Validator{
		maxSize: maxSize,
		allowed: allowed,
	}
}

// Validate enforces the size ceiling and the content-type allow-list, and
// returns the sniffed MIME type. The stream's read position is restored to
// the start so downstream consumers read the full content. Validate never
// writes anything.
func (v *Validator) Validate(f io.ReadSeeker, size int64) (string, error) {
	if size > v.maxSize {
		return "", errx.New(
			"file exceeds the maximum allowed size",
			errx.WithCode(CodeFileTooLarge),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{
				"size":     size,
				"max_size": v.maxSize,
			}),
		)
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return "", errx.Wrap(err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", errx.Wrap(err)
	}

	for _, allowed := range v.allowed {
		if mime.Is(allowed) {
			return mime.String(), nil
		}
	}

	return "", errx.New(
		"file content type is not allowed",
		errx.WithCode(CodeUnsupportedMediaType),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{
			"detected_type": mime.String(),
			"allowed_types": v.allowed,
		}),
	)
}
