// Package upload_test contains tests for the upload package.
package upload_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycatalog/media-portal/internal/upload"
	"github.com/skycatalog/media-portal/pkg/filestore"
)

// pngBytes is a minimal stream carrying the PNG signature.
func pngBytes() []byte {
	return append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
}

func jpegBytes() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)
}

func TestValidatorValidate(t *testing.T) {
	tests := []struct {
		name         string
		cfg          upload.Config
		content      []byte
		expectedType string
		expectedCode string
	}{
		{
			name:         "png accepted",
			content:      pngBytes(),
			expectedType: filestore.ContentTypePNG,
		},
		{
			name:         "jpeg accepted",
			content:      jpegBytes(),
			expectedType: filestore.ContentTypeJPEG,
		},
		{
			name:         "plain text rejected",
			content:      []byte("definitely not an image"),
			expectedCode: upload.CodeUnsupportedMediaType,
		},
		{
			name:         "oversized file rejected before sniffing",
			cfg:          upload.Config{MaxFileSize: 8},
			content:      pngBytes(),
			expectedCode: upload.CodeFileTooLarge,
		},
		{
			name:         "allow-list narrows accepted types",
			cfg:          upload.Config{AllowedTypes: []string{filestore.ContentTypeJPEG}},
			content:      pngBytes(),
			expectedCode: upload.CodeUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := upload.NewValidator(tt.cfg)
			r := bytes.NewReader(tt.content)

			contentType, err := v.Validate(r, int64(len(tt.content)))

			if tt.expectedCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, errx.AsErrorX(err).Code())
				assert.Equal(t, errx.T_Validation, errx.AsErrorX(err).Type())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedType, contentType)
		})
	}
}

func TestValidatorRestoresReadPosition(t *testing.T) {
	content := pngBytes()
	v := upload.NewValidator(upload.Config{})
	r := bytes.NewReader(content)

	_, err := v.Validate(r, int64(len(content)))
	require.NoError(t, err)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, rest)
}
