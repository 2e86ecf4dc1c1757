package upload

import "github.com/skycatalog/media-portal/pkg/filestore"

// defaultMaxFileSize is the 50 MiB upload ceiling applied when the
// configuration leaves the limit unset.
const defaultMaxFileSize int64 = 52428800

// Config defines configuration options for the upload pipeline.
type Config struct {
	// MaxFileSize is the upload size ceiling in bytes. Default is 50 MiB.
	MaxFileSize int64 `yaml:"max_file_size" default:"52428800"`

	// AllowedTypes is the MIME allow-list checked against the sniffed
	// content type, never against the client-supplied header or extension.
	AllowedTypes []string `yaml:"allowed_types"`
}

// defaultAllowedTypes is the media allow-list used when none is configured.
func defaultAllowedTypes() []string {
	return []string{
		filestore.ContentTypePNG,
		filestore.ContentTypeJPEG,
		filestore.ContentTypeWebP,
		filestore.ContentTypeGIF,
		filestore.ContentTypeMP4,
		filestore.ContentTypeVideoWebM,
		filestore.ContentTypeVideoOGG,
		filestore.ContentTypeOGG,
		filestore.ContentTypeMOV,
	}
}
