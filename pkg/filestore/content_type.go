package filestore

import (
	"path/filepath"
	"strings"
)

// Common MIME content types for media file operations.
const (
	// Images.
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"

	// Audio.
	ContentTypeOGG = "audio/ogg"

	// Video.
	ContentTypeMP4       = "video/mp4"
	ContentTypeMOV       = "video/quicktime"
	ContentTypeVideoOGG  = "video/ogg"
	ContentTypeVideoWebM = "video/webm"

	// Other.
	ContentTypeOctetStream = "application/octet-stream"
)

// TypeByName maps a blob name's extension to its MIME content type,
// falling back to application/octet-stream for anything unrecognized.
func TypeByName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return ContentTypeJPEG
	case ".png":
		return ContentTypePNG
	case ".gif":
		return ContentTypeGIF
	case ".webp":
		return ContentTypeWebP
	case ".mp4":
		return ContentTypeMP4
	case ".mov":
		return ContentTypeMOV
	case ".ogg", ".ogv":
		return ContentTypeVideoOGG
	case ".oga":
		return ContentTypeOGG
	case ".webm":
		return ContentTypeVideoWebM
	default:
		return ContentTypeOctetStream
	}
}
