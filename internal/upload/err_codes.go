package upload

// Error codes for upload validation.
const (
	// CodeFileTooLarge is returned when the declared file size exceeds the
	// configured ceiling.
	CodeFileTooLarge = "FILE_TOO_LARGE"

	// CodeUnsupportedMediaType is returned when the sniffed content type is
	// not in the configured allow-list.
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
)
