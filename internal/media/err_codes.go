package media

// Error codes for metadata record operations.
const (
	// CodeImageNotFound is returned when no record exists for a filename.
	CodeImageNotFound = "IMAGE_NOT_FOUND"

	// CodeDuplicateFilename is returned when a create hits the filename
	// uniqueness constraint. Safe to retry with a different name.
	CodeDuplicateFilename = "DUPLICATE_FILENAME"
)

// filenameUniqueConstraint is the PostgreSQL-assigned name of the unique
// constraint on image_metadata.filename.
const filenameUniqueConstraint = "image_metadata_filename_key"
