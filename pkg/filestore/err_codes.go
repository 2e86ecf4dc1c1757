package filestore

// Error codes for blob store operations.
const (
	// CodeBlobNotFound is returned when no blob exists at the requested name.
	CodeBlobNotFound = "BLOB_NOT_FOUND"

	// CodeCollisionDetected is returned when a write targets a name that is
	// already occupied. The caller may safely retry with a different name.
	CodeCollisionDetected = "COLLISION_DETECTED"

	// CodeStorageIO is returned for underlying storage failures (disk full,
	// permission denied, backend unavailable).
	CodeStorageIO = "STORAGE_IO_ERROR"
)
