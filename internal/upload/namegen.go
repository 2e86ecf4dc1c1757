package upload

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// extPattern accepts only short, purely alphanumeric extensions. Anything
// else (empty, too long, containing dots or path separators) is dropped.
var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// GenerateName produces the storage filename for an uploaded file: a fresh
// UUID plus the lowercased extension of the original name when the extension
// is well-formed. The original base name is discarded entirely, so untrusted
// client input never reaches the filesystem or the database key.
func GenerateName(original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if !extPattern.MatchString(ext) {
		ext = ""
	}

	return uuid.NewString() + ext
}
