package httpapi

import (
	"strings"

	"github.com/code19m/errx"

	"github.com/skycatalog/media-portal/pkg/val"
)

// parseBoolField converts the wire string forms of a boolean field. Accepted
// values are "true"/"1"/"yes" and "false"/"0"/"no", case-insensitive.
// Anything else fails schema validation for the named field.
func parseBoolField(field, raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, errx.New(
			"validation failed",
			errx.WithCode(val.CodeValidationFailed),
			errx.WithType(errx.T_Validation),
			errx.WithFields(errx.M{
				field: "must be one of: true, 1, yes, false, 0, no",
			}),
		)
	}
}
