// Package val provides validation functions for request and form schemas.
package val

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate //nolint: gochecknoglobals // temporarily using a global variable until better solution is found

func init() { //nolint: gochecknoinits // temporarily using init function until better solution is found
	validate = validator.New()
	validate.RegisterTagNameFunc(getTagName)
}

func getValidator() *validator.Validate {
	return validate
}

// getTagName returns the name of a struct field based on its struct tags.
// It checks 'json', 'form', 'query', and 'params' tags in that order, and
// falls back to the field name if none of those tags have a non-empty name
// component. The resolved name is what shows up in validation error fields,
// so it matches the wire vocabulary rather than the Go field name.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "form", "query", "params"} {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}

	return fld.Name
}
