// Package val_test contains tests for the val package.
package val_test

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycatalog/media-portal/pkg/val"
)

type uploadSchema struct {
	Source      string `form:"source"      validate:"required,max=200"`
	Description string `form:"description" validate:"required,max=10"`
	IsPublic    string `form:"isPublic"    validate:"required"`
}

func TestValidateSchemaOK(t *testing.T) {
	err := val.ValidateSchema(&uploadSchema{
		Source:      "Euclid",
		Description: "short",
		IsPublic:    "true",
	})
	assert.NoError(t, err)
}

func TestValidateSchemaEnumeratesEveryFailedField(t *testing.T) {
	err := val.ValidateSchema(&uploadSchema{
		Description: "way past the ten character limit",
	})
	require.Error(t, err)

	e := errx.AsErrorX(err)
	assert.Equal(t, val.CodeValidationFailed, e.Code())
	assert.Equal(t, errx.T_Validation, e.Type())

	// Every failing field appears under its wire name.
	require.Len(t, e.Fields(), 3)
	assert.Equal(t, "This field is required", e.Fields()["source"])
	assert.Equal(t, "Must be at most 10 characters", e.Fields()["description"])
	assert.Equal(t, "This field is required", e.Fields()["isPublic"])
}
