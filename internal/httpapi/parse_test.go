package httpapi

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycatalog/media-portal/pkg/val"
)

func TestParseBoolField(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
		wantErr  bool
	}{
		{raw: "true", expected: true},
		{raw: "TRUE", expected: true},
		{raw: "1", expected: true},
		{raw: "yes", expected: true},
		{raw: "Yes", expected: true},
		{raw: "false", expected: false},
		{raw: "0", expected: false},
		{raw: "no", expected: false},
		{raw: "NO", expected: false},
		{raw: " true ", expected: true},
		{raw: "", wantErr: true},
		{raw: "maybe", wantErr: true},
		{raw: "2", wantErr: true},
		{raw: "truee", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseBoolField("isPublic", tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				e := errx.AsErrorX(err)
				assert.Equal(t, val.CodeValidationFailed, e.Code())
				assert.Contains(t, e.Fields(), "isPublic")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
