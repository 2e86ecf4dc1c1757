// Package httpapi wires the upload pipeline, the catalogue service and the
// auth glue onto fiber routes. Handlers decode and validate wire schemas,
// call the services, and return errx errors for the error-handler middleware
// to map onto HTTP statuses.
package httpapi

import (
	"github.com/skycatalog/media-portal/internal/media"
	"github.com/skycatalog/media-portal/pkg/pagination"
)

// metadataForm carries the seven content fields as they appear on the wire,
// for both the upload form and the update body. isPublic arrives as a string
// and is converted by parseBoolField.
type metadataForm struct {
	Source               string `form:"source"               json:"source"               validate:"required,max=200"`
	Copyright            string `form:"copyright"            json:"copyright"            validate:"required,max=200"`
	DatasetRelease       string `form:"datasetRelease"       json:"datasetRelease"       validate:"required,max=50"`
	Description          string `form:"description"          json:"description"          validate:"required,max=2000"`
	DataProcessingStages string `form:"dataProcessingStages" json:"dataProcessingStages" validate:"required,max=500"`
	Coordinates          string `form:"coordinates"          json:"coordinates"          validate:"required,max=100"`
	IsPublic             string `form:"isPublic"             json:"isPublic"             validate:"required"`
}

func (f metadataForm) fields() (media.Fields, error) {
	isPublic, err := parseBoolField("isPublic", f.IsPublic)
	if err != nil {
		return media.Fields{}, err
	}

	return media.Fields{
		Source:               f.Source,
		Copyright:            f.Copyright,
		DatasetRelease:       f.DatasetRelease,
		Description:          f.Description,
		DataProcessingStages: f.DataProcessingStages,
		Coordinates:          f.Coordinates,
		IsPublic:             isPublic,
	}, nil
}

// listQuerySchema mirrors the GET /images query string. Absent text filters
// stay nil; isPublic is decoded separately because of its string forms.
type listQuerySchema struct {
	Source               *string `query:"source"`
	Copyright            *string `query:"copyright"`
	DatasetRelease       *string `query:"datasetRelease"`
	Description          *string `query:"description"`
	DataProcessingStages *string `query:"dataProcessingStages"`
	Coordinates          *string `query:"coordinates"`
	IsPublic             string  `query:"isPublic"`

	pagination.Params
}
