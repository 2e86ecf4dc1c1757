// Package catalogue exposes the query side of the portal: viewer-aware
// listing, record lookup, metadata mutation and blob serving on top of the
// media repository and the blob store.
package catalogue

import (
	"time"

	"github.com/skycatalog/media-portal/internal/media"
	"github.com/skycatalog/media-portal/pkg/pagination"
)

// ListQuery carries the catalogue filter set plus pagination. Text filters
// are case-insensitive substring matches; IsPublic is an exact match. Nil
// means "no constraint".
type ListQuery struct {
	Source               *string
	Copyright            *string
	DatasetRelease       *string
	Description          *string
	DataProcessingStages *string
	Coordinates          *string
	IsPublic             *bool

	Page pagination.Params
}

func (q ListQuery) filters() media.Filters {
	return media.Filters{
		Source:               q.Source,
		Copyright:            q.Copyright,
		DatasetRelease:       q.DatasetRelease,
		Description:          q.Description,
		DataProcessingStages: q.DataProcessingStages,
		Coordinates:          q.Coordinates,
		IsPublic:             q.IsPublic,
	}
}

// Record is the wire representation of one catalogue entry.
type Record struct {
	ID                   int64      `json:"id"`
	Filename             string     `json:"filename"`
	Source               string     `json:"source"`
	Copyright            string     `json:"copyright"`
	DatasetRelease       string     `json:"datasetRelease"`
	Description          string     `json:"description"`
	DataProcessingStages string     `json:"dataProcessingStages"`
	Coordinates          string     `json:"coordinates"`
	IsPublic             bool       `json:"isPublic"`
	UploadDate           time.Time  `json:"uploadDate"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"`
}

// RecordFromModel converts a stored row to its wire form. updatedAt stays
// absent until the record has been edited at least once.
func RecordFromModel(m media.ImageMetadata) Record {
	r := Record{
		ID:                   m.ID,
		Filename:             m.Filename,
		Source:               m.Source,
		Copyright:            m.Copyright,
		DatasetRelease:       m.DatasetRelease,
		Description:          m.Description,
		DataProcessingStages: m.DataProcessingStages,
		Coordinates:          m.Coordinates,
		IsPublic:             m.IsPublic,
		UploadDate:           m.UploadDate,
	}
	if !m.UpdatedAt.IsZero() {
		updatedAt := m.UpdatedAt
		r.UpdatedAt = &updatedAt
	}
	return r
}
