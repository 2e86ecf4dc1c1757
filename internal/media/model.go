// Package media holds the image metadata model and its persistence layer.
//
// One record describes one uploaded blob. The record is keyed by the
// generated storage filename, which is unique across all live records.
package media

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// ImageMetadata is one row of the image_metadata table.
type ImageMetadata struct {
	bun.BaseModel `bun:"table:image_metadata,alias:im"`

	ID int64 `bun:"id,pk,autoincrement"`

	// Filename is the generated storage name, not the client-supplied
	// original. Unique across all live records.
	Filename string `bun:"filename,notnull,unique"`

	Source               string `bun:"source,notnull"`
	Copyright            string `bun:"copyright,notnull"`
	DatasetRelease       string `bun:"dataset_release,notnull"`
	Description          string `bun:"description,notnull"`
	DataProcessingStages string `bun:"data_processing_stages,notnull"`
	Coordinates          string `bun:"coordinates,notnull"`
	IsPublic             bool   `bun:"is_public,notnull,default:false"`

	// UploadDate is assigned server-side at creation and never changes.
	UploadDate time.Time `bun:"upload_date,notnull,nullzero"`
	// UpdatedAt is null until the first explicit metadata edit.
	UpdatedAt time.Time `bun:"updated_at,nullzero"`
}

var _ bun.BeforeAppendModelHook = (*ImageMetadata)(nil)

// BeforeAppendModel assigns the server-side timestamps: upload_date once at
// insert, updated_at on every update.
func (m *ImageMetadata) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if m.UploadDate.IsZero() {
			m.UploadDate = time.Now()
		}
	case *bun.UpdateQuery:
		m.UpdatedAt = time.Now()
	}
	return nil
}

// Fields carries the seven user-editable content fields of a record.
// Filename and timestamps are never part of it.
type Fields struct {
	Source               string
	Copyright            string
	DatasetRelease       string
	Description          string
	DataProcessingStages string
	Coordinates          string
	IsPublic             bool
}

// ApplyTo copies the content fields onto the record, leaving the filename
// and timestamps untouched.
func (f Fields) ApplyTo(m *ImageMetadata) {
	m.Source = f.Source
	m.Copyright = f.Copyright
	m.DatasetRelease = f.DatasetRelease
	m.Description = f.Description
	m.DataProcessingStages = f.DataProcessingStages
	m.Coordinates = f.Coordinates
	m.IsPublic = f.IsPublic
}
