package media

import (
	"strings"

	"github.com/uptrace/bun"
)

// Filters hold the optional, independently combinable list filters.
// Text filters are case-insensitive substring matches; IsPublic is exact.
// Nil means "no constraint".
type Filters struct {
	Source               *string
	Copyright            *string
	DatasetRelease       *string
	Description          *string
	DataProcessingStages *string
	Coordinates          *string
	IsPublic             *bool
}

// apply appends the WHERE clauses for every set filter. Clauses combine with
// logical AND. LOWER(...) LIKE LOWER(...) keeps the substring match
// case-insensitive on every supported dialect.
func (f Filters) apply(q *bun.SelectQuery) *bun.SelectQuery {
	textFilters := []struct {
		column string
		value  *string
	}{
		{"source", f.Source},
		{"copyright", f.Copyright},
		{"dataset_release", f.DatasetRelease},
		{"description", f.Description},
		{"data_processing_stages", f.DataProcessingStages},
		{"coordinates", f.Coordinates},
	}

	for _, tf := range textFilters {
		if tf.value != nil {
			q = q.Where("LOWER("+tf.column+") LIKE ? ESCAPE '\\'", substringPattern(*tf.value))
		}
	}

	if f.IsPublic != nil {
		q = q.Where("is_public = ?", *f.IsPublic)
	}

	return q
}

// likeEscaper neutralizes LIKE metacharacters so filter text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func substringPattern(v string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(v)) + "%"
}
