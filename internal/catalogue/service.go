package catalogue

import (
	"context"
	"io"

	"github.com/code19m/errx"
	"github.com/samber/lo"

	"github.com/skycatalog/media-portal/internal/auth"
	"github.com/skycatalog/media-portal/internal/media"
	"github.com/skycatalog/media-portal/pkg/filestore"
	"github.com/skycatalog/media-portal/pkg/logger"
)

// Service answers catalogue queries and mutations with the visibility rule
// applied: anonymous viewers only ever see public records, authenticated
// viewers see everything. A nil viewer means anonymous.
type Service struct {
	repo  media.Repository
	blobs filestore.BlobStore
	log   logger.Logger
}

func NewService(repo media.Repository, blobs filestore.BlobStore, log logger.Logger) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		log:   log.Named("catalogue.service"),
	}
}

// List returns the records matching the query, newest first. For anonymous
// viewers the public-only constraint overrides any requested isPublic
// filter, so asking for private records anonymously yields an empty list
// rather than an error.
func (s *Service) List(ctx context.Context, viewer *auth.User, q ListQuery) ([]Record, error) {
	filters := q.filters()
	if viewer == nil {
		filters.IsPublic = lo.ToPtr(true)
		if q.IsPublic != nil && !*q.IsPublic {
			return []Record{}, nil
		}
	}

	records, err := s.repo.List(ctx, filters, q.Page)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return lo.Map(records, func(m media.ImageMetadata, _ int) Record {
		return RecordFromModel(m)
	}), nil
}

// Get returns one record by filename. Private records are indistinguishable
// from absent ones for anonymous viewers.
func (s *Service) Get(ctx context.Context, viewer *auth.User, filename string) (*Record, error) {
	m, err := s.repo.GetByFilename(ctx, filename)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if m == nil || (viewer == nil && !m.IsPublic) {
		return nil, notFound(filename)
	}

	record := RecordFromModel(*m)
	return &record, nil
}

// Update replaces the content fields of a record. Requires an authenticated
// viewer.
func (s *Service) Update(ctx context.Context, viewer *auth.User, filename string, fields media.Fields) (*Record, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}

	m, err := s.repo.Update(ctx, filename, fields)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	if m == nil {
		return nil, notFound(filename)
	}

	record := RecordFromModel(*m)
	return &record, nil
}

// Delete removes a record and then its blob. The blob removal is best
// effort: the record delete is already committed, so a storage failure is
// logged and the request still succeeds.
func (s *Service) Delete(ctx context.Context, viewer *auth.User, filename string) error {
	if err := requireViewer(viewer); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, filename)
	if err != nil {
		return errx.Wrap(err)
	}
	if !deleted {
		return notFound(filename)
	}

	cleanupCtx := context.WithoutCancel(ctx)
	if err := s.blobs.Delete(cleanupCtx, filename); err != nil {
		s.log.WithContext(cleanupCtx).With("filename", filename).Warnx(err)
	}

	return nil
}

// OpenFile streams the blob behind a record, applying the same visibility
// rule as Get. The caller owns closing the reader.
func (s *Service) OpenFile(ctx context.Context, viewer *auth.User, filename string) (io.ReadCloser, *Record, error) {
	record, err := s.Get(ctx, viewer, filename)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(ctx, filename)
	if err != nil {
		return nil, nil, errx.Wrap(err)
	}

	return rc, record, nil
}

func requireViewer(viewer *auth.User) error {
	if viewer == nil {
		return errx.New(
			"authentication required",
			errx.WithCode(auth.CodeAuthRequired),
			errx.WithType(errx.T_Authentication),
		)
	}
	return nil
}

func notFound(filename string) error {
	return errx.New(
		"image metadata not found",
		errx.WithCode(media.CodeImageNotFound),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"filename": filename}),
	)
}
