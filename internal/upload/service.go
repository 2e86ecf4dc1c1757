package upload

import (
	"context"
	"io"

	"github.com/code19m/errx"

	"github.com/skycatalog/media-portal/internal/media"
	"github.com/skycatalog/media-portal/pkg/filestore"
	"github.com/skycatalog/media-portal/pkg/logger"
)

// Input carries one upload request through the pipeline.
type Input struct {
	OriginalFilename string
	File             io.ReadSeeker
	Size             int64
	Fields           media.Fields
}

// Service runs the upload pipeline: validate the file, generate a storage
// name, persist the blob, then create the metadata record. The blob is
// written before the record so a visible record always points at existing
// content.
type Service struct {
	validator *Validator
	blobs     filestore.BlobStore
	repo      media.Repository
	log       logger.Logger
}

func NewService(
	validator *Validator,
	blobs filestore.BlobStore,
	repo media.Repository,
	log logger.Logger,
) *Service {
	return &Service{
		validator: validator,
		blobs:     blobs,
		repo:      repo,
		log:       log.Named("upload.service"),
	}
}

// Upload validates and persists a single file together with its metadata
// record. On success the stored record is returned, including the generated
// filename and server-assigned upload date.
func (s *Service) Upload(ctx context.Context, in Input) (*media.ImageMetadata, error) {
	contentType, err := s.validator.Validate(in.File, in.Size)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	name := GenerateName(in.OriginalFilename)

	if err := s.blobs.Write(ctx, name, in.File); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"filename": name}))
	}

	created, err := s.repo.Create(ctx, name, in.Fields)
	if err != nil {
		s.removeOrphanBlob(ctx, name)
		return nil, errx.Wrap(err)
	}

	s.log.WithContext(ctx).With(
		"filename", created.Filename,
		"content_type", contentType,
		"size", in.Size,
	).Info("file uploaded")

	return created, nil
}

// removeOrphanBlob deletes a blob whose metadata record failed to persist.
// The cleanup is best-effort and detached from request cancellation: a leaked
// blob is only logged, never surfaced to the caller.
func (s *Service) removeOrphanBlob(ctx context.Context, name string) {
	cleanupCtx := context.WithoutCancel(ctx)
	if err := s.blobs.Delete(cleanupCtx, name); err != nil {
		s.log.WithContext(cleanupCtx).With("filename", name).Warnx(err)
	}
}
