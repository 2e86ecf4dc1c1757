// Package minio implements a MinIO backed blob store.
//
// MinIO object writes are atomic on the server side, so the temp-and-rename
// dance of the local backend is unnecessary here; the store still re-checks
// for an existing object before writing to honor the collision contract.
package minio

import (
	"context"
	"io"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/skycatalog/media-portal/pkg/filestore"
)

// Store is a MinIO backed filestore.BlobStore.
type Store struct {
	client *minio.Client
	bucket string
}

var _ filestore.BlobStore = (*Store)(nil)

// New creates and initializes a Store for the configured bucket.
//
// It validates the connection configuration, establishes a MinIO client and
// creates the bucket when it does not exist yet.
func New(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errx.Wrap(err)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(filestore.CodeStorageIO))
	}

	ctx := context.Background()
	exists, err := cli.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(filestore.CodeStorageIO))
	}
	if !exists {
		err = cli.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{})
		if err != nil {
			return nil, errx.Wrap(err, errx.WithCode(filestore.CodeStorageIO))
		}
	}

	return &Store{
		client: cli,
		bucket: cfg.BucketName,
	}, nil
}

func (s *Store) Write(ctx context.Context, name string, r io.Reader) error {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return errx.New(
			"blob already exists",
			errx.WithCode(filestore.CodeCollisionDetected),
			errx.WithType(errx.T_Conflict),
			errx.WithDetails(errx.D{"name": name, "bucket": s.bucket}),
		)
	}

	_, err = s.client.PutObject(ctx, s.bucket, name, r, -1, minio.PutObjectOptions{})
	if err != nil {
		return errx.Wrap(err,
			errx.WithCode(filestore.CodeStorageIO),
			errx.WithDetails(errx.D{"name": name, "bucket": s.bucket}),
		)
	}

	return nil
}

func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, errx.Wrap(err,
			errx.WithCode(filestore.CodeStorageIO),
			errx.WithDetails(errx.D{"name": name, "bucket": s.bucket}),
		)
	}

	// GetObject is lazy; stat the object so a missing blob surfaces here
	// instead of on the first read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return nil, errx.New(
				"blob not found",
				errx.WithCode(filestore.CodeBlobNotFound),
				errx.WithType(errx.T_NotFound),
				errx.WithDetails(errx.D{"name": name, "bucket": s.bucket}),
			)
		}
		return nil, errx.Wrap(err, errx.WithCode(filestore.CodeStorageIO))
	}

	return obj, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return errx.Wrap(err,
			errx.WithCode(filestore.CodeStorageIO),
			errx.WithDetails(errx.D{"name": name, "bucket": s.bucket}),
		)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, errx.Wrap(err,
			errx.WithCode(filestore.CodeStorageIO),
			errx.WithDetails(errx.D{"name": name, "bucket": s.bucket}),
		)
	}
	return true, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, errx.Wrap(obj.Err, errx.WithCode(filestore.CodeStorageIO))
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NotFound"
}
