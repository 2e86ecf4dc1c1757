package minio

import "errors"

// Config holds the configuration parameters needed to connect to the MinIO
// storage backend.
type Config struct {
	// Endpoint is the MinIO server host:port (e.g., "play.min.io:9000").
	Endpoint string `yaml:"endpoint"`
	// AccessKeyID authenticates with the MinIO server.
	AccessKeyID string `yaml:"access_key_id"`
	// SecretAccessKey authenticates with the MinIO server.
	SecretAccessKey string `yaml:"secret_access_key"`
	// BucketName is the bucket to operate on. Defaults to "media".
	BucketName string `yaml:"bucket_name"`
	// UseSSL enables HTTPS for the connection.
	UseSSL bool `yaml:"use_ssl"`
}

var (
	errRequiredEndpoint = errors.New("minio: endpoint is required")
	errRequiredKeyID    = errors.New("minio: access key id is required")
	errRequiredSecret   = errors.New("minio: secret access key is required")
)

// Validate checks required fields and fills defaults.
func (cfg *Config) Validate() error {
	if cfg.Endpoint == "" {
		return errRequiredEndpoint
	}
	if cfg.AccessKeyID == "" {
		return errRequiredKeyID
	}
	if cfg.SecretAccessKey == "" {
		return errRequiredSecret
	}

	if cfg.BucketName == "" {
		cfg.BucketName = "media"
	}
	return nil
}
