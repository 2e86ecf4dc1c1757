package main

import (
	"github.com/skycatalog/media-portal/internal/auth"
	"github.com/skycatalog/media-portal/internal/upload"
	"github.com/skycatalog/media-portal/pkg/filestore/local"
	"github.com/skycatalog/media-portal/pkg/filestore/minio"
	"github.com/skycatalog/media-portal/pkg/httpserver"
	"github.com/skycatalog/media-portal/pkg/logger"
	"github.com/skycatalog/media-portal/pkg/pg"
)

type Config struct {
	ServiceName    string `yaml:"service_name"    default:"media-portal"`
	ServiceVersion string `yaml:"service_version" default:"dev"`

	Logger  logger.Config     `yaml:"logger"`
	HTTP    httpserver.Config `yaml:"http"`
	PG      pg.Config         `yaml:"pg"`
	Storage StorageConfig     `yaml:"storage"`
	Upload  upload.Config     `yaml:"upload"`
	Auth    auth.Config       `yaml:"auth"`
}

// StorageConfig selects and configures the blob backend.
type StorageConfig struct {
	Backend string `yaml:"backend" default:"local" validate:"oneof=local minio"`

	Local local.Config `yaml:"local"`
	Minio minio.Config `yaml:"minio"`
}
