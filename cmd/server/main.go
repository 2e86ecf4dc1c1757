package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/skycatalog/media-portal/internal/auth"
	"github.com/skycatalog/media-portal/internal/catalogue"
	"github.com/skycatalog/media-portal/internal/httpapi"
	"github.com/skycatalog/media-portal/internal/media"
	"github.com/skycatalog/media-portal/internal/upload"
	"github.com/skycatalog/media-portal/pkg/cfgloader"
	"github.com/skycatalog/media-portal/pkg/filestore"
	"github.com/skycatalog/media-portal/pkg/filestore/local"
	"github.com/skycatalog/media-portal/pkg/filestore/minio"
	"github.com/skycatalog/media-portal/pkg/httpserver"
	"github.com/skycatalog/media-portal/pkg/httpserver/middleware"
	"github.com/skycatalog/media-portal/pkg/logger"
	"github.com/skycatalog/media-portal/pkg/pg"
)

const schemaInitTimeout = 30 * time.Second

func main() {
	cfg := cfgloader.MustLoad[Config]()

	log, err := logger.New(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck // shutdown flush
	log = log.Named(cfg.ServiceName)

	db, err := pg.NewBunDB(cfg.PG)
	if err != nil {
		log.Fatalx(err)
	}
	defer db.Close() //nolint:errcheck // shutdown cleanup

	initCtx, cancel := context.WithTimeout(context.Background(), schemaInitTimeout)
	defer cancel()
	if err := media.CreateSchema(initCtx, db); err != nil {
		log.Fatalx(err)
	}
	if err := auth.CreateSchema(initCtx, db); err != nil {
		log.Fatalx(err)
	}

	blobs, err := newBlobStore(cfg.Storage)
	if err != nil {
		log.Fatalx(err)
	}

	repo := media.NewPgRepo(db, log)
	uploads := upload.NewService(upload.NewValidator(cfg.Upload), blobs, repo, log)
	cat := catalogue.NewService(repo, blobs, log)

	cas := auth.NewCASClient(cfg.Auth.CAS)
	sessions := auth.NewSessionManager(cfg.Auth.Session)
	users := auth.NewPgUserStore(db, log)

	srv := httpserver.NewHTTPServer(cfg.HTTP, []httpserver.Middleware{
		middleware.NewRecoveryMW(log),
		middleware.NewTimeoutMW(cfg.HTTP.HandleTimeout),
		middleware.NewMetaInjectMW(cfg.ServiceName, cfg.ServiceVersion),
		middleware.NewLoggerMW(log),
		middleware.NewErrorHandlerMW(cfg.HTTP.HideErrorDetails),
	})

	handler := httpapi.NewHandler(uploads, cat)
	authHandler := httpapi.NewAuthHandler(cas, sessions, users, cfg.Auth.Session)
	srv.RegisterRouter(func(r fiber.Router) {
		httpapi.RegisterRoutes(r, handler, authHandler,
			httpapi.NewSessionMW(sessions, cfg.Auth.Session.CookieName))
	})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()
	log.With("addr", cfg.HTTP.Address()).Info("http server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			log.Errorx(err)
		}
	case sig := <-quit:
		log.With("signal", sig.String()).Info("shutting down")
		if err := srv.Stop(); err != nil {
			log.Errorx(err)
		}
	}
}

func newBlobStore(cfg StorageConfig) (filestore.BlobStore, error) {
	switch cfg.Backend {
	case "minio":
		return minio.New(cfg.Minio)
	default:
		return local.New(cfg.Local), nil
	}
}
