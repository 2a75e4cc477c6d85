package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/internal/auth"
	"github.com/devfolio/portfolio-backend/internal/bootstrap"
	"github.com/devfolio/portfolio-backend/internal/contact"
	cronjob "github.com/devfolio/portfolio-backend/internal/cron"
	"github.com/devfolio/portfolio-backend/internal/identity"
	"github.com/devfolio/portfolio-backend/internal/projects/cache"
	"github.com/devfolio/portfolio-backend/internal/projects/repository"
	"github.com/devfolio/portfolio-backend/internal/projects/service"
	"github.com/devfolio/portfolio-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	// The identity file is the one hard dependency: without it there is no
	// site to serve.
	profile, err := identity.Load(cfg.Content.IdentityPath)
	if err != nil {
		log.Fatalf("identity: %v", err)
	}

	ctx := context.Background()

	authClient, store, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer store.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	repo := repository.NewProjectRepository(store)
	snapshots := cache.New(redisClient)
	sync := service.NewSyncService(repo, snapshots)
	inbox := contact.NewRepo(store)

	var uploader storage.Uploader
	if cfg.Storage.Bucket != "" {
		s3up, err := storage.NewS3Uploader(ctx, cfg.Storage.Bucket, cfg.Storage.Region)
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
		uploader = s3up
	} else {
		log.Println("S3_BUCKET not set, image uploads disabled")
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "portfolio-backend",
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Identity:    profile,
		Sync:        sync,
		Inbox:       inbox,
		AuthClient:  authClient,
		Login:       auth.NewLoginClient(cfg.Firebase.WebAPIKey),
		Uploader:    uploader,
		Redis:       redisClient,
		Firestore:   store,
	})

	scheduler := cronjob.NewScheduler(sync)
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
