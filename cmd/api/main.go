package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"tastebook/internal/blobstore"
	"tastebook/internal/config"
	"tastebook/internal/database"
	"tastebook/internal/events"
	"tastebook/internal/middleware"
	"tastebook/internal/modules/admin"
	"tastebook/internal/modules/auth"
	"tastebook/internal/modules/favorite"
	"tastebook/internal/modules/photo"
	"tastebook/internal/modules/review"
	"tastebook/internal/modules/venue"
	jwtsvc "tastebook/internal/pkg/jwt"
	"tastebook/internal/repository"
	"tastebook/internal/viewcache"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	blobs := blobstore.NewDiskStore(cfg.UploadBaseDir, cfg.PublicURLBase)
	views := viewcache.NewRegistry()
	hub := events.NewHub()
	views.Subscribe(hub.ViewInvalidated)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, profileRepo, j, hub)
	authHandler := auth.NewHandler(authService)

	venueService := venue.NewService(venueRepo, photoRepo, blobs, views)
	venueHandler := venue.NewHandler(venueService)

	reviewService := review.NewService(reviewRepo, venueRepo, views)
	reviewHandler := review.NewHandler(reviewService)

	favoriteService := favorite.NewService(favoriteRepo, views)
	favoriteHandler := favorite.NewHandler(favoriteService)

	photoService := photo.NewService(photoRepo, blobs, views)
	photoHandler := photo.NewHandler(photoService)

	adminService := admin.NewService(userRepo, profileRepo, venueService)
	adminHandler := admin.NewHandler(adminService)

	eventsHandler := events.NewHandler(hub)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.CORS())
	r.Static(cfg.PublicURLBase, blobs.BaseDir())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		venueHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)
		eventsHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			venueHandler.RegisterProtectedRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)
			photoHandler.RegisterRoutes(protected)

			adminOnly := protected.Group("/")
			adminOnly.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminOnly)
			}
		}
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
