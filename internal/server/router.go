package server

import (
	"net/http"

	"inkbook/internal/domain"
	"inkbook/internal/middleware"
	"inkbook/internal/mirror"
	"inkbook/internal/modules/admin"
	"inkbook/internal/modules/artist"
	"inkbook/internal/modules/auth"
	"inkbook/internal/modules/booking"
	"inkbook/internal/modules/notification"
	"inkbook/internal/modules/review"
	"inkbook/internal/pkg/jwt"
	"inkbook/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	Secondary   mirror.SecondaryStore
	JWT         *jwt.Service
	CORSOrigins []string
}

// Server bundles the router with the pieces main needs at shutdown.
type Server struct {
	Engine *gin.Engine
	Sync   *mirror.Synchronizer
	Hub    *notification.Hub
}

func New(deps Deps) *Server {
	accountRepo := repository.NewAccountRepository(deps.DB)
	bookingRepo := repository.NewBookingRepository(deps.DB)
	reviewRepo := repository.NewReviewRepository(deps.DB)

	sync := mirror.NewSynchronizer(accountRepo, deps.Secondary)
	hub := notification.NewHub()

	authHandler := auth.NewHandler(auth.NewService(accountRepo, sync, deps.JWT))
	artistHandler := artist.NewHandler(artist.NewService(accountRepo, deps.Secondary, sync))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, accountRepo, notification.NewNotifier(hub)))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, bookingRepo, sync))
	adminHandler := admin.NewHandler(admin.NewService(accountRepo, bookingRepo, sync))
	wsHandler := notification.NewHandler(hub, deps.JWT, deps.CORSOrigins)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(deps.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// public
	authHandler.RegisterPublicRoutes(v1)
	artistHandler.RegisterRoutes(v1, nil)
	bookingHandler.RegisterRoutes(v1, nil)
	reviewHandler.RegisterRoutes(v1, nil)
	wsHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(deps.JWT))
	{
		authHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(nil, protected)
		reviewHandler.RegisterRoutes(nil, protected)

		artists := protected.Group("")
		artists.Use(middleware.RequireRole(domain.RoleArtist))
		artistHandler.RegisterRoutes(nil, artists)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(middleware.RequireRole(domain.RoleAdmin))
		adminHandler.RegisterRoutes(adminGroup)
	}

	return &Server{Engine: r, Sync: sync, Hub: hub}
}
