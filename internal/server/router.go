package server

import (
	"fmt"
	"net/http"

	"studiobook/internal/config"
	"studiobook/internal/middleware"
	"studiobook/internal/modules/auth"
	"studiobook/internal/modules/booking"
	"studiobook/internal/modules/engineer"
	"studiobook/internal/pkg/jwt"
	"studiobook/internal/pkg/response"
	"studiobook/internal/pkg/validator"
	"studiobook/internal/realtime"
	"studiobook/internal/studiolock"

	"github.com/gin-gonic/gin"
)

// Dependencies are the stateful pieces the router is built around.
type Dependencies struct {
	Reservations booking.ReservationRepository
	Engineers    engineer.EngineerRepository
	Locker       studiolock.Locker
	Hub          *realtime.Hub
}

// NewRouter wires services, handlers and middleware into a gin engine.
func NewRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validator.RegisterBindingValidations(); err != nil {
		return nil, fmt.Errorf("register validations: %w", err)
	}

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	bookingService := booking.NewService(deps.Reservations, deps.Engineers, deps.Locker, deps.Hub)
	engineerService := engineer.NewService(deps.Engineers, deps.Reservations, deps.Hub)
	authService := auth.NewService(cfg.AdminEmail, cfg.AdminPasswordHash, jwtService)

	bookingHandler := booking.NewHandler(bookingService)
	engineerHandler := engineer.NewHandler(engineerService)
	authHandler := auth.NewHandler(authService)
	realtimeHandler := realtime.NewHandler(deps.Hub, cfg.CORSAllowedOrigins)

	r := gin.New()
	if !cfg.TrustProxy {
		if err := r.SetTrustedProxies(nil); err != nil {
			return nil, fmt.Errorf("trusted proxies: %w", err)
		}
	}
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	submitLimiter := middleware.NewRateLimiter(cfg.SubmitRatePerMin)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMin)

	v1 := r.Group("/api/v1")
	{
		// public
		bookingHandler.RegisterPublicRoutes(v1, submitLimiter.Middleware())
		authHandler.RegisterPublicRoutes(v1, loginLimiter.Middleware())
		realtimeHandler.RegisterRoutes(v1)

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(jwtService), middleware.AdminOnly())
		{
			authHandler.RegisterProtectedRoutes(admin)
			bookingHandler.RegisterAdminRoutes(admin)
			engineerHandler.RegisterAdminRoutes(admin)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return r, nil
}
