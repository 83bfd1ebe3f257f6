package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AntonioJadrejci/CroAviationBackend/internal/api/handler"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/api/middleware"
	"github.com/AntonioJadrejci/CroAviationBackend/internal/core/ports"
)

// Deps carries everything the router needs. Repositories and the counter
// dispatcher are constructed in main so their lifecycles (index creation,
// worker start/stop) stay out of the HTTP layer.
type Deps struct {
	DB             *mongo.Database
	AuthService    ports.AuthService
	PlaneService   ports.PlaneService
	Files          handler.FileStore
	UploadDir      string
	AllowedOrigins []string
	// Metrics overrides the default Prometheus registry. Leave nil in
	// production; tests pass their own so routers can be built repeatedly.
	Metrics *prometheus.Registry
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	registerer := prometheus.Registerer(prometheus.DefaultRegisterer)
	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if d.Metrics != nil {
		registerer = d.Metrics
		gatherer = d.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "croaviation",
		Registerer: registerer,
	}))
	if len(d.AllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: d.AllowedOrigins,
		}))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	planeHandler := handler.NewPlaneHandler(d.PlaneService, d.Files)
	profileHandler := handler.NewProfileHandler(d.PlaneService, d.Files)
	healthHandler := handler.NewHealthHandler(d.DB)
	authRequired := middleware.Auth(d.AuthService)

	// --- Routes ---
	api := e.Group("/api")

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/refresh-token", authHandler.Refresh)

	api.GET("/profile", profileHandler.Get, authRequired)
	api.POST("/upload-profile-image", profileHandler.UploadImage, authRequired)
	api.POST("/add-plane", planeHandler.Add, authRequired)
	api.DELETE("/delete-account", profileHandler.DeleteAccount, authRequired)

	api.GET("/planes/:airport", planeHandler.List)
	api.GET("/planes/:airport/:airline", planeHandler.List)
	api.GET("/airlines/:airport", planeHandler.Airlines)

	api.GET("/health", healthHandler.Status)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
	e.Static("/uploads", d.UploadDir)

	return e
}
