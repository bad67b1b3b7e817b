package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/staffhub/employee-api/docs"
	"github.com/staffhub/employee-api/internal/api/handler"
	"github.com/staffhub/employee-api/internal/api/middleware"
	"github.com/staffhub/employee-api/internal/core/service"
	"github.com/staffhub/employee-api/internal/infrastructure/config"
	mongodb "github.com/staffhub/employee-api/internal/infrastructure/db/mongo"
	redisdb "github.com/staffhub/employee-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/staffhub/employee-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("employee_api"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	repo := mongodb.NewEmployeeRepository(db)
	issuer := service.NewTokenIssuer(
		cfg.Token.AccessSecret, cfg.Token.RefreshSecret,
		cfg.Token.AccessTTL, cfg.Token.RefreshTTL,
	)
	limiter := redisdb.NewLoginLimiter(rdb)

	authService := service.NewAuthService(repo, issuer, limiter, log)
	employeeService := service.NewEmployeeService(repo, log)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	requireAuth := middleware.Auth(cfg.Token.AccessSecret, repo)

	// --- Employee routes ---
	g := e.Group("/api/v1/employee")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.POST("/logout", authHandler.Logout, requireAuth)
	g.GET("/getemployee", employeeHandler.Get, requireAuth)
	g.GET("/getemployees", employeeHandler.GetAll, requireAuth)
	g.PATCH("/update", employeeHandler.Update, requireAuth)
	g.DELETE("/delete", employeeHandler.Delete, requireAuth)
	// Deliberately unauthenticated: preserved contract defect (DESIGN.md).
	g.DELETE("/deleteemployee", employeeHandler.DeleteByID)

	// --- Operational routes ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
