package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/codecohort/alumni-directory/docs"
	"github.com/codecohort/alumni-directory/internal/api/handler"
	"github.com/codecohort/alumni-directory/internal/api/middleware"
	"github.com/codecohort/alumni-directory/internal/core/ports"
)

// Dependencies are the services and clients the router needs. Mongo and
// Redis are only used by the readiness probe and may be nil.
type Dependencies struct {
	Users    ports.UserService
	Cohorts  ports.CohortService
	Projects ports.ProjectService
	GitHub   ports.GitHubService

	Mongo *mongo.Client
	Redis *redis.Client

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	CORSOrigins []string
	Logger      zerolog.Logger
}

// NewRouter builds the Echo instance with every route registered both at the
// root and under /api.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 "alumni",
		Registerer:                deps.Registerer,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Operational endpoints ---
	health := handler.NewHealthHandler(deps.Mongo, deps.Redis)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	register(e.Group(""), deps)
	register(e.Group("/api"), deps)

	return e
}

func register(g *echo.Group, deps Dependencies) {
	users := handler.NewUserHandler(deps.Users)
	cohorts := handler.NewCohortHandler(deps.Cohorts)
	projects := handler.NewProjectHandler(deps.Projects)
	oauth := handler.NewOAuthHandler(deps.GitHub)

	g.GET("/", handler.Root)

	g.GET("/cohorts", cohorts.List)
	g.POST("/cohorts/new", cohorts.Create)
	g.PUT("/cohorts/:id", cohorts.Update)

	g.GET("/users", users.List)
	g.POST("/users/new", users.Register)
	g.GET("/users/:username", users.Get)
	g.PUT("/users/:username", users.Update)
	g.DELETE("/users/:id", users.Delete)

	g.GET("/projects", projects.List)
	g.GET("/projects/collab/:username", projects.ListCollab)
	g.GET("/projects/:username", projects.ListByOwner)
	g.GET("/project/:id", projects.Get)
	g.POST("/project/add", projects.Create)
	g.PUT("/project/:id", projects.Update)
	g.DELETE("/project/:id", projects.Delete)

	g.GET("/getAccessToken", oauth.AccessToken)
	g.GET("/getUserData", oauth.UserData)
}
