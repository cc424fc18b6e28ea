// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-insights/internal/middleware"
	"github.com/go-petr/bank-insights/internal/reportdelivery"
	"github.com/go-petr/bank-insights/internal/reportservice"
	"github.com/go-petr/bank-insights/internal/tablerepo"
	"github.com/go-petr/bank-insights/pkg/clockpkg"
	"github.com/go-petr/bank-insights/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config, clock clockpkg.Clock) (*Server, error) {
	repo, err := tablerepo.New(conn, config)
	if err != nil {
		return nil, err
	}

	reportService := reportservice.New(repo, clock)
	reportHandler := reportdelivery.NewHandler(reportService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/reports", reportHandler.List)
	engine.GET("/reports/:name", reportHandler.Run)
	engine.GET("/audit", reportHandler.Audit)
	engine.POST("/batch", reportHandler.Batch)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
