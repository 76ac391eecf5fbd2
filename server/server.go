// Package server serves the inscriptions dashboard: four page shells and a
// JSON API over the query engine. All state lives in the Session; handlers
// are request/response with a full synchronous re-evaluation per call.
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/epigraph-tools/lapis/render"
)

// Server is the dashboard HTTP server.
type Server struct {
	echo    *echo.Echo
	log     *zap.Logger
	session *Session
	charts  render.ChartBuilder
	title   string
}

// New wires routes and middleware around a session.
func New(session *Session, charts render.ChartBuilder, title string, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))

	s := &Server{
		echo:    e,
		log:     log,
		session: session,
		charts:  charts,
		title:   title,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.Page("overview"))
	s.echo.GET("/search", s.Page("search"))
	s.echo.GET("/statistics", s.Page("statistics"))
	s.echo.GET("/about", s.Page("about"))
	s.echo.GET("/static/app.js", s.AppJS)

	api := s.echo.Group("/api")
	api.GET("/summary", s.GetSummary)
	api.GET("/records", s.GetRecords)
	api.GET("/options", s.GetOptions)
	api.GET("/stats", s.GetStats)
	api.GET("/timeline", s.GetTimeline)
	api.GET("/export", s.GetExport)
	api.GET("/profile", s.GetProfile)
	api.POST("/upload", s.PostUpload)
}

// Start blocks serving on addr.
func (s *Server) Start(addr string) error {
	s.log.Info("dashboard listening",
		zap.String("addr", addr),
		zap.String("session", s.session.ID.String()))
	return s.echo.Start(addr)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() *echo.Echo { return s.echo }
