package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"calboss/internal/middleware"
	scheduleHTTP "calboss/internal/schedule/delivery/http"
	"calboss/internal/schedule/repository"
	"calboss/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	middleware  middleware.Middleware

	// Schedule domain
	scheduleHandler scheduleHTTP.Handler
	calendarStore   repository.CalendarStore
	backend         string
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string
	Middleware  middleware.Middleware

	// Schedule domain
	ScheduleHandler scheduleHTTP.Handler
	CalendarStore   repository.CalendarStore // checked by /ready
	Backend         string                   // provider name shown by /health
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		middleware:      cfg.Middleware,
		scheduleHandler: cfg.ScheduleHandler,
		calendarStore:   cfg.CalendarStore,
		backend:         cfg.Backend,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.scheduleHandler == nil {
		return errors.New("schedule handler is required")
	}
	if srv.calendarStore == nil {
		return errors.New("calendar store is required")
	}
	return nil
}

// Handler exposes the engine, mainly for tests.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
