package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Rorical/flightai/internal/core"
	"github.com/Rorical/flightai/internal/tools"
)

type Deps struct {
	Turns      core.Turns // Nil when no API key is configured
	Translator Translator // Nil when translation is disabled
	Bookings   BookingReader
	Registry   *tools.Registry
}

// Server is the HTTP presentation shell
type Server struct {
	engine *gin.Engine
	log    logrus.FieldLogger
}

func New(deps Deps, log logrus.FieldLogger) *Server {
	log = log.WithField("component", "server")
	g := gin.New()
	initRouter(g, &Handler{
		turns:      deps.Turns,
		translator: deps.Translator,
		bookings:   deps.Bookings,
		registry:   deps.Registry,
		log:        log,
	}, log)
	return &Server{engine: g, log: log}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
