package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/Astemirdum/library-resource/library/config"
	"github.com/labstack/echo/v4"
)

type Server struct {
	srv *http.Server
}

func NewServer(cfg config.HTTPServer, router *echo.Echo) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Run blocks until the server stops; a graceful Stop is not an error.
func (s *Server) Run() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
