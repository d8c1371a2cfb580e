package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"viewtech-backend/pkg/container"
)

type Server struct {
	httpServer *http.Server
	container  *container.Container
}

func NewServer(c *container.Container) *Server {
	router := NewRouter(c)

	return &Server{
		container: c,
		httpServer: &http.Server{
			Addr:         ":" + c.Config.App.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
