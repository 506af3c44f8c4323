package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server runs the HTTP API.
type Server struct {
	Engine *gin.Engine
	server *http.Server
}

// NewServer creates a server listening on port.
func NewServer(cfg RouterConfig, port int) *Server {
	engine := NewRouter(cfg)
	return &Server{
		Engine: engine,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving requests until Stop is called.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting for in-flight requests until ctx ends.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
