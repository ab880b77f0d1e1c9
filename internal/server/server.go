package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New creates a server around an already-configured router.
func New(router *gin.Engine, port string) *Server {
	return &Server{
		router: router,
		http: &http.Server{
			Addr: ":" + port,
			// Normalizes the router's plain-text 404/405 bodies to
			// JSON and backstops panics.
			Handler: middleware.ErrorHandler(router),
		},
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
