package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/inspectia/label-verify/internal/store"
	"github.com/inspectia/label-verify/internal/verify"
)

// Verifier runs one label verification. Satisfied by *verify.Engine.
type Verifier interface {
	Verify(ctx context.Context, ref *verify.LabelReference, req verify.Request) (*verify.VerificationResult, error)
}

// Server wires the verification engine and stores into HTTP handlers.
type Server struct {
	verifier   Verifier
	references store.ReferenceRegistry
	results    store.ResultStore
}

// New creates a server around its collaborators.
func New(verifier Verifier, references store.ReferenceRegistry, results store.ResultStore) *Server {
	return &Server{
		verifier:   verifier,
		references: references,
		results:    results,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api/v1")
	{
		api.GET("/health", s.HealthCheck)
		api.POST("/references", s.CreateReference)
		api.GET("/references/:id", s.GetReference)
		api.POST("/references/:id/verify", s.VerifyLabel)
		api.GET("/references/:id/results", s.ListResults)
	}

	return router
}
