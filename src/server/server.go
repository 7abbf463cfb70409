package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"

	"samplecatalog/src/services/auth"
	"samplecatalog/src/services/samples"
)

// Server is the HTTP shell around the GraphQL schema. It owns no business
// logic: claims extraction, request decoding and response shaping only.
type Server struct {
	logger         *slog.Logger
	server         *http.Server
	mux            *http.ServeMux
	port           int
	sampleService  *samples.Service
	tokenParser    *auth.TokenParser
	schema         graphql.Schema
	disableAuth    bool
	requiredDomain string
}

func NewServer(
	logger *slog.Logger,
	port int,
	sampleService *samples.Service,
	tokenParser *auth.TokenParser,
	disableAuth bool,
	requiredDomain string,
) (*Server, error) {
	schema, err := newSchema(sampleService)
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	server := &Server{
		logger:         logger,
		mux:            http.NewServeMux(),
		port:           port,
		sampleService:  sampleService,
		tokenParser:    tokenParser,
		schema:         schema,
		disableAuth:    disableAuth,
		requiredDomain: requiredDomain,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	server.mux.HandleFunc("POST /graphql", server.GraphQL)
	server.mux.HandleFunc("GET /graphiql", server.GraphiQL)
	server.mux.HandleFunc("GET /ping", server.Ping)
	server.mux.HandleFunc("GET /health", server.Health)
	server.mux.HandleFunc("GET /~/ready", server.Ready)

	return server, nil
}

// Handler exposes the routing table, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
