package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dtroode/newsletter-server/internal/model"
)

const readHeaderTimeout = 10 * time.Second

// HTTPServer wraps an http.Server with address and lifecycle methods.
type HTTPServer struct {
	server *http.Server
	addr   string
}

var _ model.Server = (*HTTPServer)(nil)

// NewHTTPServer creates an HTTPServer serving handler on addr.
func NewHTTPServer(
	handler http.Handler,
	addr string,
) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		addr: addr,
	}
}

// Start starts serving on the configured address using the provided security layer.
// It blocks until the server stops and returns nil after a graceful Stop.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	err = s.server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully stops the server, waiting for in-flight requests until ctx is done.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
