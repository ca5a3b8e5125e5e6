// Package server runs an http.Handler on a listen address with logged startup and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Server struct {
	listenAddress string
	server        *http.Server
	listener      net.Listener

	logger *zerolog.Logger
}

func NewServer(
	listenAddress string,
	handler http.Handler,
	logger *zerolog.Logger,
) (*Server, error) {
	if handler == nil {
		return nil, errors.New("handler is required")
	}

	server := &Server{
		listenAddress: listenAddress,
		logger:        logger,
		server: &http.Server{
			Addr:              listenAddress,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	return server, nil
}

// Listen binds the listen address. It is called by Serve when it has not been called already. Calling it first
// makes the bound address available through Addr, which is useful with port 0.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}

	listener, err := net.Listen("tcp", s.listenAddress)
	if err != nil {
		return err
	}
	s.listener = listener

	return nil
}

// Addr returns the bound address or the configured listen address when not yet bound.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.listenAddress
}

func (s *Server) Serve() error {
	err := s.Listen()
	if err != nil {
		return err
	}

	s.logger.Info().Str("listen_address", s.Addr()).Msg("Starting HTTP server")

	err = s.server.Serve(s.listener)
	if err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server")
	s.server.SetKeepAlivesEnabled(false)
	err := s.server.Shutdown(ctx)
	if err != nil {
		return err
	}

	return nil
}
