// Package httptransport builds the tracker's HTTP server.
package httptransport

import (
	"net/http"
	"time"

	"example.com/tracker/internal/config"
)

// Timeouts guard against slow clients; store calls are separately bounded by
// the Mongo operation timeout.
const (
	readTimeout  = 5 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// NewServer creates the *http.Server for the configured address.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddress,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}
