package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for the gateway.
// writeTimeout must cover the slowest upstream call, including file uploads.
func New(addr string, handler http.Handler, writeTimeout time.Duration) *http.Server {
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       writeTimeout,
		WriteTimeout:      writeTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
