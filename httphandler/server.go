// Description: admin http server
// Serves the prometheus exposition endpoint and a liveness probe next to
// the file-serving frontends.

package httphandler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is a wrapper around http.Server that provides additional functionality.
type Server struct {
	*http.Server
}

// NewAdminServer returns the admin server: /metrics with the prometheus
// exposition format and /healthz for liveness probes.
func NewAdminServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return &Server{
		Server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// TryListenAndServe starts the server and returns nil if the server started successfully within d, otherwise it returns an error.
func (s *Server) TryListenAndServe(d time.Duration) error {
	errC := make(chan error)
	go func() {
		err := s.Server.ListenAndServe()
		if err != nil {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return err
	case <-time.After(d):
		return nil
	}
}
