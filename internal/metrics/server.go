package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server exposes /metrics and /healthz on a local address.
// It is disabled when the address is empty.
type Server struct {
	logger *zap.Logger
	addr   string
	srv    *http.Server
}

// NewServer creates a metrics server bound to addr
func NewServer(logger *zap.Logger, m *Metrics, addr string) *Server {
	return &Server{
		logger: logger,
		addr:   addr,
		srv:    &http.Server{Addr: addr, Handler: NewRouter(m)},
	}
}

// NewRouter builds the chi router serving the metrics endpoints
func NewRouter(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Get("/metrics", m.Handler().ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Start begins listening in the background
func (s *Server) Start(ctx context.Context) error {
	if s.addr == "" {
		s.logger.Debug("Metrics server disabled")
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Metrics server error", zap.Error(err))
		}
	}()

	s.logger.Info("Metrics server listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	if s.addr == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
