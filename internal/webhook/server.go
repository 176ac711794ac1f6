package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vladimiradmaev/dm-webhook/internal/logger"
)

// Server is the HTTP surface of the fulfillment service.
type Server struct {
	httpServer *http.Server
}

func NewServer(port string, handler *Handler) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", handler.Fulfill)
	mux.HandleFunc("GET /healthz", handler.Healthz)

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + port,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Webhook server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("webhook server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook server shutdown: %w", err)
		}
		return nil
	}
}
