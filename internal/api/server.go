// Package api exposes the settlement desk over HTTP.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/settlement-desk/internal/datasource"
	"github.com/rxtech-lab/settlement-desk/internal/logger"
	"github.com/rxtech-lab/settlement-desk/internal/submission"
	"github.com/rxtech-lab/settlement-desk/internal/tokens"
	"go.uber.org/zap"
)

// Options wires the server to its collaborators.
type Options struct {
	Repository datasource.TradeRepository
	Submitter  submission.Submitter
	// Balances is optional; without it the balances route answers 501.
	Balances tokens.BalanceProvider
	// Account is the address new trades are proposed from.
	Account    string
	FetchLimit int
	PageSize   int
	Logger     *logger.Logger
}

// Server serves the trade list, trade detail, creation and status routes.
type Server struct {
	opts       Options
	router     *mux.Router
	httpServer *http.Server
	listener   net.Listener
}

// NewServer builds the router. Call Start to listen.
func NewServer(opts Options) *Server {
	if opts.PageSize <= 0 {
		opts.PageSize = 5
	}

	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}

	s := &Server{opts: opts}

	router := mux.NewRouter()
	router.Use(s.logRequests)

	router.HandleFunc("/trades", s.handleListTrades).Methods(http.MethodGet)
	router.HandleFunc("/trades", s.handleCreateTrade).Methods(http.MethodPost)
	router.HandleFunc("/trades/{id}", s.handleGetTrade).Methods(http.MethodGet)
	router.HandleFunc("/trades/{id}", s.handleUpdateStatus).Methods(http.MethodPatch)
	router.HandleFunc("/accounts/{address}/balances", s.handleBalances).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.router = router

	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on address and serves in the background.
// An empty address or ":0" picks a free port.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.opts.Logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	s.opts.Logger.Info("HTTP server listening", zap.String("address", s.Address()))

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.opts.Logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
