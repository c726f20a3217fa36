// Package httpapi exposes the command protocol over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MauroGomes09/Unireserva/internal/controller/protocol"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Options configure the HTTP front-end.
type Options struct {
	Addr           string
	CertFile       string
	KeyFile        string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func (o Options) tls() bool { return o.CertFile != "" && o.KeyFile != "" }

// Server is the HTTP front-end.
type Server struct {
	opts    Options
	srv     *http.Server
	limiter *RateLimiter
	logger  *zap.Logger
}

func NewServer(dispatcher *protocol.Dispatcher, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	limiter := NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)
	s := &Server{opts: opts, limiter: limiter, logger: logger}
	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           NewHandler(dispatcher, opts, limiter, logger),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}
	return s
}

// NewHandler builds the routed handler with its middleware chain:
// logging, security headers, CORS, rate limit, router.
func NewHandler(dispatcher *protocol.Dispatcher, opts Options, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	h := &handlers{dispatcher: dispatcher, logger: logger}

	router := httprouter.New()
	router.POST("/", h.command)
	router.GET("/salas", h.rooms)
	router.GET("/health", h.health)
	if opts.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", opts.Metrics)
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
	}).Handler(limiter.Limit(router))

	return requestLogger(logger, securityHeaders(opts.tls(), corsHandler))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	scheme := "http"
	if s.opts.tls() {
		scheme = "https"
	}
	s.logger.Info("Server listening", zap.String("addr", ln.Addr().String()), zap.String("scheme", scheme))

	go func() {
		var err error
		if s.opts.tls() {
			err = s.srv.ServeTLS(ln, s.opts.CertFile, s.opts.KeyFile)
		} else {
			err = s.srv.Serve(ln)
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	sweep := time.NewTicker(time.Minute)
	defer sweep.Stop()

	for {
		select {
		case err := <-errCh:
			return err
		case <-sweep.C:
			s.limiter.Sweep()
		case <-ctx.Done():
			s.logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := s.srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown http server: %w", err)
			}
			return <-errCh
		}
	}
}
