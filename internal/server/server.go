// Package server exposes the parser over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdparse/internal/logging"
	"github.com/yaklabco/gomdparse/pkg/parser"
	"github.com/yaklabco/gomdparse/pkg/render"
)

// DefaultMaxBodyBytes caps request bodies when Options leaves it unset.
const DefaultMaxBodyBytes int64 = 4 << 20

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Options configures the router and server.
type Options struct {
	// Addr is the listen address, host:port.
	Addr string

	// MaxBodyBytes caps the Markdown accepted per request.
	MaxBodyBytes int64

	// Parser parses request bodies. Nil means parser.Default().
	Parser *parser.Parser

	// HTML configures /v1/render?format=html.
	HTML render.HTMLOptions

	// Logger receives one line per request. Nil means logging.Default().
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if o.Parser == nil {
		o.Parser = parser.Default()
	}
	if o.Logger == nil {
		o.Logger = logging.Default()
	}
	return o
}

// NewRouter creates a chi router with all routes mounted.
func NewRouter(opts Options) chi.Router {
	opts = opts.withDefaults()
	h := &handler{opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(opts.Logger))

	r.Get("/health", h.health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/parsers", h.parsers)
		r.Post("/parse", h.parse)
		r.Post("/render", h.render)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. A nil
// listener listens on opts.Addr.
func Run(ctx context.Context, opts Options, listener net.Listener) error {
	opts = opts.withDefaults()

	if listener == nil {
		var lc net.ListenConfig
		l, err := lc.Listen(ctx, "tcp", opts.Addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", opts.Addr, err)
		}
		listener = l
	}

	httpServer := &http.Server{
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		opts.Logger.Info("serving", logging.FieldAddr, listener.Addr().String())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		opts.Logger.Info("server stopped")
		return nil
	})

	return group.Wait()
}

// requestLogger logs each request at debug level, and failures at warn.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			keyvals := []any{
				logging.FieldMethod, r.Method,
				logging.FieldRoute, r.URL.Path,
				logging.FieldStatus, ww.Status(),
				logging.FieldDuration, time.Since(start),
				logging.FieldRequestID, middleware.GetReqID(r.Context()),
			}

			if ww.Status() >= http.StatusBadRequest {
				logger.Warn("request", keyvals...)
				return
			}
			logger.Debug("request", keyvals...)
		})
	}
}
