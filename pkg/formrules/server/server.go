// Package server exposes schema storage and form validation over HTTP.
//
// Routes:
//
//	PUT    /forms/{id}           store a schema (JSON or YAML body)
//	GET    /forms                list stored forms
//	GET    /forms/{id}           fetch a schema as JSON
//	DELETE /forms/{id}           delete a schema
//	POST   /forms/{id}/validate  validate {"values": {...}}
//	POST   /evaluate             evaluate {"expression", "variables", "options"}
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/randalmurphal/formrules/pkg/formrules"
	"github.com/randalmurphal/formrules/pkg/formrules/postfix"
	"github.com/randalmurphal/formrules/pkg/formrules/store"
)

// Server serves the HTTP API on top of a schema store.
type Server struct {
	store          store.Store
	logger         *slog.Logger
	validatorOpts  []formrules.Option
	evaluatorOpts  []postfix.Option
	readTimeout    time.Duration
	writeTimeout   time.Duration
	maxRequestSize int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithValidatorOptions applies opts to every validator the server builds.
func WithValidatorOptions(opts ...formrules.Option) Option {
	return func(s *Server) {
		s.validatorOpts = append(s.validatorOpts, opts...)
	}
}

// WithEvaluatorOptions applies opts to /evaluate and to every postfix rule.
func WithEvaluatorOptions(opts ...postfix.Option) Option {
	return func(s *Server) {
		s.evaluatorOpts = append(s.evaluatorOpts, opts...)
	}
}

// WithTimeouts sets the read and write timeouts. Zero values are ignored.
//
// Default: 30s each
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
	}
}

// New creates a Server backed by st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:          st,
		readTimeout:    30 * time.Second,
		writeTimeout:   30 * time.Second,
		maxRequestSize: 1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler routes a request. It is the fasthttp.RequestHandler of the server.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/evaluate":
		s.allow(ctx, method, fasthttp.MethodPost, s.handleEvaluate)
	case path == "/forms" || path == "/forms/":
		s.allow(ctx, method, fasthttp.MethodGet, s.handleList)
	case strings.HasPrefix(path, "/forms/"):
		s.routeForm(ctx, method, strings.TrimPrefix(path, "/forms/"))
	default:
		writeError(ctx, fasthttp.StatusNotFound, fmt.Errorf("no route for %s", path))
	}

	if s.logger != nil {
		s.logger.Info("request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", ctx.Response.StatusCode()),
			slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
		)
	}
}

func (s *Server) routeForm(ctx *fasthttp.RequestCtx, method, rest string) {
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(ctx, fasthttp.StatusNotFound, store.ErrEmptyFormID)
		return
	}

	switch action {
	case "":
		switch method {
		case fasthttp.MethodPut:
			s.handlePut(ctx, id)
		case fasthttp.MethodGet:
			s.handleGet(ctx, id)
		case fasthttp.MethodDelete:
			s.handleDelete(ctx, id)
		default:
			methodNotAllowed(ctx, "PUT, GET, DELETE")
		}
	case "validate":
		s.allow(ctx, method, fasthttp.MethodPost, func(ctx *fasthttp.RequestCtx) {
			s.handleValidate(ctx, id)
		})
	default:
		writeError(ctx, fasthttp.StatusNotFound, fmt.Errorf("no route for /forms/%s", rest))
	}
}

func (s *Server) allow(ctx *fasthttp.RequestCtx, method, want string, h fasthttp.RequestHandler) {
	if method != want {
		methodNotAllowed(ctx, want)
		return
	}
	h(ctx)
}

func methodNotAllowed(ctx *fasthttp.RequestCtx, allowed string) {
	ctx.Response.Header.Set("Allow", allowed)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, errors.New("method not allowed"))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler,
		Name:               "formrules",
		ReadTimeout:        s.readTimeout,
		WriteTimeout:       s.writeTimeout,
		MaxRequestBodySize: s.maxRequestSize,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	if s.logger != nil {
		s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
	}

	select {
	case err := <-errCh:
		ln.Close()
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		ln.Close()
		return nil
	}
}
