// Package api exposes lookups over HTTP for serve mode. It provides a small
// Gin-based server with endpoints for resolving names, health checks, and
// runtime statistics.
//
// Security note: do not expose the API to untrusted networks without an
// API key configured.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sys/unix"
)

// Server is the HTTP lookup server.
type Server struct {
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds a Server listening on addr. An empty apiKey disables
// authentication.
func New(addr, apiKey string, h *Handler, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(slogRequestLogger(logger))

	registerRoutes(engine, h, apiKey)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{logger: logger, engine: engine, httpServer: httpServer}
}

func registerRoutes(r *gin.Engine, h *Handler, apiKey string) {
	api := r.Group("/api/v1")

	// Optional API key protection. Health stays public.
	api.GET("/health", h.Health)

	protected := api.Group("")
	if apiKey != "" {
		protected.Use(requireAPIKey(apiKey))
	}
	protected.GET("/resolve", h.Resolve)
	protected.GET("/stats", h.Stats)
}

func (s *Server) Addr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.Addr
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// ListenAndServe binds the address with SO_REUSEPORT and serves until
// Shutdown is called or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := listenTCPReusePort(ctx, s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// listenTCPReusePort creates a TCP listener with SO_REUSEPORT enabled,
// so several server processes can share the same address and let the
// kernel spread incoming connections across them.
func listenTCPReusePort(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			return c.Control(func(fd uintptr) {
				_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
			})
		},
	}
	return lc.Listen(ctx, "tcp", addr)
}
