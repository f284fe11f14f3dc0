// Package gateway is the relay HTTP server: an index page, health and
// metrics endpoints, and the route that forwards a message to a chat.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/flemzord/tgrelay/internal/telegram"
)

// Sender delivers a message through the bot.
type Sender interface {
	SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error)
}

// Gateway owns the HTTP server.
type Gateway struct {
	config    Config
	sender    Sender
	metrics   *Metrics
	logger    *slog.Logger
	startedAt time.Time

	mu     sync.Mutex
	server *http.Server
	addr   net.Addr
}

// New creates a Gateway. A nil metrics gets a fresh registry.
func New(cfg Config, sender Sender, metrics *Metrics, logger *slog.Logger) *Gateway {
	cfg.defaults()
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Gateway{
		config:    cfg,
		sender:    sender,
		metrics:   metrics,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Handler returns the router without starting a server.
func (g *Gateway) Handler() http.Handler {
	return g.buildRouter()
}

// Start listens on the configured address and serves in the background.
func (g *Gateway) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.server != nil {
		return errors.New("gateway: already started")
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return fmt.Errorf("gateway: listen on %s: %w", g.config.Bind, err)
	}

	g.startedAt = time.Now()
	g.addr = ln.Addr()
	g.server = &http.Server{
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	go func(srv *http.Server) {
		g.logger.Info("web server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("web server error", "error", err)
		}
	}(g.server)

	return nil
}

// Addr returns the bound address once started, or nil.
func (g *Gateway) Addr() net.Addr {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addr
}

// Stop shuts the server down gracefully within the configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	g.mu.Lock()
	srv := g.server
	g.mu.Unlock()
	if srv == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("web server shutting down")
	return srv.Shutdown(shutdownCtx)
}
