// internal/server/server.go
// Package server exposes the plot over HTTP: a live page, JSON views, SVG
// surfaces and a websocket selection channel.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mwiater/snrplot/internal/dataset"
	"github.com/mwiater/snrplot/internal/logging"
	"github.com/mwiater/snrplot/internal/plot"
	"github.com/mwiater/snrplot/internal/report"
)

const (
	wsPath         = "/ws"
	wsReadLimit    = 512
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 50 * time.Second
)

// Options controls server behaviour.
type Options struct {
	// Sync broadcasts every selection to all connected viewers.
	Sync bool
}

// Server serves one renderer.
type Server struct {
	renderer *plot.Renderer
	hub      *Hub
	opts     Options
	page     string
	upgrader websocket.Upgrader
	engine   *gin.Engine
}

type selectionMessage struct {
	Method string `json:"method"`
}

// New builds the router and pre-renders the live page.
func New(renderer *plot.Renderer, opts Options) (*Server, error) {
	page, err := report.GenerateLive(renderer, wsPath)
	if err != nil {
		return nil, fmt.Errorf("render live page: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		renderer: renderer,
		hub:      NewHub(),
		opts:     opts,
		page:     page,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/", s.handlePage)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	api := r.Group("/api")
	api.GET("/methods", s.handleMethods)
	api.GET("/view", s.handleView)
	svg := r.Group("/plot")
	svg.GET("/scatter.svg", s.handleScatterSVG)
	svg.GET("/histogram.svg", s.handleHistogramSVG)
	r.GET(wsPath, s.handleWebsocket)

	s.engine = r
	return s, nil
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Hub exposes the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Run serves on addr until ctx is cancelled, then shuts down within
// shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	srv := &http.Server{Addr: addr, Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("[SERVE] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.LogEvent("[SERVE] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func methodParam(c *gin.Context) string {
	return c.DefaultQuery("method", dataset.AllMethods)
}

func (s *Server) handlePage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(s.page))
}

func (s *Server) handleMethods(c *gin.Context) {
	c.JSON(http.StatusOK, s.renderer.Methods())
}

func (s *Server) handleView(c *gin.Context) {
	method := methodParam(c)
	view := s.renderer.Update(method)
	logging.LogSelection("api", c.ClientIP(), method, gin.H{"count": view.Count})
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleScatterSVG(c *gin.Context) {
	var b strings.Builder
	if err := s.renderer.WriteScatterSVG(&b, s.renderer.Update(methodParam(c))); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(b.String()))
}

func (s *Server) handleHistogramSVG(c *gin.Context) {
	var b strings.Builder
	if err := s.renderer.WriteHistogramSVG(&b, s.renderer.Update(methodParam(c))); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(b.String()))
}

func (s *Server) handleWebsocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.LogEvent("[WS] upgrade error: %v", err)
		return
	}
	client := newClient(conn)
	s.hub.Register(client)
	go s.writePump(client)
	s.readPump(client)
}

// readPump handles selection messages until the connection drops.
func (s *Server) readPump(client *Client) {
	defer func() {
		s.hub.Unregister(client)
		_ = client.conn.Close()
	}()

	conn := client.conn
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.LogEvent("[WS] client %s read error: %v", client.ID, err)
			}
			return
		}

		var msg selectionMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logging.LogEvent("[WS] client %s sent invalid selection: %v", client.ID, err)
			continue
		}
		if msg.Method == "" {
			msg.Method = dataset.AllMethods
		}

		frame, err := report.RenderFrame(s.renderer, msg.Method)
		if err != nil {
			logging.LogEvent("[WS] render %q: %v", msg.Method, err)
			continue
		}
		payload, err := json.Marshal(frame)
		if err != nil {
			logging.LogEvent("[WS] encode %q: %v", msg.Method, err)
			continue
		}
		logging.LogSelection("ws", client.ID, msg.Method, gin.H{"count": frame.Count, "sync": s.opts.Sync})

		if s.opts.Sync {
			s.hub.Broadcast(payload)
		} else if !s.hub.Deliver(client, payload) {
			return
		}
	}
}

// writePump is the connection's only writer.
func (s *Server) writePump(client *Client) {
	ticker := time.NewTicker(wsPingInterval)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
