package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	searchTimeout  = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // same policy as the REST CORS headers
	},
}

// Searcher resolves a query to box score links.
type Searcher interface {
	Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error)
}

// Request is one inbound message. ID is echoed back so clients can pipeline.
type Request struct {
	ID string `json:"id,omitempty"`
	domain.SearchQuery
}

// Response answers one Request; exactly one of Result and Error is set.
type Response struct {
	ID     string               `json:"id,omitempty"`
	Result *domain.SearchResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
	Fields map[string]string    `json:"fields,omitempty"`
}

// Server upgrades /ws/search connections and answers each query message
type Server struct {
	searcher Searcher
	logger   *zap.Logger

	mu      sync.Mutex
	clients int
}

// NewServer creates a new WebSocket search server
func NewServer(searcher Searcher, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{searcher: searcher, logger: logger.Named("websocket")}
}

// ClientCount returns the number of open connections
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients
}

func (s *Server) track(delta int) {
	s.mu.Lock()
	s.clients += delta
	s.mu.Unlock()
}

// ServeHTTP handles the upgrade and blocks until the client goes away
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	s.track(1)
	defer s.track(-1)

	client := &Client{
		server: s,
		conn:   conn,
		send:   make(chan Response, 16),
		done:   make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go client.writePump()
	client.readPump(ctx)
}

// Client is one socket. readPump owns reads, writePump owns writes.
type Client struct {
	server *Server
	conn   *websocket.Conn
	send   chan Response
	done   chan struct{} // closed when writePump exits
}

// reply queues resp unless the writer is gone.
func (c *Client) reply(resp Response) bool {
	select {
	case c.send <- resp:
		return true
	case <-c.done:
		return false
	}
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		close(c.send)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.logger.Debug("read failed", zap.Error(err))
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			if !c.reply(Response{Error: "invalid message: " + err.Error()}) {
				return
			}
			continue
		}

		if !c.reply(c.server.answer(ctx, req)) {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case resp, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(resp); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) answer(ctx context.Context, req Request) Response {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	result, err := s.searcher.Search(ctx, req.SearchQuery)
	if err == nil {
		return Response{ID: req.ID, Result: result}
	}

	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return Response{ID: req.ID, Error: "invalid search query", Fields: verrs.Fields()}
	}

	s.logger.Error("search failed", zap.String("id", req.ID), zap.Error(err))
	return Response{ID: req.ID, Error: "failed to resolve box score links"}
}
