package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Server streams benchmark events to connected dashboards over
// websocket and serves the aggregated run state as JSON.
type Server struct {
	mu        sync.RWMutex
	collector *EventCollector
	dashboard *DashboardData
	clients   map[*websocket.Conn]chan Event
	addr      string
	server    *http.Server

	upgrader websocket.Upgrader
}

// NewServer creates a new monitor server.
func NewServer(
	addr string,
	collector *EventCollector,
	dashboard *DashboardData,
) *Server {
	return &Server{
		addr:      addr,
		collector: collector,
		dashboard: dashboard,
		clients:   make(map[*websocket.Conn]chan Event),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the HTTP handler serving the websocket and state
// endpoints. Useful for mounting under an existing server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Start begins serving and blocks until the context is cancelled or
// the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	s.collector.OnEvent(func(event Event) {
		s.dashboard.UpdateFromEvent(event)
		s.broadcast(event)
	})

	go func() {
		<-ctx.Done()
		s.server.Close()
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	ch := make(chan Event, 32)
	s.mu.Lock()
	s.clients[conn] = ch
	s.mu.Unlock()

	// Send the current dashboard state so late joiners catch up.
	snap := s.dashboard.Snapshot()
	if err := conn.WriteJSON(stateMessage{Type: "state", State: snap}); err != nil {
		s.dropClient(conn)
		return
	}

	go s.writeLoop(conn, ch)
	s.readLoop(conn)
}

type stateMessage struct {
	Type  string        `json:"type"`
	State DashboardData `json:"state"`
}

type eventMessage struct {
	Type  string `json:"type"`
	Event Event  `json:"event"`
}

// writeLoop drains the client's event channel until it closes.
func (s *Server) writeLoop(conn *websocket.Conn, ch chan Event) {
	for event := range ch {
		if err := conn.WriteJSON(eventMessage{Type: "event", Event: event}); err != nil {
			s.dropClient(conn)
			return
		}
	}
}

// readLoop consumes inbound frames to detect the client closing.
func (s *Server) readLoop(conn *websocket.Conn) {
	defer s.dropClient(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) dropClient(conn *websocket.Conn) {
	s.mu.Lock()
	if ch, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		close(ch)
	}
	s.mu.Unlock()
	conn.Close()
}

func (s *Server) broadcast(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.clients {
		select {
		case ch <- event:
		default:
			// Client too slow, skip
		}
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap := s.dashboard.Snapshot()
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.collector.Events())
}
