package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/metrics"
	"github.com/fortuna/gridiron/internal/publisher"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// Server represents the WebSocket server. It relays report-generation
// events from the Redis stream to every connected client.
type Server struct {
	addr    string
	server  *http.Server
	hub     *Hub
	cache   *cache.RedisCache
	metrics *metrics.Metrics
}

// NewServer creates a new WebSocket server
func NewServer(c *cache.RedisCache, m *metrics.Metrics) *Server {
	return &Server{
		hub:     NewHub(),
		cache:   c,
		metrics: m,
	}
}

// Start starts the WebSocket server and the stream relay
func (s *Server) Start(ctx context.Context, addr string) error {
	s.addr = addr

	// Start the hub in a goroutine
	go s.hub.Run()

	// Relay report events from Redis to connected clients
	if s.cache != nil {
		go s.relayReportEvents(ctx)
	}

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/reports", s.handleReports)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("WebSocket server listening on %s", addr)
	return s.server.ListenAndServe()
}

// handleReports handles WebSocket connections for report updates
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client
	if s.metrics != nil {
		s.metrics.WSClients.Inc()
	}

	// Start client goroutines
	go client.writePump()
	go func() {
		client.readPump()
		if s.metrics != nil {
			s.metrics.WSClients.Dec()
		}
	}()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// relayReportEvents blocks on the report stream and broadcasts every
// event. Runs until the context is cancelled.
func (s *Server) relayReportEvents(ctx context.Context) {
	client := s.cache.Client()
	lastID := "$"

	log.Printf("Relaying %s stream to WebSocket clients", publisher.ReportStream)

	for {
		if ctx.Err() != nil {
			return
		}

		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{publisher.ReportStream, lastID},
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Printf("⚠️  Stream read failed: %v", err)
			time.Sleep(2 * time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				lastID = message.ID
				if data, ok := message.Values["data"].(string); ok {
					s.hub.Broadcast([]byte(data))
				}
			}
		}
	}
}

// Broadcast sends a message to all connected clients
func (s *Server) Broadcast(data []byte) {
	s.hub.Broadcast(data)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
