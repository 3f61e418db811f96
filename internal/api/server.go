// Package api provides a local HTTP/WebSocket status server for the
// pointer controller.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"

	"mousekeys/internal/config"
	"mousekeys/internal/controller"
	"mousekeys/internal/physics"
)

// Server exposes controller status over HTTP and state transitions over
// WebSocket.
type Server struct {
	configMgr *config.Manager
	ctrl      *controller.Controller
	loop      *physics.Loop
	token     string
	wsMgr     *WSManager
}

// NewServer creates a new API server
func NewServer(configMgr *config.Manager, ctrl *controller.Controller, loop *physics.Loop) *Server {
	s := &Server{
		configMgr: configMgr,
		ctrl:      ctrl,
		loop:      loop,
	}
	s.wsMgr = newWSManager(s)
	return s
}

// Start starts the API server on the specified port. Blocking.
func (s *Server) Start(port int) error {
	cfg := s.configMgr.Get()
	s.token = cfg.General.APIToken

	go s.wsMgr.start()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/toggle", s.handleToggle)
	mux.HandleFunc("/ws", s.wsMgr.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	// Bind loopback only: this is a single-machine control surface.
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Starting status API on %s", addr)

	ln, err := net.Listen("tcp4", addr)
	if err != nil {
		log.Printf("ERROR: API server failed to listen on %s: %v", addr, err)
		log.Printf("Note: mousekeys will continue running without the status API.")
		return err
	}

	server := &http.Server{
		Handler: s.authMiddleware(s.recoverMiddleware(mux)),
	}

	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Printf("ERROR: API server stopped: %v", err)
		return err
	}
	return nil
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC RECOV: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authMiddleware checks API token if configured
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth for health check
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		if s.token != "" {
			authHeader := r.Header.Get("Authorization")
			expectedAuth := "Bearer " + s.token

			if authHeader != expectedAuth {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	x, y := s.loop.Position()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"enabled": s.ctrl.Enabled(),
		"x":       x,
		"y":       y,
	})
}

// handleToggle handles POST /api/toggle
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("API: Toggle requested from %s", r.RemoteAddr)
	s.ctrl.Toggle()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"enabled": s.ctrl.Enabled(),
	})
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// BroadcastState pushes the current controller state to all connected
// WebSocket clients.
func (s *Server) BroadcastState(enabled bool) {
	if s.wsMgr != nil {
		x, y := s.loop.Position()
		s.wsMgr.BroadcastState(enabled, x, y)
	}
}
