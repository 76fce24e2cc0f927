package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof" // Profiling

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tanno-Finn/pockethero-3/internal/engine"
	"github.com/Tanno-Finn/pockethero-3/internal/version"
	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
)

type Server struct {
	Service *engine.Service
	Hub     *Hub
	Port    int

	httpSrv *http.Server
}

func New(service *engine.Service, hub *Hub, port int) *Server {
	return &Server{
		Service: service,
		Hub:     hub,
		Port:    port,
	}
}

// Run запускает HTTP сервер (блокирует до Shutdown)
func (s *Server) Run() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.Handle("/metrics", promhttp.Handler())

	debugHandler := NewDebugHandler(s.Service, s.Hub)
	debugHandler.RegisterRoutes(mux)

	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Port),
		Handler: mux,
	}

	logger.Log.Infof("Server running on :%d", s.Port)
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown мягко останавливает HTTP сервер
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Service, s.Hub, conn)
	s.Hub.Register(client)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
