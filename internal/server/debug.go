package server

import (
	"encoding/json"
	"net/http"

	"github.com/Tanno-Finn/pockethero-3/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Эндпоинты читают состояние без синхронизации с циклом тика;
// для отладки этого достаточно, для production-интроспекции - нет.
type DebugHandler struct {
	Service *engine.Service
	Hub     *Hub
}

func NewDebugHandler(s *engine.Service, hub *Hub) *DebugHandler {
	return &DebugHandler{Service: s, Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/zones", h.handleListZones)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/events", h.handleEventLog)
}

// /debug/zones - список зон и количество сущностей в них
func (h *DebugHandler) handleListZones(w http.ResponseWriter, r *http.Request) {
	type ZoneSummary struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		EntityCount int    `json:"entity_count"`
		IsActive    bool   `json:"is_active"`
	}

	session := h.Service.Session
	var summary []ZoneSummary
	for id, z := range session.Zones {
		summary = append(summary, ZoneSummary{
			ID:          id,
			Name:        z.Name,
			Width:       z.Grid.Width,
			Height:      z.Grid.Height,
			EntityCount: len(z.Entities),
			IsActive:    z == session.Active,
		})
	}

	writeJSON(w, summary)
}

// /debug/entities?zone=meadow - дамп всех сущностей зоны
// (полные доменные структуры, включая компоненты)
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	session := h.Service.Session

	zoneID := r.URL.Query().Get("zone")
	if zoneID == "" {
		zoneID = session.Active.ID
	}

	zone, ok := session.Zones[zoneID]
	if !ok {
		http.Error(w, "Zone not found", http.StatusNotFound)
		return
	}

	writeJSON(w, zone.Entities)
}

// /debug/events - хвост кольцевого журнала шины событий
func (h *DebugHandler) handleEventLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Session.Bus.Log())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой результат сериализуем как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
