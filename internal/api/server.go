package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/danmarai/slingshot-flyer/internal/models"
	"github.com/danmarai/slingshot-flyer/internal/sim"
	"github.com/danmarai/slingshot-flyer/internal/world"
)

type Server struct {
	engine *sim.Engine
	hub    *hub
	router chi.Router

	done      chan struct{}
	closeOnce sync.Once
}

// New constructs the HTTP server wired to the simulation engine. The engine's
// event sink is claimed for the websocket broadcast. Callers own the returned
// server and should Close it when done.
func New(engine *sim.Engine) *Server {
	s := &Server{engine: engine, hub: newHub(), done: make(chan struct{})}
	engine.SetEventSink(func(ev models.Event) {
		s.hub.broadcast(wsMessage{Type: "event", Event: &ev})
	})

	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/state", s.handleState)
	r.Get("/catalog", s.handleCatalog)
	r.Get("/zones", s.handleZones)
	r.Get("/world/obstacles", s.handleObstacles)

	r.Post("/input/drag/start", s.handleDragStart)
	r.Post("/input/drag/move", s.handleDragMove)
	r.Post("/input/drag/end", s.handleDragEnd)
	r.Post("/input/key", s.handleKey)
	r.Post("/booster", s.handleBooster)
	r.Post("/checkpoint", s.handleCheckpoint)
	r.Post("/upgrades/purchase", s.handlePurchase)
	r.Post("/continue", s.handleContinue)

	r.Post("/tick", s.handleTick)
	r.Post("/sim/start", s.handleSimStart)
	r.Post("/sim/pause", s.handleSimPause)

	r.Get("/ws", s.handleWS)
	s.router = r

	go s.snapshotLoop()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the snapshot broadcast loop.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// stateResponse bundles the flight snapshot with the player's progress.
type stateResponse struct {
	Flight   models.FlightState    `json:"flight"`
	Progress models.PlayerProgress `json:"progress"`
}

func (s *Server) currentState() stateResponse {
	return stateResponse{
		Flight:   s.engine.Snapshot(),
		Progress: s.engine.Progress(),
	}
}

func (s *Server) writeState(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.currentState())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.engine.Catalog().Definitions())
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(world.Zones)
}

func (s *Server) handleObstacles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.engine.Obstacles())
}

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	s.engine.DragStart(req.X, req.Y)
	s.writeState(w)
}

func (s *Server) handleDragMove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	s.engine.DragMove(req.X, req.Y)
	s.writeState(w)
}

func (s *Server) handleDragEnd(w http.ResponseWriter, r *http.Request) {
	s.engine.DragEnd()
	s.writeState(w)
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
		Held      bool   `json:"held"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Direction == "" {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	s.engine.SetKey(req.Direction, req.Held)
	s.writeState(w)
}

func (s *Server) handleBooster(w http.ResponseWriter, r *http.Request) {
	s.engine.ActivateBooster()
	s.writeState(w)
}

func (s *Server) handleCheckpoint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Zone string `json:"zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Zone == "" {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	s.engine.SelectCheckpoint(req.Zone)
	s.writeState(w)
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	newTier, err := s.engine.PurchaseUpgrade(req.Key)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"key": req.Key, "tier": newTier})
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	s.engine.ContinueAfterCrash()
	s.writeState(w)
}

// handleTick advances the simulation manually, for headless clients that
// drive their own frame loop instead of using the server ticker.
func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DT float64 `json:"dt"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.DT <= 0 {
		req.DT = sim.TickInterval.Seconds()
	}
	s.engine.Tick(req.DT)
	s.writeState(w)
}

func (s *Server) handleSimStart(w http.ResponseWriter, r *http.Request) {
	s.engine.Start()
	s.writeState(w)
}

func (s *Server) handleSimPause(w http.ResponseWriter, r *http.Request) {
	s.engine.Pause()
	s.writeState(w)
}

// ===== helpers =====

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
