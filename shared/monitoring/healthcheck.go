package monitoring

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"history-analyzer/internal/models"
	"history-analyzer/shared/filter"
	"history-analyzer/shared/logger"
	"history-analyzer/shared/session"
)

// HealthServer exposes run health plus read/remove/export access to the
// records of the latest pass.
type HealthServer struct {
	monitor *Monitor
	session *session.Session
	port    string
}

type videosResponse struct {
	Count   int                    `json:"count"`
	Total   int                    `json:"total"`
	Filter  models.FilterState     `json:"filter"`
	Summary models.AnalysisSummary `json:"summary"`
	Videos  []models.VideoRecord   `json:"videos"`
}

func NewHealthServer(monitor *Monitor, sess *session.Session, port string) *HealthServer {
	if port == "" {
		port = "8080"
	}
	return &HealthServer{
		monitor: monitor,
		session: sess,
		port:    port,
	}
}

func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.healthHandler)
	mux.HandleFunc("/status", h.statusHandler)
	mux.HandleFunc("GET /videos", h.videosHandler)
	mux.HandleFunc("DELETE /videos/{id}", h.removeHandler)
	mux.HandleFunc("GET /export.csv", h.exportHandler)
	return mux
}

func (h *HealthServer) Start() {
	log := logger.WithComponent("health")
	log.Infof("Health check server starting on port %s", h.port)
	go func() {
		if err := http.ListenAndServe(":"+h.port, h.Handler()); err != nil {
			log.Errorf("Health server error: %v", err)
		}
	}()
}

func (h *HealthServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	if h.monitor.IsHealthy() {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK - %s", h.monitor.GetStatusSummary())
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "Service unhealthy - %s", h.monitor.GetStatusSummary())
	}
}

func (h *HealthServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "%s", h.monitor.GetStatusSummary())
}

// videosHandler serves the filtered records. Query parameters: q,
// hide_watched and channel. A channel replaces q as the query text.
func (h *HealthServer) videosHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	state := models.FilterState{Query: params.Get("q")}
	if raw := params.Get("hide_watched"); raw != "" {
		hide, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "hide_watched must be a boolean", http.StatusBadRequest)
			return
		}
		state.HideFullyWatched = hide
	}
	if channel := params.Get("channel"); channel != "" {
		state = filter.ByChannel(channel, state.HideFullyWatched)
	}

	summary := h.session.Summary()
	visible := h.session.Visible(state)
	resp := videosResponse{
		Count:   len(visible),
		Total:   summary.Total,
		Filter:  state,
		Summary: summary,
		Videos:  visible,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.WithComponent("health").Warnf("Failed to encode videos response: %v", err)
	}
}

func (h *HealthServer) removeHandler(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")
	if !h.session.Remove(videoID) {
		http.Error(w, fmt.Sprintf("video %s not found", videoID), http.StatusNotFound)
		return
	}
	logger.WithComponent("health").Infof("Removed video %s from history", videoID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *HealthServer) exportHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="youtube_history.csv"`)
	if err := h.session.Export(w); err != nil {
		logger.WithComponent("health").Warnf("Failed to export csv: %v", err)
	}
}
