package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vitos/ig_account_mirror/internal/domain"
	"go.uber.org/zap"
)

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// --- Mirror reads ---

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.Account())
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.Positions())
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.Orders())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.Status())
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.Notifications())
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.LogLines())
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	s.store.MarkNotificationRead(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// --- Snapshot recovery ---

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.snapshots.Refresh(r.Context()); err != nil {
		s.logger.Error("Refresh failed", zap.Error(err))
		http.Error(w, "Refresh failed", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Backend commands ---

func (s *Server) handleClosePosition(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.backend.ClosePosition(r.Context(), id); err != nil {
		s.logger.Error("Failed to close position", zap.String("dealId", id), zap.Error(err))
		http.Error(w, "Failed to close position", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.backend.CancelOrder(r.Context(), id); err != nil {
		s.logger.Error("Failed to cancel order", zap.String("dealId", id), zap.Error(err))
		http.Error(w, "Failed to cancel order", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.ForceReconnect(r.Context()); err != nil {
		s.logger.Error("Failed to request reconnect", zap.Error(err))
		http.Error(w, "Failed to request reconnect", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diag, err := s.backend.GetDiagnostics(r.Context())
	if err != nil {
		s.logger.Error("Failed to get diagnostics", zap.Error(err))
		http.Error(w, "Failed to get diagnostics", http.StatusBadGateway)
		return
	}
	s.writeJSON(w, diag)
}

// --- Harvest planner ---

func harvestParamsFromQuery(r *http.Request) (domain.HarvestParams, error) {
	var p domain.HarvestParams
	var err error
	if p.TotalContracts, err = strconv.ParseFloat(r.URL.Query().Get("contracts"), 64); err != nil {
		return p, err
	}
	if p.TargetPoints, err = strconv.ParseFloat(r.URL.Query().Get("target"), 64); err != nil {
		return p, err
	}
	if p.BandDivisor, err = strconv.ParseFloat(r.URL.Query().Get("divisor"), 64); err != nil {
		return p, err
	}
	if p.HarvestFraction, err = strconv.ParseFloat(r.URL.Query().Get("fraction"), 64); err != nil {
		return p, err
	}
	return p, nil
}

func (s *Server) handleHarvestPlan(w http.ResponseWriter, r *http.Request) {
	params, err := harvestParamsFromQuery(r)
	if err != nil {
		http.Error(w, "Invalid harvest params", http.StatusBadRequest)
		return
	}
	steps := s.harvest.Preview(params)
	if steps == nil {
		steps = []float64{}
	}
	s.writeJSON(w, steps)
}

func (s *Server) handleHarvestBaseline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StrategyID string               `json:"strategyId"`
		Params     domain.HarvestParams `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StrategyID == "" {
		http.Error(w, "Invalid baseline request", http.StatusBadRequest)
		return
	}
	seq, err := s.harvest.CommitBaseline(r.Context(), req.StrategyID, req.Params)
	if err != nil {
		s.logger.Error("Failed to commit baseline", zap.String("strategyId", req.StrategyID), zap.Error(err))
		http.Error(w, "Failed to commit baseline", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, seq)
}

func (s *Server) handleHarvestDrift(w http.ResponseWriter, r *http.Request) {
	strategyID := r.URL.Query().Get("strategyId")
	if strategyID == "" {
		http.Error(w, "Missing strategyId", http.StatusBadRequest)
		return
	}
	report, err := s.harvest.CheckDrift(r.Context(), strategyID)
	if err != nil {
		s.logger.Error("Drift check failed", zap.String("strategyId", strategyID), zap.Error(err))
		http.Error(w, "Drift check failed", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, report)
}
