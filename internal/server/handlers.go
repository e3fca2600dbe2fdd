package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/samellow/matchsense/internal/models"
)

const defaultHistoryDays = 7

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type generateRequest struct {
	Date string `json:"date,omitempty"`
}

// handleGenerate triggers a generation run. An optional JSON body may
// carry {"date":"YYYY-MM-DD"}; the default is today in UTC.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()

	if r.Body != nil && r.ContentLength != 0 {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
		if req.Date != "" {
			parsed, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				s.respondError(w, http.StatusBadRequest, models.ErrInvalidDate.Error(), err)
				return
			}
			date = parsed
		}
	}

	result := s.engine.Run(r.Context(), date)
	s.respondJSON(w, http.StatusOK, result)
}

// handleToday returns today's bets, generating them on a cache miss
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	today := time.Now().UTC()

	if result, ok := s.engine.CachedResult(today); ok {
		s.respondJSON(w, http.StatusOK, result)
		return
	}

	result := s.engine.Run(r.Context(), today)
	s.respondJSON(w, http.StatusOK, result)
}

// handleHistory returns recent stored results. The days query parameter
// bounds how many are returned; without persistence the list is empty.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	days := defaultHistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.respondError(w, http.StatusBadRequest, "days must be a positive integer", err)
			return
		}
		days = parsed
	}

	if s.repo == nil {
		s.respondJSON(w, http.StatusOK, []*models.BetRecord{})
		return
	}

	records, err := s.repo.GetRecent(r.Context(), days)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to load bet history", err)
		return
	}
	if records == nil {
		records = []*models.BetRecord{}
	}
	s.respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   s.cfg.App.Name,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := http.StatusOK
	state := "ready"

	if !s.IsReady() {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
			state = "not ready"
		} else {
			checks["database"] = "ok"
		}
	}

	s.respondJSON(w, status, readyResponse{Status: state, Checks: checks})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		s.logger.WithError(err).Warn(message)
	}
	s.respondJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
