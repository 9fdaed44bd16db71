package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/pkg/habit"
	"github.com/brk3/streaks/pkg/versioninfo"
)

const maxNameLength = 200

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	if err := writeJSON(w, code, ErrorResponse{Error: msg}); err != nil {
		logger.Error("Failed to serialize error response", "error", err)
	}
}

func (s *Server) writeSnapshot(w http.ResponseWriter, code int, snap habit.Snapshot) {
	recordSnapshot(snap)
	if err := writeJSON(w, code, snap); err != nil {
		logger.Error("Failed to serialize snapshot response", "error", err)
	}
}

func (s *Server) getVersionInfo(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, versioninfo.Get()); err != nil {
		logger.ErrorContext(r.Context(), "Failed to serialize version info response", "error", err)
		http.Error(w, `{"error":"failed to serialize version info"}`, http.StatusInternalServerError)
		return
	}
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list habits", "error", err)
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	logger.DebugContext(r.Context(), "Listed habits successfully", "count", len(snap.Habits))
	s.writeSnapshot(w, http.StatusOK, snap)
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "Invalid JSON in create habit request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) > maxNameLength {
		writeError(w, http.StatusBadRequest, "bad habit name: too long")
		return
	}

	snap, err := s.svc.Create(r.Context(), req.Name)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to create habit", "habit_name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}

	// An empty name is silently ignored; the unchanged snapshot is returned.
	code := http.StatusOK
	if req.Name != "" {
		code = http.StatusCreated
	}
	s.writeSnapshot(w, code, snap)
}

func (s *Server) toggleHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := habitID(w, r)
	if !ok {
		return
	}
	snap, err := s.svc.ToggleToday(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to toggle habit", "habit_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	s.writeSnapshot(w, http.StatusOK, snap)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := habitID(w, r)
	if !ok {
		return
	}
	snap, err := s.svc.Delete(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to delete habit", "habit_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "database write failed")
		return
	}
	s.writeSnapshot(w, http.StatusOK, snap)
}

func habitID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "habit_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.WarnContext(r.Context(), "Bad habit id", "habit_id", raw)
		writeError(w, http.StatusBadRequest, "habit id must be an integer")
		return 0, false
	}
	return id, true
}
