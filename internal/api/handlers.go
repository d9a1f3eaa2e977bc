package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cvelab/collatzmgr/internal/collatz"
	"github.com/cvelab/collatzmgr/internal/logger"
)

// SequenceResponse is the success payload of the /collatz endpoint
type SequenceResponse struct {
	Number   int   `json:"number"`
	Sequence []int `json:"sequence"`
}

// ErrorResponse is the error payload of the /collatz endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleCollatz serves GET /collatz?number=n
func (s *Server) handleCollatz(w http.ResponseWriter, r *http.Request) {
	numberStr := r.URL.Query().Get("number")
	if numberStr == "" {
		s.writeError(w, http.StatusBadRequest, "Missing 'number' parameter")
		return
	}

	number, err := strconv.Atoi(numberStr)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid number format")
		return
	}

	if number <= 0 {
		s.writeError(w, http.StatusBadRequest, "Number must be positive")
		return
	}

	sequence, err := collatz.Sequence(number)
	if err != nil {
		s.log.WithError(err).Error("sequence computation failed", logger.Int("number", number))
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.metrics.sequenceLength.Observe(float64(len(sequence)))
	s.writeJSON(w, http.StatusOK, SequenceResponse{
		Number:   number,
		Sequence: sequence,
	})
}

// handleHealth serves GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}
