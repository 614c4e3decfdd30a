package handler

import (
	"caschools/internal/model"
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// QueryAnswerer answers one free-text query.
type QueryAnswerer interface {
	Answer(ctx context.Context, text string) (*model.QueryAnswer, error)
}

// QueryHandler handles the query endpoint
type QueryHandler struct {
	querySvc QueryAnswerer
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(querySvc QueryAnswerer) *QueryHandler {
	return &QueryHandler{querySvc: querySvc}
}

// QueryRequest is the request body for asking a question
type QueryRequest struct {
	Query string `json:"query"`
}

// Ask handles POST /v1/query
func (h *QueryHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "no query provided")
		return
	}

	answer, err := h.querySvc.Answer(r.Context(), req.Query)
	if err != nil {
		log.Printf("query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "database query failed")
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
