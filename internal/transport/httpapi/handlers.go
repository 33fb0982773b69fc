package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bugtrack/internal/usecase/tracker"
)

type createBugRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	// Status is accepted but ignored: a new bug is always Open.
	Status string `json:"status"`
}

type updateBugRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

func (s *Server) handleListBugs(w http.ResponseWriter, req *http.Request) {
	items, err := s.svc.ListBugs(req.Context())
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetBug(w http.ResponseWriter, req *http.Request) {
	item, err := s.svc.GetBug(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreateBug(w http.ResponseWriter, req *http.Request) {
	var body createBugRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, validationBody{Error: "Invalid request body"})
		return
	}

	created, err := s.svc.CreateBug(req.Context(), trackerCreateInput(body))
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateBug(w http.ResponseWriter, req *http.Request) {
	var body updateBugRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, validationBody{Error: "Invalid request body"})
		return
	}

	updated, err := s.svc.UpdateBug(req.Context(), chi.URLParam(req, "id"), trackerUpdateInput(body))
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBug(w http.ResponseWriter, req *http.Request) {
	if err := s.svc.DeleteBug(req.Context(), chi.URLParam(req, "id")); err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Bug deleted successfully"})
}

func trackerCreateInput(body createBugRequest) tracker.CreateBugInput {
	return tracker.CreateBugInput{
		Title:       body.Title,
		Description: body.Description,
		Priority:    body.Priority,
	}
}

func trackerUpdateInput(body updateBugRequest) tracker.UpdateBugInput {
	return tracker.UpdateBugInput{
		Title:       body.Title,
		Description: body.Description,
		Priority:    body.Priority,
		Status:      body.Status,
	}
}
