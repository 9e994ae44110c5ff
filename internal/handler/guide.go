package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/studygen/backend/internal/service"
)

// GuideHandler exposes the /api/guides endpoints.
type GuideHandler struct {
	svc    *service.GuideService
	logger *slog.Logger
}

// NewGuideHandler creates a new GuideHandler.
func NewGuideHandler(svc *service.GuideService, logger *slog.Logger) *GuideHandler {
	return &GuideHandler{svc: svc, logger: logger}
}

// guideRequest is the JSON body for create and update. UserID is only
// honoured on create — it asks for the new guide to be linked into that
// user's guide list.
type guideRequest struct {
	Content string `json:"content"`
	UserID  string `json:"userId,omitempty"`
}

// HandleList handles GET /api/guides.
func (h *GuideHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	guides, err := h.svc.FindAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Guides retrieved successfully", guides)
}

// HandleGetByID handles GET /api/guides/{id}.
func (h *GuideHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	guide, err := h.svc.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Guide retrieved successfully", guide)
}

// HandleCreate handles POST /api/guides.
func (h *GuideHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req guideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid guide JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	guide, err := h.svc.Create(r.Context(), req.Content, req.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Guide created successfully", guide)
}

// HandleUpdate handles PUT /api/guides/{id}.
func (h *GuideHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req guideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid guide JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	guide, err := h.svc.Update(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Guide updated successfully", guide)
}

// HandleDelete handles DELETE /api/guides/{id}.
func (h *GuideHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Guide deleted successfully", nil)
}
