package http

import (
	"net/http"

	"casetrack-backend/internal/service"
)

// ReminderHandler serves the reminder CRUD endpoints.
type ReminderHandler struct {
	reminderSvc service.ReminderService
}

func NewReminderHandler(reminderSvc service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderSvc: reminderSvc}
}

type createReminderRequest struct {
	CaseID       int32  `json:"case_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ReminderDate string `json:"reminder_date"`
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reminder, err := h.reminderSvc.Create(r.Context(), actor, req.CaseID, req.Title, req.Description, req.ReminderDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"reminder": reminder})
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	reminders, err := h.reminderSvc.List(r.Context(), actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"reminders": reminders})
}

type updateReminderRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	ReminderDate *string `json:"reminder_date"`
	IsCompleted  *bool   `json:"is_completed"`
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid reminder ID")
		return
	}

	var req updateReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := service.ReminderUpdate{
		Title:        req.Title,
		Description:  req.Description,
		ReminderDate: req.ReminderDate,
		IsCompleted:  req.IsCompleted,
	}

	if err := h.reminderSvc.Update(r.Context(), actor, id, update); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid reminder ID")
		return
	}

	if err := h.reminderSvc.Delete(r.Context(), actor, id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
