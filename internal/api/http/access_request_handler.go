package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"casetrack-backend/internal/service"
)

// AccessRequestHandler serves the public request-access endpoint and the
// admin review endpoints.
type AccessRequestHandler struct {
	accessSvc service.AccessRequestService
}

func NewAccessRequestHandler(accessSvc service.AccessRequestService) *AccessRequestHandler {
	return &AccessRequestHandler{accessSvc: accessSvc}
}

type submitAccessRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Submit handles POST /api/auth/request-access. No session required.
func (h *AccessRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitAccessRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.accessSvc.Submit(r.Context(), req.Email, req.Name, req.Message)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Access request submitted successfully. An administrator will review your request.",
		"request": map[string]any{
			"id":     created.ID,
			"email":  created.Email,
			"status": created.Status,
		},
	})
}

func (h *AccessRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	requests, err := h.accessSvc.List(r.Context(), actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

type decideAccessRequest struct {
	Action   string `json:"action"`
	Password string `json:"password"`
}

// Decide handles PUT /api/admin/access-requests/{id} with an action of
// "approve" or "reject".
func (h *AccessRequestHandler) Decide(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var req decideAccessRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.Action {
	case "approve":
		user, err := h.accessSvc.Approve(r.Context(), actor, id, req.Password)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Access request approved",
			"user": map[string]any{
				"id":    user.ID,
				"email": user.Email,
				"name":  user.Name,
				"role":  user.Role,
			},
		})
	case "reject":
		if err := h.accessSvc.Reject(r.Context(), actor, id); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Access request rejected",
		})
	default:
		respondError(w, http.StatusBadRequest, "Invalid action. Must be 'approve' or 'reject'")
	}
}

// pathID parses a numeric mux path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
