package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"casetrack-backend/internal/domain"
	"casetrack-backend/internal/logger"
	"casetrack-backend/internal/repository"
	"casetrack-backend/internal/service"
)

// maxUploadBytes bounds the in-memory part of a multipart document upload.
const maxUploadBytes = 32 << 20

// CaseHandler serves the case CRUD endpoints plus the movement, comment and
// document sub-resources.
type CaseHandler struct {
	caseSvc service.CaseService
}

func NewCaseHandler(caseSvc service.CaseService) *CaseHandler {
	return &CaseHandler{caseSvc: caseSvc}
}

type createCaseRequest struct {
	SuitNumber       string `json:"suit_number"`
	FileNumber       string `json:"file_number"`
	Subject          string `json:"subject"`
	AssigningOfficer string `json:"assigning_officer"`
	Status           string `json:"status"`
	Priority         string `json:"priority"`
}

func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createCaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c := &domain.Case{
		SuitNumber:       req.SuitNumber,
		FileNumber:       req.FileNumber,
		Subject:          req.Subject,
		AssigningOfficer: req.AssigningOfficer,
		Status:           domain.CaseStatus(req.Status),
		Priority:         domain.CasePriority(req.Priority),
	}

	if err := h.caseSvc.Create(r.Context(), actor, c); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"case": c})
}

func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	q := r.URL.Query()
	filter := repository.CaseFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Page:     parsePositiveInt(q.Get("page"), 1),
		PageSize: parsePositiveInt(q.Get("pageSize"), 20),
	}

	cases, total, err := h.caseSvc.List(r.Context(), actor, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"cases":    cases,
		"total":    total,
		"page":     filter.Page,
		"pageSize": filter.PageSize,
	})
}

func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid case ID")
		return
	}

	detail, err := h.caseSvc.Get(r.Context(), actor, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid case ID")
		return
	}

	// Raw map first so an explicit "assigned_to": null is distinguishable
	// from the key being absent.
	var raw map[string]any
	if err := decodeJSON(r, &raw); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := service.CaseUpdate{
		SuitNumber:       stringField(raw, "suit_number"),
		FileNumber:       stringField(raw, "file_number"),
		Subject:          stringField(raw, "subject"),
		AssigningOfficer: stringField(raw, "assigning_officer"),
	}
	if s := stringField(raw, "status"); s != nil {
		status := domain.CaseStatus(*s)
		update.Status = &status
	}
	if s := stringField(raw, "priority"); s != nil {
		priority := domain.CasePriority(*s)
		update.Priority = &priority
	}
	if _, present := raw["assigned_to"]; present {
		update.AssignedToSet = true
		if v, isNumber := raw["assigned_to"].(float64); isNumber {
			assignee := int32(v)
			update.AssignedTo = &assignee
		}
	}

	if err := h.caseSvc.Update(r.Context(), actor, id, update); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid case ID")
		return
	}

	if err := h.caseSvc.Delete(r.Context(), actor, id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

type addMovementRequest struct {
	Location    string `json:"location"`
	ActionTaken string `json:"action_taken"`
	Notes       string `json:"notes"`
}

func (h *CaseHandler) AddMovement(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	caseID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid case ID")
		return
	}

	var req addMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	movement, err := h.caseSvc.AddMovement(r.Context(), actor, caseID, req.Location, req.ActionTaken, req.Notes)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"movement": movement})
}

type addCommentRequest struct {
	Comment string `json:"comment"`
}

func (h *CaseHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	caseID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid case ID")
		return
	}

	var req addCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.caseSvc.AddComment(r.Context(), actor, caseID, req.Comment)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"comment": comment})
}

// AddDocument accepts a multipart upload under the "file" field.
func (h *CaseHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	caseID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid case ID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := h.caseSvc.AddDocument(r.Context(), actor, caseID, header.Filename, contentType, file)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"document": doc})
}

func (h *CaseHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	docID, err := pathID(r, "documentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	doc, rc, err := h.caseSvc.OpenDocument(r.Context(), actor, docID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.Header().Set("Content-Length", strconv.FormatInt(doc.FileSize, 10))
	if _, err := io.Copy(w, rc); err != nil {
		logger.Error("Failed to stream document", "document_id", doc.ID, "error", err)
	}
}

func (h *CaseHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	caseID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid case ID")
		return
	}

	docs, err := h.caseSvc.ListDocuments(r.Context(), actor, caseID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (h *CaseHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	docID, err := pathID(r, "documentId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	if err := h.caseSvc.DeleteDocument(r.Context(), actor, docID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func parsePositiveInt(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}

func stringField(raw map[string]any, key string) *string {
	if v, ok := raw[key].(string); ok {
		return &v
	}
	return nil
}
