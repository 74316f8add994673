package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
	"github.com/contactdesk/backend/internal/service"
)

// ContactHandler handles the /api/contacts REST surface.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type listResponse struct {
	Contacts []model.Contact `json:"contacts"`
}

type createResponse struct {
	Message string         `json:"message"`
	Contact *model.Contact `json:"contact"`
}

type deleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// List handles GET /api/contacts. Contacts come back newest first; failures
// carry a generic message with no partial results.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactService.List(r.Context())
	if err != nil {
		slog.Error("list contacts failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Failed to fetch contacts"})
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Contacts: contacts})
}

// Create handles POST /api/contacts.
// 400 with field errors for invalid input, 409 with field errors for a
// duplicate email/phone, 201 with the created record otherwise.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	contact, err := h.contactService.Create(r.Context(), in)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Validation failed", Errors: vErr.Fields})
			return
		}
		var dErr *service.DuplicateError
		if errors.As(err, &dErr) {
			writeJSON(w, http.StatusConflict, errorResponse{Message: "Duplicate contact", Errors: dErr.Fields})
			return
		}
		slog.Error("create contact failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Failed to create contact"})
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{Message: "Contact created", Contact: contact})
}

// Delete handles DELETE /api/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.contactService.Delete(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, deleteResponse{Message: "Contact deleted", ID: id})
	case errors.Is(err, service.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid contact id"})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Contact not found"})
	default:
		slog.Error("delete contact failed", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Failed to delete contact"})
	}
}
