package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poolcraft/backoffice/internal/api/types"
	"github.com/poolcraft/backoffice/internal/projectdata"
	"github.com/poolcraft/backoffice/internal/repository"
	"github.com/poolcraft/backoffice/internal/services"
)

type ContactsHandler struct {
	contacts services.ContactService
}

func NewContactsHandler(contacts services.ContactService) *ContactsHandler {
	return &ContactsHandler{contacts: contacts}
}

// Submit is the public contact form.
func (h *ContactsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req types.ContactSubmitRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.contacts.Submit(r.Context(), &services.SubmitContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		PoolType: req.PoolType,
		Message:  req.Message,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{
		"message": "Contact form submitted successfully",
		"contact": c,
	})
}

func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := repository.Page{Page: queryInt(r, "page", 1), Limit: queryInt(r, "limit", 10)}.Normalize()
	items, total, err := h.contacts.List(r.Context(), repository.ContactFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Page:   page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{
		"contacts":   items,
		"pagination": types.NewPagination(page.Page, page.Limit, total),
	})
}

func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"contact": c})
}

func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.ContactUpdateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.contacts.Update(r.Context(), id, &services.UpdateContactInput{
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
		Notes:      rawDoc(req.Notes),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"contact": c})
}

func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.contacts.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"message": "Contact deleted successfully"})
}

func (h *ContactsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, req, ok := withBody[types.AssignRequest](w, r)
	if !ok {
		return
	}
	c, err := h.contacts.Assign(r.Context(), id, req.AssignedTo)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"contact": c})
}

func (h *ContactsHandler) AddCommunication(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := withEntry[projectdata.ContactCommunication](w, r)
	if !ok {
		return
	}
	created, notes, err := h.contacts.AddCommunication(r.Context(), id, principalID(r), *entry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"communication": created, "notes": notes})
}

func (h *ContactsHandler) AddFollowUp(w http.ResponseWriter, r *http.Request) {
	id, f, ok := withEntry[projectdata.FollowUp](w, r)
	if !ok {
		return
	}
	created, notes, err := h.contacts.AddFollowUp(r.Context(), id, *f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"followUp": created, "notes": notes})
}

func (h *ContactsHandler) CompleteFollowUp(w http.ResponseWriter, r *http.Request) {
	id, req, ok := withBody[types.CompleteFollowUpRequest](w, r)
	if !ok {
		return
	}
	f, notes, err := h.contacts.CompleteFollowUp(r.Context(), id, chi.URLParam(r, "followUpId"), req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"followUp": f, "notes": notes})
}

func (h *ContactsHandler) UpdateQualification(w http.ResponseWriter, r *http.Request) {
	id, q, ok := withEntry[projectdata.Qualification](w, r)
	if !ok {
		return
	}
	notes, err := h.contacts.UpdateQualification(r.Context(), id, *q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"qualification": notes.Qualification, "notes": notes})
}
