package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poolcraft/backoffice/internal/api/types"
	"github.com/poolcraft/backoffice/internal/projectdata"
	"github.com/poolcraft/backoffice/internal/repository"
	"github.com/poolcraft/backoffice/internal/services"
)

// ProjectDocumentsHandler serves the routes that edit a project's JSON
// columns. Each response carries the created or changed entry together with
// the whole updated document.
type ProjectDocumentsHandler struct {
	docs services.ProjectDocumentService
}

func NewProjectDocumentsHandler(docs services.ProjectDocumentService) *ProjectDocumentsHandler {
	return &ProjectDocumentsHandler{docs: docs}
}

// withBody parses the project id and decodes the request body into a
// validated request type.
func withBody[T any](w http.ResponseWriter, r *http.Request) (uint, *T, bool) {
	return projectAndBody[T](w, r, decode)
}

// withEntry is withBody for document entries. The service fills in ids and
// defaults before validating them.
func withEntry[T any](w http.ResponseWriter, r *http.Request) (uint, *T, bool) {
	return projectAndBody[T](w, r, readJSON)
}

func projectAndBody[T any](w http.ResponseWriter, r *http.Request, read func(http.ResponseWriter, *http.Request, any) error) (uint, *T, bool) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return 0, nil, false
	}
	var body T
	if err := read(w, r, &body); err != nil {
		writeError(w, r, err)
		return 0, nil, false
	}
	return id, &body, true
}

// UpdateSpecifications takes the specifications object as the whole body.
// PUT replaces the document, PATCH merges into it.
func (h *ProjectDocumentsHandler) UpdateSpecifications(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	specs, err := h.docs.UpdateSpecifications(r.Context(), id, body, r.Method == http.MethodPatch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"specifications": specs})
}

func (h *ProjectDocumentsHandler) AddGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, img, ok := withEntry[projectdata.GalleryImage](w, r)
	if !ok {
		return
	}
	created, images, err := h.docs.AddGalleryImage(r.Context(), id, principalID(r), *img)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"image": created, "images": images})
}

func (h *ProjectDocumentsHandler) RemoveGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	images, err := h.docs.RemoveGalleryImage(r.Context(), id, chi.URLParam(r, "imageId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"images": images})
}

func (h *ProjectDocumentsHandler) AddProgressImage(w http.ResponseWriter, r *http.Request) {
	id, img, ok := withEntry[projectdata.ProgressImage](w, r)
	if !ok {
		return
	}
	created, images, err := h.docs.AddProgressImage(r.Context(), id, *img)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"image": created, "images": images})
}

func (h *ProjectDocumentsHandler) AddInternalNote(w http.ResponseWriter, r *http.Request) {
	id, note, ok := withEntry[projectdata.InternalNote](w, r)
	if !ok {
		return
	}
	created, notes, err := h.docs.AddInternalNote(r.Context(), id, principalID(r), *note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"note": created, "notes": notes})
}

func (h *ProjectDocumentsHandler) AddCommunicationLog(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := withEntry[projectdata.CommunicationLog](w, r)
	if !ok {
		return
	}
	created, notes, err := h.docs.AddCommunicationLog(r.Context(), id, principalID(r), *entry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"communication": created, "notes": notes})
}

func (h *ProjectDocumentsHandler) AddMilestone(w http.ResponseWriter, r *http.Request) {
	id, m, ok := withEntry[projectdata.Milestone](w, r)
	if !ok {
		return
	}
	created, notes, err := h.docs.AddMilestone(r.Context(), id, principalID(r), *m)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"milestone": created, "notes": notes})
}

func (h *ProjectDocumentsHandler) UpdateMilestone(w http.ResponseWriter, r *http.Request) {
	id, req, ok := withBody[types.MilestoneStatusRequest](w, r)
	if !ok {
		return
	}
	m, notes, err := h.docs.UpdateMilestoneStatus(r.Context(), id, chi.URLParam(r, "milestoneId"),
		projectdata.MilestoneStatus(req.Status), req.ActualDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"milestone": m, "notes": notes})
}

func (h *ProjectDocumentsHandler) AddIssue(w http.ResponseWriter, r *http.Request) {
	id, req, ok := withBody[types.IssueRequest](w, r)
	if !ok {
		return
	}
	severity := req.Severity
	if severity == "" {
		severity = req.Priority
	}
	created, notes, err := h.docs.AddIssue(r.Context(), id, principalID(r), projectdata.Issue{
		Title:       req.Title,
		Description: req.Description,
		Severity:    projectdata.Severity(severity),
		Category:    req.Category,
		AssignedTo:  req.AssignedTo,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"issue": created, "notes": notes})
}

func (h *ProjectDocumentsHandler) ResolveIssue(w http.ResponseWriter, r *http.Request) {
	id, req, ok := withBody[types.ResolveIssueRequest](w, r)
	if !ok {
		return
	}
	issue, notes, err := h.docs.ResolveIssue(r.Context(), id, chi.URLParam(r, "issueId"), req.Resolution, principalID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"issue": issue, "notes": notes})
}

func (h *ProjectDocumentsHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	id, doc, ok := withEntry[projectdata.Document](w, r)
	if !ok {
		return
	}
	created, docs, err := h.docs.AddDocument(r.Context(), id, chi.URLParam(r, "category"), *doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"document": created, "documents": docs})
}

func (h *ProjectDocumentsHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	docs, err := h.docs.RemoveDocument(r.Context(), id, chi.URLParam(r, "category"), chi.URLParam(r, "documentId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"documents": docs})
}

func (h *ProjectDocumentsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.docs.Analytics(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"analytics": a})
}

func (h *ProjectDocumentsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectSearchRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	criteria := repository.SearchCriteria{
		PoolType:     req.PoolType,
		Equipment:    req.Equipment,
		WaterFeature: req.WaterFeatures,
		HasIssues:    req.HasIssues,
		Limit:        req.Limit,
	}
	if req.ProgressRange != nil {
		criteria.ProgressMin = req.ProgressRange.Min
		criteria.ProgressMax = req.ProgressRange.Max
	}
	results, err := h.docs.Search(r.Context(), criteria)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"projects": results, "count": len(results)})
}
