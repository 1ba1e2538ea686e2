package handlers

import (
	"net/http"

	"github.com/poolcraft/backoffice/internal/api/types"
	"github.com/poolcraft/backoffice/internal/repository"
	"github.com/poolcraft/backoffice/internal/services"
)

type ProjectsHandler struct {
	projects services.ProjectService
}

func NewProjectsHandler(projects services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := repository.Page{Page: queryInt(r, "page", 1), Limit: queryInt(r, "limit", 10)}.Normalize()

	items, total, err := h.projects.ListProjects(r.Context(), repository.ProjectFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
		Page:   page,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{
		"projects":   items,
		"pagination": types.NewPagination(page.Page, page.Limit, total),
	})
}

// ListPublic serves the marketing site. featured=true restricts the list to
// featured projects.
func (h *ProjectsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", services.DefaultPublicLimit)
	if limit > 50 {
		limit = 50
	}
	items, err := h.projects.ListPublic(r.Context(), limit, r.URL.Query().Get("featured") == "true")
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"projects": items})
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.projects.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"project": p})
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectCreateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	completion, err := parseDate("completionDate", req.CompletionDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.projects.CreateProject(r.Context(), principalID(r), &services.CreateProjectInput{
		Title:          req.Title,
		Description:    req.Description,
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		Status:         req.Status,
		PoolType:       req.PoolType,
		PoolSize:       req.PoolSize,
		Budget:         req.Budget,
		Location:       req.Location,
		StartDate:      start,
		CompletionDate: completion,
		Specifications: rawDoc(req.Specifications),
		Images:         rawDoc(req.Images),
		Documents:      rawDoc(req.Documents),
		Notes:          rawDoc(req.Notes),
		IsPublic:       req.IsPublic,
		Featured:       req.Featured,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"project": p})
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.ProjectUpdateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in := &services.UpdateProjectInput{
		Title:          req.Title,
		Description:    req.Description,
		ClientName:     req.ClientName,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		Status:         req.Status,
		PoolType:       req.PoolType,
		PoolSize:       req.PoolSize,
		Budget:         req.Budget,
		Location:       req.Location,
		Specifications: rawDoc(req.Specifications),
		Images:         rawDoc(req.Images),
		Documents:      rawDoc(req.Documents),
		Notes:          rawDoc(req.Notes),
		IsPublic:       req.IsPublic,
		Featured:       req.Featured,
	}
	if req.StartDate != nil {
		if in.StartDate, err = parseDate("startDate", *req.StartDate); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if req.CompletionDate != nil {
		if in.CompletionDate, err = parseDate("completionDate", *req.CompletionDate); err != nil {
			writeError(w, r, err)
			return
		}
	}

	p, err := h.projects.UpdateProject(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"project": p})
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.projects.DeleteProject(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

// AddUpdate appends a progress entry; a status on the entry also moves the
// project to that status.
func (h *ProjectsHandler) AddUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.ProjectProgressRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := h.projects.AddUpdate(r.Context(), id, principalID(r), &services.ProjectUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Images:      rawDoc(req.Images),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]any{"update": u})
}
