package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poolcraft/backoffice/internal/api/types"
	"github.com/poolcraft/backoffice/internal/services"
)

// ContentHandler serves professional info pages, their content sections and
// the content taxonomy.
type ContentHandler struct {
	content services.ContentService
}

func NewContentHandler(content services.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

func pageInput(req *types.PageRequest) *services.PageInput {
	return &services.PageInput{
		Slug:              req.Slug,
		Title:             req.Title,
		TitleEn:           req.TitleEn,
		Description:       req.Description,
		DescriptionEn:     req.DescriptionEn,
		Content:           rawDoc(req.Content),
		MetaTitle:         req.MetaTitle,
		MetaTitleEn:       req.MetaTitleEn,
		MetaDescription:   req.MetaDescription,
		MetaDescriptionEn: req.MetaDescriptionEn,
		IsActive:          req.IsActive,
		SortOrder:         req.SortOrder,
	}
}

func sectionInput(req *types.SectionRequest) *services.SectionInput {
	return &services.SectionInput{
		PageID:      req.PageID,
		SectionType: req.SectionType,
		Title:       req.Title,
		TitleEn:     req.TitleEn,
		Content:     rawDoc(req.Content),
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}
}

func (h *ContentHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.content.ListPages(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, pages)
}

func (h *ContentHandler) ListAllPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.content.ListAllPages(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, pages)
}

// GetPage returns an active page by slug with its active sections.
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.GetPage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, page)
}

func (h *ContentHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req types.PageRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.content.CreatePage(r.Context(), pageInput(&req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, page)
}

func (h *ContentHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, req, ok := withBody[types.PageRequest](w, r)
	if !ok {
		return
	}
	page, err := h.content.UpdatePage(r.Context(), id, pageInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, page)
}

func (h *ContentHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.content.DeletePage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, page)
}

func (h *ContentHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	pageID, err := idParam(r, "pageId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sections, err := h.content.ListSections(r.Context(), pageID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, sections)
}

func (h *ContentHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	section, err := h.content.GetSection(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, section)
}

func (h *ContentHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req types.SectionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	section, err := h.content.CreateSection(r.Context(), sectionInput(&req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusCreated, section)
}

func (h *ContentHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, req, ok := withBody[types.SectionRequest](w, r)
	if !ok {
		return
	}
	section, err := h.content.UpdateSection(r.Context(), id, sectionInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, section)
}

func (h *ContentHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	section, err := h.content.DeleteSection(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, section)
}

func (h *ContentHandler) ReorderSections(w http.ResponseWriter, r *http.Request) {
	pageID, err := idParam(r, "pageId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req types.ReorderSectionsRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sections, err := h.content.ReorderSections(r.Context(), pageID, req.SectionIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, sections)
}

func (h *ContentHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.content.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, categories)
}

func (h *ContentHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.content.ListTags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, tags)
}
