package handler

import (
	"edu_platform/internal/api/middleware"
	"edu_platform/internal/app/service"
	"edu_platform/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(cs *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// RegisterRoutes mounts the read-only catalog. Static segments win over
// {courseID}, so /courses/featured and /courses/slug/... never reach getCourse.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.listCategories)
	r.Get("/courses", h.listCourses)
	r.Get("/courses/featured", h.listFeaturedCourses)
	r.Get("/courses/slug/{courseSlug}", h.getCourseBySlug)
	r.Get("/courses/{courseID}", h.getCourse)
	r.Get("/courses/{courseID}/content", h.getCourseContent)
	r.Get("/courses/{courseID}/quizzes", h.listCourseQuizzes)
}

func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalogService.ListCourses(r.Context(), middleware.UserIDOrAnonymous(r.Context()))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, courses)
}

func (h *CatalogHandler) listFeaturedCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalogService.ListFeaturedCourses(r.Context(), middleware.UserIDOrAnonymous(r.Context()))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, courses)
}

func (h *CatalogHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDParam(w, r)
	if !ok {
		return
	}
	course, err := h.catalogService.GetCourse(r.Context(), middleware.UserIDOrAnonymous(r.Context()), courseID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CatalogHandler) getCourseBySlug(w http.ResponseWriter, r *http.Request) {
	courseSlug := chi.URLParam(r, "courseSlug")
	course, err := h.catalogService.GetCourseBySlug(r.Context(), middleware.UserIDOrAnonymous(r.Context()), courseSlug)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CatalogHandler) getCourseContent(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDParam(w, r)
	if !ok {
		return
	}
	sections, err := h.catalogService.GetCourseContent(r.Context(), middleware.UserIDOrAnonymous(r.Context()), courseID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, sections)
}

func (h *CatalogHandler) listCourseQuizzes(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDParam(w, r)
	if !ok {
		return
	}
	quizzes, err := h.catalogService.ListCourseQuizzes(r.Context(), middleware.UserIDOrAnonymous(r.Context()), courseID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quizzes)
}
