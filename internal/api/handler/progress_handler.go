package handler

import (
	"edu_platform/internal/api/middleware"
	"edu_platform/internal/app/service"
	"edu_platform/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(ps *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: ps}
}

// RegisterRoutes shares the /courses prefix with CatalogHandler.
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.Authenticator)
		authRouter.Get("/courses/{courseID}/progress", h.getProgress)
		authRouter.Post("/courses/{courseID}/items/{itemID}/complete", h.completeItem)
	})
}

func (h *ProgressHandler) getProgress(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDParam(w, r)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	progress, err := h.progressService.GetProgress(r.Context(), userID, courseID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, progress)
}

func (h *ProgressHandler) completeItem(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDParam(w, r)
	if !ok {
		return
	}
	itemID, ok := intParam(w, r, "itemID", "Invalid item ID")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	progress, err := h.progressService.CompleteItem(r.Context(), userID, courseID, itemID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, progress)
}
