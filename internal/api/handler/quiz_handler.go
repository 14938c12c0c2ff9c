package handler

import (
	"edu_platform/internal/api/middleware"
	"edu_platform/internal/app/service"
	"edu_platform/internal/common"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	quizService *service.QuizService
}

func NewQuizHandler(qs *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: qs}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{quizID}", h.getQuiz)
	r.Post("/{quizID}/submit", h.submitQuiz)

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.Authenticator)
		authRouter.Get("/{quizID}/result", h.getResult)
	})
}

type submitQuizRequest struct {
	Answers map[string]string `json:"answers"`
}

func (h *QuizHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := quizIDParam(w, r)
	if !ok {
		return
	}
	quiz, err := h.quizService.GetQuizForClient(r.Context(), quizID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := quizIDParam(w, r)
	if !ok {
		return
	}
	quiz, err := h.quizService.GetQuiz(r.Context(), quizID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}

	var req submitQuizRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Answers == nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: answers is required")
		return
	}

	result, err := h.quizService.SubmitQuiz(r.Context(), quiz, req.Answers, middleware.UserIDOrAnonymous(r.Context()))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *QuizHandler) getResult(w http.ResponseWriter, r *http.Request) {
	quizID, ok := quizIDParam(w, r)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	result, err := h.quizService.GetResult(r.Context(), userID, quizID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}
