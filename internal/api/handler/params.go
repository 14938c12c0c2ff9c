package handler

import (
	"edu_platform/internal/common"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// intParam reads a numeric path parameter. On failure it writes a 400 with
// message and reports false.
func intParam(w http.ResponseWriter, r *http.Request, name, message string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

func courseIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	return intParam(w, r, "courseID", "Invalid course ID")
}

func quizIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	return intParam(w, r, "quizID", "Invalid quiz ID")
}

// decodeBody decodes the JSON request body into dst. On failure it writes a
// 400 and reports false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}
