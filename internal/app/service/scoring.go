package service

import (
	"edu_platform/internal/domain/model"
	"strconv"

	"github.com/shopspring/decimal"
)

// Percent returns round(100*part/whole) rounding halves up, or 0 for an
// empty whole. The result is clamped to [0,100].
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return 100
	}
	pct := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(0)
	return int(pct.IntPart())
}

// GradeQuiz compares answers, keyed by the question id in decimal form,
// with each question's correct option. Missing or unknown keys count as
// wrong.
func GradeQuiz(quizID int, questions []model.QuizQuestion, answers map[string]string) *model.SubmissionResult {
	result := &model.SubmissionResult{
		QuizID:         quizID,
		TotalQuestions: len(questions),
		CorrectAnswers: make(map[int]string, len(questions)),
	}
	for _, q := range questions {
		result.CorrectAnswers[q.ID] = q.CorrectAnswerID
		if given, ok := answers[strconv.Itoa(q.ID)]; ok && given == q.CorrectAnswerID {
			result.CorrectCount++
		}
	}
	result.Score = Percent(result.CorrectCount, result.TotalQuestions)
	return result
}
