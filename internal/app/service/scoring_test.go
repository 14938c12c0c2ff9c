package service

import (
	"edu_platform/internal/domain/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func threeQuestions() []model.QuizQuestion {
	opts := []model.QuizOption{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	return []model.QuizQuestion{
		{ID: 1, QuizID: 7, Options: opts, CorrectAnswerID: "a", Order: 1},
		{ID: 2, QuizID: 7, Options: opts, CorrectAnswerID: "b", Order: 2},
		{ID: 3, QuizID: 7, Options: opts, CorrectAnswerID: "a", Order: 3},
	}
}

func TestGradeQuizTwoOfThree(t *testing.T) {
	res := GradeQuiz(7, threeQuestions(), map[string]string{"1": "a", "2": "b", "3": "c"})

	assert.Equal(t, 7, res.QuizID)
	assert.Equal(t, 2, res.CorrectCount)
	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, 67, res.Score)
	assert.Equal(t, map[int]string{1: "a", 2: "b", 3: "a"}, res.CorrectAnswers)
}

func TestGradeQuizAllCorrect(t *testing.T) {
	res := GradeQuiz(7, threeQuestions(), map[string]string{"1": "a", "2": "b", "3": "a"})
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, res.TotalQuestions, res.CorrectCount)
}

func TestGradeQuizEmptyAnswers(t *testing.T) {
	res := GradeQuiz(7, threeQuestions(), map[string]string{})
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0, res.CorrectCount)
	assert.Len(t, res.CorrectAnswers, 3)
}

func TestGradeQuizIgnoresForeignKeys(t *testing.T) {
	res := GradeQuiz(7, threeQuestions(), map[string]string{"99": "a", "x": "b", "1": "a"})
	assert.Equal(t, 1, res.CorrectCount)
	assert.Equal(t, 33, res.Score)
}

func TestGradeQuizWithoutQuestions(t *testing.T) {
	res := GradeQuiz(1, nil, map[string]string{"1": "a"})
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0, res.TotalQuestions)
	assert.NotNil(t, res.CorrectAnswers)
}

func TestPercent(t *testing.T) {
	cases := []struct {
		part, whole, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds half up
		{3, 8, 38}, // 37.5 rounds half up
		{5, 5, 100},
		{6, 5, 100},
		{-1, 5, 0},
	}
	for _, c := range cases {
		got := Percent(c.part, c.whole)
		assert.Equal(t, c.want, got, "Percent(%d, %d)", c.part, c.whole)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}
