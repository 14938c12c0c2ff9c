package service

import (
	"context"
	"edu_platform/internal/domain/model"
	"edu_platform/internal/domain/repository"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixture is a small catalog: two categories, three courses (the last one
// pointing at a missing category), two sections with three items on the
// first course and a three-question quiz.
type fixture struct {
	store    *repository.MemoryStore
	courses  []*model.Course
	items    []*model.ContentItem
	quiz     *model.Quiz
	sections []*model.ContentSection
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{store: repository.NewMemoryStore()}

	for _, name := range []string{"Math", "Science"} {
		require.NoError(t, f.store.CreateCategory(ctx, &model.Category{Name: name}))
	}
	for _, c := range []*model.Course{
		{Title: "Algebra", CategoryID: 1, Lessons: 12, LearningPoints: []string{"equations"}},
		{Title: "Biology", CategoryID: 2, Lessons: 16},
		{Title: "Orphan", CategoryID: 99, Lessons: 1},
	} {
		require.NoError(t, f.store.CreateCourse(ctx, c))
		f.courses = append(f.courses, c)
	}

	// Created out of order to check sorting by Order.
	second := &model.ContentSection{CourseID: 1, Title: "Quadratics", Type: "module", Order: 2}
	first := &model.ContentSection{CourseID: 1, Title: "Linear", Type: "module", Order: 1}
	require.NoError(t, f.store.CreateSection(ctx, second))
	require.NoError(t, f.store.CreateSection(ctx, first))
	f.sections = []*model.ContentSection{first, second}

	for _, item := range []*model.ContentItem{
		{SectionID: first.ID, Title: "Intro", Type: model.ItemVideo, Order: 1},
		{SectionID: first.ID, Title: "Reading", Type: model.ItemArticle, Content: "# Steps\n\n**isolate** x", Order: 2},
		{SectionID: second.ID, Title: "Practice", Type: model.ItemQuiz, Order: 1},
	} {
		require.NoError(t, f.store.CreateItem(ctx, item))
		f.items = append(f.items, item)
	}

	f.quiz = &model.Quiz{CourseID: 1, Title: "Algebra Quiz", Difficulty: model.DifficultyEasy}
	require.NoError(t, f.store.CreateQuiz(ctx, f.quiz))
	for i, correct := range []string{"a", "b", "a"} {
		require.NoError(t, f.store.CreateQuestion(ctx, &model.QuizQuestion{
			QuizID:          f.quiz.ID,
			Text:            "question",
			Options:         []model.QuizOption{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
			CorrectAnswerID: correct,
			Explanation:     "because",
			Order:           i + 1,
		}))
	}
	return f
}

// recordingEnqueuer captures jobs instead of running them.
type recordingEnqueuer struct {
	jobs []model.ProgressJob
}

func (r *recordingEnqueuer) Enqueue(ctx context.Context, userID, courseID int, reason string) (*model.ProgressJob, error) {
	job := model.ProgressJob{UserID: userID, CourseID: courseID, Reason: reason}
	r.jobs = append(r.jobs, job)
	return &job, nil
}
