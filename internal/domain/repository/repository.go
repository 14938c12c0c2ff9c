package repository

import (
	"context"
	"edu_platform/internal/domain/model"
)

// CatalogRepository holds the read-mostly course catalog.
// Create methods assign the next sequential ID and write it back into the argument.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	FindCategoryByID(ctx context.Context, id int) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error

	ListCourses(ctx context.Context) ([]model.Course, error)
	ListFeaturedCourses(ctx context.Context, limit int) ([]model.Course, error)
	FindCourseByID(ctx context.Context, id int) (*model.Course, error)
	FindCourseBySlug(ctx context.Context, slug string) (*model.Course, error)
	CreateCourse(ctx context.Context, course *model.Course) error

	ListSectionsByCourseID(ctx context.Context, courseID int) ([]model.ContentSection, error)
	CreateSection(ctx context.Context, section *model.ContentSection) error
	ListItemsBySectionID(ctx context.Context, sectionID int) ([]model.ContentItem, error)
	CreateItem(ctx context.Context, item *model.ContentItem) error
}

type QuizRepository interface {
	ListQuizzesByCourseID(ctx context.Context, courseID int) ([]model.Quiz, error)
	FindQuizByID(ctx context.Context, id int) (*model.Quiz, error)
	CreateQuiz(ctx context.Context, quiz *model.Quiz) error

	ListQuestionsByQuizID(ctx context.Context, quizID int) ([]model.QuizQuestion, error) // Sorted by Order
	CreateQuestion(ctx context.Context, question *model.QuizQuestion) error
}

// ProgressRepository stores per-user state. Upserts keep the ID of an existing
// record with the same composite key.
type ProgressRepository interface {
	GetProgress(ctx context.Context, key model.ProgressKey) (*model.UserProgress, error)
	UpsertProgress(ctx context.Context, progress *model.UserProgress) error
	ListProgress(ctx context.Context) ([]model.UserProgress, error)

	GetQuizResult(ctx context.Context, key model.ResultKey) (*model.QuizResult, error)
	SaveQuizResult(ctx context.Context, result *model.QuizResult) error
	ListQuizResults(ctx context.Context) ([]model.QuizResult, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
}
