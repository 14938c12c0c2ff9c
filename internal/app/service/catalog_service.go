package service

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"edu_platform/internal/domain/repository"
	"errors"
	"log"
)

type CatalogService struct {
	catalog       repository.CatalogRepository
	quizzes       repository.QuizRepository
	progress      ProgressSource
	markdown      *MarkdownRenderer
	featuredLimit int
}

func NewCatalogService(
	catalog repository.CatalogRepository,
	quizzes repository.QuizRepository,
	progress ProgressSource,
	markdown *MarkdownRenderer,
	featuredLimit int,
) *CatalogService {
	return &CatalogService{
		catalog:       catalog,
		quizzes:       quizzes,
		progress:      progress,
		markdown:      markdown,
		featuredLimit: featuredLimit,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.catalog.ListCategories(ctx)
}

// categoryNames indexes category names by id for the course join.
func (s *CatalogService) categoryNames(ctx context.Context) (map[int]string, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list categories: %w", err)
	}
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func categoryName(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return model.UncategorizedName
}

func (s *CatalogService) withProgress(ctx context.Context, userID int, names map[int]string, course model.Course) (model.CourseWithProgress, error) {
	fields, err := s.progress.CourseProgress(ctx, userID, &course)
	if err != nil {
		return model.CourseWithProgress{}, common.Errorf("failed to load progress for course %d: %w", course.ID, err)
	}
	return model.CourseWithProgress{
		Course:           course,
		CategoryName:     categoryName(names, course.CategoryID),
		Progress:         fields.Progress,
		CompletedLessons: fields.CompletedLessons,
		LastActivity:     fields.LastActivity,
	}, nil
}

func (s *CatalogService) ListCourses(ctx context.Context, userID int) ([]model.CourseWithProgress, error) {
	courses, err := s.catalog.ListCourses(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list courses: %w", err)
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.CourseWithProgress, 0, len(courses))
	for _, c := range courses {
		decorated, err := s.withProgress(ctx, userID, names, c)
		if err != nil {
			return nil, err
		}
		out = append(out, decorated)
	}
	return out, nil
}

// ListFeaturedCourses returns the first courses in creation order; it is a
// prefix, not a ranking.
func (s *CatalogService) ListFeaturedCourses(ctx context.Context, userID int) ([]model.FeaturedCourse, error) {
	courses, err := s.catalog.ListFeaturedCourses(ctx, s.featuredLimit)
	if err != nil {
		return nil, common.Errorf("failed to list featured courses: %w", err)
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.FeaturedCourse, 0, len(courses))
	for _, c := range courses {
		fields, err := s.progress.CourseProgress(ctx, userID, &c)
		if err != nil {
			return nil, common.Errorf("failed to load progress for course %d: %w", c.ID, err)
		}
		out = append(out, model.FeaturedCourse{
			Course:       c,
			CategoryName: categoryName(names, c.CategoryID),
			Progress:     fields.Progress,
		})
	}
	return out, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, userID, courseID int) (*model.CourseWithProgress, error) {
	course, err := s.catalog.FindCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.decorateOne(ctx, userID, course)
}

func (s *CatalogService) GetCourseBySlug(ctx context.Context, userID int, slug string) (*model.CourseWithProgress, error) {
	course, err := s.catalog.FindCourseBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.decorateOne(ctx, userID, course)
}

func (s *CatalogService) decorateOne(ctx context.Context, userID int, course *model.Course) (*model.CourseWithProgress, error) {
	names := map[int]string{}
	category, err := s.catalog.FindCategoryByID(ctx, course.CategoryID)
	switch {
	case err == nil:
		names[category.ID] = category.Name
	case !errors.Is(err, common.ErrNotFound):
		return nil, common.Errorf("failed to load category %d: %w", course.CategoryID, err)
	}
	decorated, err := s.withProgress(ctx, userID, names, *course)
	if err != nil {
		return nil, err
	}
	return &decorated, nil
}

// GetCourseContent returns the course's sections in order, each with its
// ordered items and the caller's completion flag.
func (s *CatalogService) GetCourseContent(ctx context.Context, userID, courseID int) ([]model.SectionWithItems, error) {
	if _, err := s.catalog.FindCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	sections, err := s.catalog.ListSectionsByCourseID(ctx, courseID)
	if err != nil {
		return nil, common.Errorf("failed to list sections for course %d: %w", courseID, err)
	}
	completed, err := s.progress.ItemCompletion(ctx, userID, courseID)
	if err != nil {
		return nil, common.Errorf("failed to load item completion for course %d: %w", courseID, err)
	}

	out := make([]model.SectionWithItems, 0, len(sections))
	for _, sec := range sections {
		items, err := s.catalog.ListItemsBySectionID(ctx, sec.ID)
		if err != nil {
			return nil, common.Errorf("failed to list items for section %d: %w", sec.ID, err)
		}
		withStatus := make([]model.ContentItemWithStatus, 0, len(items))
		for _, item := range items {
			entry := model.ContentItemWithStatus{ContentItem: item, Completed: completed(item.ID)}
			if item.Type == model.ItemArticle && s.markdown != nil && item.Content != "" {
				html, err := s.markdown.Render(item.Content)
				if err != nil {
					log.Printf("WARN: Failed to render article %d: %v", item.ID, err)
				} else {
					entry.HTML = html
				}
			}
			withStatus = append(withStatus, entry)
		}
		out = append(out, model.SectionWithItems{ContentSection: sec, Items: withStatus})
	}
	return out, nil
}

func (s *CatalogService) ListCourseQuizzes(ctx context.Context, userID, courseID int) ([]model.QuizSummary, error) {
	if _, err := s.catalog.FindCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	quizzes, err := s.quizzes.ListQuizzesByCourseID(ctx, courseID)
	if err != nil {
		return nil, common.Errorf("failed to list quizzes for course %d: %w", courseID, err)
	}

	out := make([]model.QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		questions, err := s.quizzes.ListQuestionsByQuizID(ctx, q.ID)
		if err != nil {
			return nil, common.Errorf("failed to list questions for quiz %d: %w", q.ID, err)
		}
		completed, score, err := s.progress.QuizStatus(ctx, userID, q.ID)
		if err != nil {
			return nil, common.Errorf("failed to load quiz status for quiz %d: %w", q.ID, err)
		}
		out = append(out, model.QuizSummary{
			Quiz:          q,
			QuestionCount: len(questions),
			Completed:     completed,
			Score:         score,
		})
	}
	return out, nil
}
