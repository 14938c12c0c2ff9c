package service

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"edu_platform/internal/domain/repository"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ProgressService owns writes to UserProgress. Progress is the share of a
// course's units (content items plus quizzes) the user has finished.
type ProgressService struct {
	catalog  repository.CatalogRepository
	quizzes  repository.QuizRepository
	progress repository.ProgressRepository
	now      func() time.Time

	mu sync.Mutex // serializes read-modify-write cycles in this process
}

func NewProgressService(catalog repository.CatalogRepository, quizzes repository.QuizRepository, progress repository.ProgressRepository) *ProgressService {
	return &ProgressService{catalog: catalog, quizzes: quizzes, progress: progress, now: time.Now}
}

type courseUnits struct {
	items   map[int]bool
	quizIDs []int
}

func (s *ProgressService) units(ctx context.Context, courseID int) (*courseUnits, error) {
	if _, err := s.catalog.FindCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	u := &courseUnits{items: map[int]bool{}}
	sections, err := s.catalog.ListSectionsByCourseID(ctx, courseID)
	if err != nil {
		return nil, common.Errorf("failed to list sections for course %d: %w", courseID, err)
	}
	for _, sec := range sections {
		items, err := s.catalog.ListItemsBySectionID(ctx, sec.ID)
		if err != nil {
			return nil, common.Errorf("failed to list items for section %d: %w", sec.ID, err)
		}
		for _, item := range items {
			u.items[item.ID] = true
		}
	}
	quizzes, err := s.quizzes.ListQuizzesByCourseID(ctx, courseID)
	if err != nil {
		return nil, common.Errorf("failed to list quizzes for course %d: %w", courseID, err)
	}
	for _, q := range quizzes {
		u.quizIDs = append(u.quizIDs, q.ID)
	}
	return u, nil
}

func (s *ProgressService) load(ctx context.Context, userID, courseID int) (*model.UserProgress, error) {
	rec, err := s.progress.GetProgress(ctx, model.ProgressKey{UserID: userID, CourseID: courseID})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &model.UserProgress{UserID: userID, CourseID: courseID, CompletedItems: []int{}}, nil
		}
		return nil, err
	}
	return rec, nil
}

// GetProgress returns the stored record, or an empty one with ID 0 when the
// user has not started the course.
func (s *ProgressService) GetProgress(ctx context.Context, userID, courseID int) (*model.UserProgress, error) {
	if _, err := s.catalog.FindCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.load(ctx, userID, courseID)
}

func (s *ProgressService) CompleteItem(ctx context.Context, userID, courseID, itemID int) (*model.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	units, err := s.units(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !units.items[itemID] {
		return nil, fmt.Errorf("item %d in course %d: %w", itemID, courseID, common.ErrNotFound)
	}
	rec, err := s.load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !rec.HasCompleted(itemID) {
		rec.CompletedItems = append(rec.CompletedItems, itemID)
	}
	rec.LastActivity = s.now()
	return s.save(ctx, rec, units)
}

// Recompute derives the percentage from completed items and stored quiz
// results. lastActivity only moves forward to the newest quiz result; a
// recompute by itself is not user activity.
func (s *ProgressService) Recompute(ctx context.Context, userID, courseID int) (*model.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	units, err := s.units(ctx, courseID)
	if err != nil {
		return nil, err
	}
	rec, err := s.load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, rec, units)
}

func (s *ProgressService) save(ctx context.Context, rec *model.UserProgress, units *courseUnits) (*model.UserProgress, error) {
	kept := rec.CompletedItems[:0]
	for _, id := range rec.CompletedItems {
		if units.items[id] {
			kept = append(kept, id)
		}
	}
	rec.CompletedItems = kept

	done := len(kept)
	for _, quizID := range units.quizIDs {
		res, err := s.progress.GetQuizResult(ctx, model.ResultKey{UserID: rec.UserID, QuizID: quizID})
		switch {
		case err == nil:
			done++
			if res.CompletedAt.After(rec.LastActivity) {
				rec.LastActivity = res.CompletedAt
			}
		case !errors.Is(err, common.ErrNotFound):
			return nil, common.Errorf("failed to load result for quiz %d: %w", quizID, err)
		}
	}

	rec.Progress = Percent(done, len(units.items)+len(units.quizIDs))
	if err := s.progress.UpsertProgress(ctx, rec); err != nil {
		return nil, common.Errorf("failed to save progress for user %d course %d: %w", rec.UserID, rec.CourseID, err)
	}
	return rec, nil
}
