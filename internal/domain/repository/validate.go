package repository

import (
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"fmt"
	"sort"
	"strings"
)

func validateCategory(c *model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name is required: %w", common.ErrValidation)
	}
	return nil
}

func validateCourse(c *model.Course) error {
	if c.Lessons < 0 {
		return fmt.Errorf("course lessons must not be negative, got %d: %w", c.Lessons, common.ErrValidation)
	}
	return nil
}

func validateItem(item *model.ContentItem) error {
	if !item.Type.Valid() {
		return fmt.Errorf("unknown content item type %q: %w", item.Type, common.ErrValidation)
	}
	return nil
}

func validateQuiz(q *model.Quiz) error {
	if !q.Difficulty.Valid() {
		return fmt.Errorf("unknown quiz difficulty %q: %w", q.Difficulty, common.ErrValidation)
	}
	return nil
}

func validateQuestion(q *model.QuizQuestion) error {
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.ID == "" {
			return fmt.Errorf("question option without id: %w", common.ErrValidation)
		}
		if seen[opt.ID] {
			return fmt.Errorf("duplicate option id %q: %w", opt.ID, common.ErrValidation)
		}
		seen[opt.ID] = true
	}
	if !seen[q.CorrectAnswerID] {
		return fmt.Errorf("correct answer %q is not one of the options: %w", q.CorrectAnswerID, common.ErrValidation)
	}
	return nil
}

func validateProgress(p *model.UserProgress) error {
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("progress must be within [0,100], got %d: %w", p.Progress, common.ErrValidation)
	}
	return nil
}

func validateResult(r *model.QuizResult) error {
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("score must be within [0,100], got %d: %w", r.Score, common.ErrValidation)
	}
	return nil
}

func validateUser(u *model.User) error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required: %w", common.ErrValidation)
	}
	return nil
}

// normalizeItemSet sorts and dedupes a completed-items list.
func normalizeItemSet(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}
