package model

import "time"

type ProgressKey struct {
	UserID   int
	CourseID int
}

type ResultKey struct {
	UserID int
	QuizID int
}

type UserProgress struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	CourseID       int       `json:"courseId"`
	Progress       int       `json:"progress"`
	CompletedItems []int     `json:"completedItems"` // Sorted, no duplicates
	LastActivity   time.Time `json:"lastActivity"`
}

func (p *UserProgress) Key() ProgressKey {
	return ProgressKey{UserID: p.UserID, CourseID: p.CourseID}
}

func (p *UserProgress) HasCompleted(itemID int) bool {
	for _, id := range p.CompletedItems {
		if id == itemID {
			return true
		}
	}
	return false
}

type QuizResult struct {
	ID          int            `json:"id"`
	UserID      int            `json:"userId"`
	QuizID      int            `json:"quizId"`
	Score       int            `json:"score"`
	Answers     map[int]string `json:"answers"`
	CompletedAt time.Time      `json:"completedAt"`
}

func (r *QuizResult) Key() ResultKey {
	return ResultKey{UserID: r.UserID, QuizID: r.QuizID}
}

const (
	JobReasonQuizSubmitted = "quiz_submitted"
	JobReasonSweep         = "sweep"
)

// ProgressJob asks the worker to recompute one user's progress in one course.
type ProgressJob struct {
	ID         string    `json:"id"`
	UserID     int       `json:"userId"`
	CourseID   int       `json:"courseId"`
	Reason     string    `json:"reason"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}
