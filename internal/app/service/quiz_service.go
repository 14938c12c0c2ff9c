package service

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"edu_platform/internal/domain/repository"
	"log"
	"strconv"
	"time"
)

// ProgressEnqueuer schedules a progress recompute for one user and course.
type ProgressEnqueuer interface {
	Enqueue(ctx context.Context, userID, courseID int, reason string) (*model.ProgressJob, error)
}

type QuizService struct {
	quizzes  repository.QuizRepository
	progress repository.ProgressRepository
	jobs     ProgressEnqueuer
	now      func() time.Time
}

func NewQuizService(quizzes repository.QuizRepository, progress repository.ProgressRepository, jobs ProgressEnqueuer) *QuizService {
	return &QuizService{quizzes: quizzes, progress: progress, jobs: jobs, now: time.Now}
}

func (s *QuizService) GetQuiz(ctx context.Context, quizID int) (*model.Quiz, error) {
	return s.quizzes.FindQuizByID(ctx, quizID)
}

// GetQuizForClient returns the quiz and its ordered questions without the
// answer key.
func (s *QuizService) GetQuizForClient(ctx context.Context, quizID int) (*model.ClientQuiz, error) {
	quiz, err := s.quizzes.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	questions, err := s.quizzes.ListQuestionsByQuizID(ctx, quizID)
	if err != nil {
		return nil, common.Errorf("failed to list questions for quiz %d: %w", quizID, err)
	}

	out := &model.ClientQuiz{Quiz: *quiz, Questions: make([]model.ClientQuestion, 0, len(questions))}
	for _, q := range questions {
		out.Questions = append(out.Questions, q.ForClient())
	}
	return out, nil
}

// SubmitQuiz grades answers against quiz. For an identified user (userID > 0)
// the result is saved and a progress recompute is scheduled; anonymous
// submissions are only graded.
func (s *QuizService) SubmitQuiz(ctx context.Context, quiz *model.Quiz, answers map[string]string, userID int) (*model.SubmissionResult, error) {
	questions, err := s.quizzes.ListQuestionsByQuizID(ctx, quiz.ID)
	if err != nil {
		return nil, common.Errorf("failed to list questions for quiz %d: %w", quiz.ID, err)
	}
	result := GradeQuiz(quiz.ID, questions, answers)
	if userID == 0 {
		return result, nil
	}

	stored := &model.QuizResult{
		UserID:      userID,
		QuizID:      quiz.ID,
		Score:       result.Score,
		Answers:     make(map[int]string, len(questions)),
		CompletedAt: s.now(),
	}
	for _, q := range questions {
		if given, ok := answers[strconv.Itoa(q.ID)]; ok {
			stored.Answers[q.ID] = given
		}
	}
	if err := s.progress.SaveQuizResult(ctx, stored); err != nil {
		return nil, common.Errorf("failed to save result for quiz %d: %w", quiz.ID, err)
	}

	// The result is already stored; a lost job is picked up by the sweep.
	if _, err := s.jobs.Enqueue(ctx, userID, quiz.CourseID, model.JobReasonQuizSubmitted); err != nil {
		log.Printf("ERROR: Failed to enqueue progress recompute for user %d course %d: %v", userID, quiz.CourseID, err)
	}
	return result, nil
}

func (s *QuizService) GetResult(ctx context.Context, userID, quizID int) (*model.QuizResult, error) {
	if _, err := s.quizzes.FindQuizByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.progress.GetQuizResult(ctx, model.ResultKey{UserID: userID, QuizID: quizID})
}
