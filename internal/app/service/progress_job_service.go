package service

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"edu_platform/internal/domain/repository"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// JobQueue is the part of *redis.Client used to publish jobs.
type JobQueue interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// ProgressJobService pushes recompute jobs onto a Redis list for the
// progress worker. With a nil queue it recomputes inline.
type ProgressJobService struct {
	rdb       JobQueue
	queueName string
	progress  *ProgressService
	quizzes   repository.QuizRepository
	records   repository.ProgressRepository
	now       func() time.Time
}

func NewProgressJobService(
	rdb JobQueue,
	queueName string,
	progress *ProgressService,
	quizzes repository.QuizRepository,
	records repository.ProgressRepository,
) *ProgressJobService {
	return &ProgressJobService{
		rdb:       rdb,
		queueName: queueName,
		progress:  progress,
		quizzes:   quizzes,
		records:   records,
		now:       time.Now,
	}
}

func (s *ProgressJobService) Enqueue(ctx context.Context, userID, courseID int, reason string) (*model.ProgressJob, error) {
	job := &model.ProgressJob{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseID:   courseID,
		Reason:     reason,
		EnqueuedAt: s.now(),
	}

	if s.rdb == nil {
		if _, err := s.progress.Recompute(ctx, userID, courseID); err != nil {
			return nil, common.Errorf("inline progress recompute failed: %w", err)
		}
		return job, nil
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, common.Errorf("failed to marshal progress job: %w", err)
	}
	if err := s.rdb.LPush(ctx, s.queueName, payload).Err(); err != nil {
		return nil, common.Errorf("failed to push progress job to Redis queue: %w", err)
	}
	log.Printf("INFO: Progress job %s for user %d course %d enqueued (%s).", job.ID, userID, courseID, reason)
	return job, nil
}

// Sweep enqueues a recompute for every (user, course) pair that has a
// progress record or a quiz result. It returns how many jobs were queued.
func (s *ProgressJobService) Sweep(ctx context.Context) (int, error) {
	pairs := map[model.ProgressKey]bool{}

	records, err := s.records.ListProgress(ctx)
	if err != nil {
		return 0, common.Errorf("failed to list progress records: %w", err)
	}
	for _, p := range records {
		pairs[p.Key()] = true
	}

	results, err := s.records.ListQuizResults(ctx)
	if err != nil {
		return 0, common.Errorf("failed to list quiz results: %w", err)
	}
	courseOfQuiz := map[int]int{}
	for _, r := range results {
		courseID, ok := courseOfQuiz[r.QuizID]
		if !ok {
			quiz, err := s.quizzes.FindQuizByID(ctx, r.QuizID)
			if err != nil {
				log.Printf("WARN: Sweep skipping result %d: %v", r.ID, err)
				continue
			}
			courseID = quiz.CourseID
			courseOfQuiz[r.QuizID] = courseID
		}
		pairs[model.ProgressKey{UserID: r.UserID, CourseID: courseID}] = true
	}

	queued := 0
	for key := range pairs {
		if _, err := s.Enqueue(ctx, key.UserID, key.CourseID, model.JobReasonSweep); err != nil {
			log.Printf("WARN: Sweep failed to enqueue user %d course %d: %v", key.UserID, key.CourseID, err)
			continue
		}
		queued++
	}
	return queued, nil
}
