package service

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"edu_platform/internal/domain/repository"
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

const activityDateLayout = "2006-01-02"

// CourseProgressFields are the per-course values merged into listings.
type CourseProgressFields struct {
	Progress         int
	CompletedLessons int
	LastActivity     string
}

// ProgressSource supplies the progress decoration for catalog reads.
// userID 0 means an anonymous caller.
type ProgressSource interface {
	CourseProgress(ctx context.Context, userID int, course *model.Course) (CourseProgressFields, error)
	ItemCompletion(ctx context.Context, userID, courseID int) (func(itemID int) bool, error)
	QuizStatus(ctx context.Context, userID, quizID int) (completed bool, score *int, err error)
}

// PersistedProgress reads the caller's stored progress and quiz results.
type PersistedProgress struct {
	progress repository.ProgressRepository
	catalog  repository.CatalogRepository
}

func NewPersistedProgress(progress repository.ProgressRepository, catalog repository.CatalogRepository) *PersistedProgress {
	return &PersistedProgress{progress: progress, catalog: catalog}
}

// CourseProgress reports completed video and article items as lessons,
// capped at the course's lesson count. Quiz items are not lessons.
func (p *PersistedProgress) CourseProgress(ctx context.Context, userID int, course *model.Course) (CourseProgressFields, error) {
	rec, err := p.lookup(ctx, userID, course.ID)
	if err != nil || rec == nil {
		return CourseProgressFields{}, err
	}
	lessons, err := p.completedLessons(ctx, rec)
	if err != nil {
		return CourseProgressFields{}, err
	}
	return CourseProgressFields{
		Progress:         rec.Progress,
		CompletedLessons: min(lessons, course.Lessons),
		LastActivity:     rec.LastActivity.Format(activityDateLayout),
	}, nil
}

func (p *PersistedProgress) completedLessons(ctx context.Context, rec *model.UserProgress) (int, error) {
	if len(rec.CompletedItems) == 0 {
		return 0, nil
	}
	sections, err := p.catalog.ListSectionsByCourseID(ctx, rec.CourseID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, sec := range sections {
		items, err := p.catalog.ListItemsBySectionID(ctx, sec.ID)
		if err != nil {
			return 0, err
		}
		for _, item := range items {
			if item.Type != model.ItemQuiz && rec.HasCompleted(item.ID) {
				n++
			}
		}
	}
	return n, nil
}

func (p *PersistedProgress) ItemCompletion(ctx context.Context, userID, courseID int) (func(int) bool, error) {
	rec, err := p.lookup(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return func(int) bool { return false }, nil
	}
	return rec.HasCompleted, nil
}

func (p *PersistedProgress) QuizStatus(ctx context.Context, userID, quizID int) (bool, *int, error) {
	if userID == 0 {
		return false, nil, nil
	}
	res, err := p.progress.GetQuizResult(ctx, model.ResultKey{UserID: userID, QuizID: quizID})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}
	score := res.Score
	return true, &score, nil
}

func (p *PersistedProgress) lookup(ctx context.Context, userID, courseID int) (*model.UserProgress, error) {
	if userID == 0 {
		return nil, nil
	}
	rec, err := p.progress.GetProgress(ctx, model.ProgressKey{UserID: userID, CourseID: courseID})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// DemoProgress fabricates progress on every call. Nothing it returns is
// stored or derived from stored records.
type DemoProgress struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewDemoProgress(rng *rand.Rand) *DemoProgress {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &DemoProgress{rng: rng, now: time.Now}
}

func (d *DemoProgress) CourseProgress(ctx context.Context, userID int, course *model.Course) (CourseProgressFields, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fields := CourseProgressFields{Progress: d.rng.IntN(100)}
	if course.Lessons > 0 {
		fields.CompletedLessons = d.rng.IntN(course.Lessons)
	}
	// Up to ten days back
	ago := time.Duration(d.rng.Int64N(int64(10 * 24 * time.Hour)))
	fields.LastActivity = d.now().Add(-ago).Format(activityDateLayout)
	return fields, nil
}

func (d *DemoProgress) ItemCompletion(ctx context.Context, userID, courseID int) (func(int) bool, error) {
	return func(int) bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.rng.Float64() > 0.5
	}, nil
}

func (d *DemoProgress) QuizStatus(ctx context.Context, userID, quizID int) (bool, *int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rng.Float64() <= 0.6 {
		return false, nil, nil
	}
	score := 60 + d.rng.IntN(41)
	return true, &score, nil
}
