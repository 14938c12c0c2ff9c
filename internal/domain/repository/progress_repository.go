package repository

import (
	"context"
	"database/sql"
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type pgProgressRepository struct {
	db *sql.DB
}

// NewPgProgressRepository persists user progress and quiz results in
// PostgreSQL. Completed items and answers are stored as jsonb.
func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) GetProgress(ctx context.Context, key model.ProgressKey) (*model.UserProgress, error) {
	query := `SELECT id, user_id, course_id, progress, completed_items, last_activity
	          FROM user_progress WHERE user_id = $1 AND course_id = $2`
	p, err := scanProgress(r.db.QueryRowContext(ctx, query, key.UserID, key.CourseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("progress for user %d in course %d: %w", key.UserID, key.CourseID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("pgProgressRepository.GetProgress: %w", err)
	}
	return p, nil
}

func (r *pgProgressRepository) UpsertProgress(ctx context.Context, p *model.UserProgress) error {
	if err := validateProgress(p); err != nil {
		return err
	}
	p.CompletedItems = normalizeItemSet(p.CompletedItems)
	if p.LastActivity.IsZero() {
		p.LastActivity = time.Now()
	}
	items, err := json.Marshal(p.CompletedItems)
	if err != nil {
		return fmt.Errorf("pgProgressRepository.UpsertProgress marshal: %w", err)
	}

	query := `INSERT INTO user_progress (user_id, course_id, progress, completed_items, last_activity)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id, course_id) DO UPDATE SET
	              progress = EXCLUDED.progress,
	              completed_items = EXCLUDED.completed_items,
	              last_activity = EXCLUDED.last_activity
	          RETURNING id`
	err = r.db.QueryRowContext(ctx, query, p.UserID, p.CourseID, p.Progress, string(items), p.LastActivity).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("pgProgressRepository.UpsertProgress: %w", err)
	}
	return nil
}

func (r *pgProgressRepository) ListProgress(ctx context.Context) ([]model.UserProgress, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, course_id, progress, completed_items, last_activity
	                                     FROM user_progress ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListProgress: %w", err)
	}
	defer rows.Close()

	out := []model.UserProgress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("pgProgressRepository.ListProgress scan: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *pgProgressRepository) GetQuizResult(ctx context.Context, key model.ResultKey) (*model.QuizResult, error) {
	query := `SELECT id, user_id, quiz_id, score, answers, completed_at
	          FROM quiz_results WHERE user_id = $1 AND quiz_id = $2`
	res, err := scanResult(r.db.QueryRowContext(ctx, query, key.UserID, key.QuizID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("result for user %d on quiz %d: %w", key.UserID, key.QuizID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("pgProgressRepository.GetQuizResult: %w", err)
	}
	return res, nil
}

func (r *pgProgressRepository) SaveQuizResult(ctx context.Context, res *model.QuizResult) error {
	if err := validateResult(res); err != nil {
		return err
	}
	if res.CompletedAt.IsZero() {
		res.CompletedAt = time.Now()
	}
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("pgProgressRepository.SaveQuizResult marshal: %w", err)
	}

	query := `INSERT INTO quiz_results (user_id, quiz_id, score, answers, completed_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id, quiz_id) DO UPDATE SET
	              score = EXCLUDED.score,
	              answers = EXCLUDED.answers,
	              completed_at = EXCLUDED.completed_at
	          RETURNING id`
	err = r.db.QueryRowContext(ctx, query, res.UserID, res.QuizID, res.Score, string(answers), res.CompletedAt).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("pgProgressRepository.SaveQuizResult: %w", err)
	}
	return nil
}

func (r *pgProgressRepository) ListQuizResults(ctx context.Context) ([]model.QuizResult, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, quiz_id, score, answers, completed_at
	                                     FROM quiz_results ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListQuizResults: %w", err)
	}
	defer rows.Close()

	out := []model.QuizResult{}
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("pgProgressRepository.ListQuizResults scan: %w", err)
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProgress(row rowScanner) (*model.UserProgress, error) {
	p := &model.UserProgress{}
	var items []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.CourseID, &p.Progress, &items, &p.LastActivity); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &p.CompletedItems); err != nil {
			return nil, fmt.Errorf("decode completed_items: %w", err)
		}
	}
	return p, nil
}

func scanResult(row rowScanner) (*model.QuizResult, error) {
	res := &model.QuizResult{}
	var answers []byte
	if err := row.Scan(&res.ID, &res.UserID, &res.QuizID, &res.Score, &answers, &res.CompletedAt); err != nil {
		return nil, err
	}
	res.Answers = map[int]string{}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &res.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
	}
	return res, nil
}
