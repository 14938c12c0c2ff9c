package repository

import (
	"context"
	"edu_platform/internal/common"
	"edu_platform/internal/domain/model"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/gosimple/slug"
)

// MemoryStore keeps every table in process memory. Records live in
// creation-ordered slices with an id index; readers always get copies.
type MemoryStore struct {
	mu sync.RWMutex

	categories    []model.Category
	categoryIndex map[int]int
	courses       []model.Course
	courseIndex   map[int]int
	sections      []model.ContentSection
	items         []model.ContentItem
	quizzes       []model.Quiz
	quizIndex     map[int]int
	questions     []model.QuizQuestion

	progress map[model.ProgressKey]model.UserProgress
	results  map[model.ResultKey]model.QuizResult

	users     []model.User
	userIndex map[int]int

	nextIDs struct {
		categories, courses, sections, items, quizzes, questions, progress, results, users int
	}
	now func() time.Time
}

var (
	_ CatalogRepository  = (*MemoryStore)(nil)
	_ QuizRepository     = (*MemoryStore)(nil)
	_ ProgressRepository = (*MemoryStore)(nil)
	_ UserRepository     = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categoryIndex: make(map[int]int),
		courseIndex:   make(map[int]int),
		quizIndex:     make(map[int]int),
		progress:      make(map[model.ProgressKey]model.UserProgress),
		results:       make(map[model.ResultKey]model.QuizResult),
		userIndex:     make(map[int]int),
		now:           time.Now,
	}
}

func next(counter *int) int {
	*counter++
	return *counter
}

// --- Categories ---

func (s *MemoryStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category{}, s.categories...), nil
}

func (s *MemoryStore) FindCategoryByID(ctx context.Context, id int) (*model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.categoryIndex[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}
	c := s.categories[idx]
	return &c, nil
}

func (s *MemoryStore) CreateCategory(ctx context.Context, c *model.Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = next(&s.nextIDs.categories)
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	s.categoryIndex[c.ID] = len(s.categories)
	s.categories = append(s.categories, *c)
	return nil
}

// --- Courses ---

func cloneCourse(c model.Course) model.Course {
	c.LearningPoints = slices.Clone(c.LearningPoints)
	return c
}

func (s *MemoryStore) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.coursePrefix(-1), nil
}

// ListFeaturedCourses returns the first limit courses in creation order.
func (s *MemoryStore) ListFeaturedCourses(ctx context.Context, limit int) ([]model.Course, error) {
	if limit <= 0 {
		return []model.Course{}, nil
	}
	return s.coursePrefix(limit), nil
}

// coursePrefix copies the first limit courses; a negative limit copies all.
func (s *MemoryStore) coursePrefix(limit int) []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.courses)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]model.Course, 0, n)
	for _, c := range s.courses[:n] {
		out = append(out, cloneCourse(c))
	}
	return out
}

func (s *MemoryStore) FindCourseByID(ctx context.Context, id int) (*model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.courseIndex[id]
	if !ok {
		return nil, fmt.Errorf("course %d: %w", id, common.ErrNotFound)
	}
	c := cloneCourse(s.courses[idx])
	return &c, nil
}

func (s *MemoryStore) FindCourseBySlug(ctx context.Context, courseSlug string) (*model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if c.Slug == courseSlug {
			c = cloneCourse(c)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("course %q: %w", courseSlug, common.ErrNotFound)
}

// CreateCourse does not check that CategoryID exists; a dangling reference
// shows up downstream as "Uncategorized".
func (s *MemoryStore) CreateCourse(ctx context.Context, c *model.Course) error {
	if err := validateCourse(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = next(&s.nextIDs.courses)
	if c.Slug == "" {
		c.Slug = slug.Make(c.Title)
	}
	s.courseIndex[c.ID] = len(s.courses)
	s.courses = append(s.courses, cloneCourse(*c))
	return nil
}

// --- Content ---

func (s *MemoryStore) ListSectionsByCourseID(ctx context.Context, courseID int) ([]model.ContentSection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.ContentSection{}
	for _, sec := range s.sections {
		if sec.CourseID == courseID {
			out = append(out, sec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *MemoryStore) CreateSection(ctx context.Context, sec *model.ContentSection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec.ID = next(&s.nextIDs.sections)
	s.sections = append(s.sections, *sec)
	return nil
}

func (s *MemoryStore) ListItemsBySectionID(ctx context.Context, sectionID int) ([]model.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.ContentItem{}
	for _, item := range s.items {
		if item.SectionID == sectionID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *MemoryStore) CreateItem(ctx context.Context, item *model.ContentItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = next(&s.nextIDs.items)
	s.items = append(s.items, *item)
	return nil
}

// --- Quizzes ---

func (s *MemoryStore) ListQuizzesByCourseID(ctx context.Context, courseID int) ([]model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Quiz{}
	for _, q := range s.quizzes {
		if q.CourseID == courseID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *MemoryStore) FindQuizByID(ctx context.Context, id int) (*model.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.quizIndex[id]
	if !ok {
		return nil, fmt.Errorf("quiz %d: %w", id, common.ErrNotFound)
	}
	q := s.quizzes[idx]
	return &q, nil
}

func (s *MemoryStore) CreateQuiz(ctx context.Context, q *model.Quiz) error {
	if err := validateQuiz(q); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = next(&s.nextIDs.quizzes)
	s.quizIndex[q.ID] = len(s.quizzes)
	s.quizzes = append(s.quizzes, *q)
	return nil
}

func (s *MemoryStore) ListQuestionsByQuizID(ctx context.Context, quizID int) ([]model.QuizQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.QuizQuestion{}
	for _, q := range s.questions {
		if q.QuizID == quizID {
			q.Options = slices.Clone(q.Options)
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *MemoryStore) CreateQuestion(ctx context.Context, q *model.QuizQuestion) error {
	if err := validateQuestion(q); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = next(&s.nextIDs.questions)
	stored := *q
	stored.Options = slices.Clone(q.Options)
	s.questions = append(s.questions, stored)
	return nil
}

// --- Progress ---

func cloneProgress(p model.UserProgress) model.UserProgress {
	p.CompletedItems = slices.Clone(p.CompletedItems)
	return p
}

func (s *MemoryStore) GetProgress(ctx context.Context, key model.ProgressKey) (*model.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[key]
	if !ok {
		return nil, fmt.Errorf("progress for user %d in course %d: %w", key.UserID, key.CourseID, common.ErrNotFound)
	}
	p = cloneProgress(p)
	return &p, nil
}

func (s *MemoryStore) UpsertProgress(ctx context.Context, p *model.UserProgress) error {
	if err := validateProgress(p); err != nil {
		return err
	}
	p.CompletedItems = normalizeItemSet(p.CompletedItems)
	if p.LastActivity.IsZero() {
		p.LastActivity = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.progress[p.Key()]; ok {
		p.ID = existing.ID
	} else {
		p.ID = next(&s.nextIDs.progress)
	}
	s.progress[p.Key()] = cloneProgress(*p)
	return nil
}

func (s *MemoryStore) ListProgress(ctx context.Context) ([]model.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.UserProgress, 0, len(s.progress))
	for _, p := range s.progress {
		out = append(out, cloneProgress(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneResult(r model.QuizResult) model.QuizResult {
	r.Answers = maps.Clone(r.Answers)
	return r
}

func (s *MemoryStore) GetQuizResult(ctx context.Context, key model.ResultKey) (*model.QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[key]
	if !ok {
		return nil, fmt.Errorf("result for user %d on quiz %d: %w", key.UserID, key.QuizID, common.ErrNotFound)
	}
	r = cloneResult(r)
	return &r, nil
}

// SaveQuizResult overwrites any earlier result for the same user and quiz.
func (s *MemoryStore) SaveQuizResult(ctx context.Context, r *model.QuizResult) error {
	if err := validateResult(r); err != nil {
		return err
	}
	if r.CompletedAt.IsZero() {
		r.CompletedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.results[r.Key()]; ok {
		r.ID = existing.ID
	} else {
		r.ID = next(&s.nextIDs.results)
	}
	s.results[r.Key()] = cloneResult(*r)
	return nil
}

func (s *MemoryStore) ListQuizResults(ctx context.Context) ([]model.QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.QuizResult, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, cloneResult(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Users ---

func (s *MemoryStore) Create(ctx context.Context, u *model.User) error {
	if err := validateUser(u); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return fmt.Errorf("user %q already exists: %w", u.Username, common.ErrConflict)
		}
	}
	u.ID = next(&s.nextIDs.users)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.userIndex[u.ID] = len(s.users)
	s.users = append(s.users, *u)
	return nil
}

func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
}

func (s *MemoryStore) FindByID(ctx context.Context, id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.userIndex[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, common.ErrNotFound)
	}
	u := s.users[idx]
	return &u, nil
}
