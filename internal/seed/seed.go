// Package seed loads the demo catalog into the repositories at startup.
package seed

import (
	"context"
	"edu_platform/internal/domain/model"
	"edu_platform/internal/domain/repository"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultCatalog []byte

type catalogFile struct {
	Categories []categorySeed `yaml:"categories"`
}

type categorySeed struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Courses     []courseSeed `yaml:"courses"`
}

type courseSeed struct {
	Title          string        `yaml:"title"`
	Description    string        `yaml:"description"`
	Level          string        `yaml:"level"`
	Duration       string        `yaml:"duration"`
	Lessons        int           `yaml:"lessons"`
	ImageURL       string        `yaml:"imageUrl"`
	LearningPoints []string      `yaml:"learningPoints"`
	Sections       []sectionSeed `yaml:"sections"`
	Quizzes        []quizSeed    `yaml:"quizzes"`
}

type sectionSeed struct {
	Title       string     `yaml:"title"`
	Type        string     `yaml:"type"`
	Description string     `yaml:"description"`
	Order       int        `yaml:"order"`
	Items       []itemSeed `yaml:"items"`
}

type itemSeed struct {
	Title    string `yaml:"title"`
	Type     string `yaml:"type"`
	Duration string `yaml:"duration"`
	Content  string `yaml:"content"`
	Order    int    `yaml:"order"`
}

type quizSeed struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	TimeLimit   string         `yaml:"timeLimit"`
	Difficulty  string         `yaml:"difficulty"`
	Questions   []questionSeed `yaml:"questions"`
}

type questionSeed struct {
	Text            string       `yaml:"text"`
	Options         []optionSeed `yaml:"options"`
	CorrectAnswerID string       `yaml:"correctAnswerId"`
	Explanation     string       `yaml:"explanation"`
	Order           int          `yaml:"order"`
}

type optionSeed struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// Default returns the embedded demo catalog.
func Default() []byte {
	return defaultCatalog
}

// ReadFile returns the catalog at path, or the embedded one when path is empty.
func ReadFile(path string) ([]byte, error) {
	if path == "" {
		return defaultCatalog, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return data, nil
}

// Load parses data and creates every record it describes. Records are
// created depth first, so a course's sections and quizzes follow it.
func Load(ctx context.Context, catalog repository.CatalogRepository, quizzes repository.QuizRepository, data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse seed catalog: %w", err)
	}

	for _, cs := range file.Categories {
		category := &model.Category{Name: cs.Name, Description: cs.Description}
		if err := catalog.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("seed category %q: %w", cs.Name, err)
		}
		for _, crs := range cs.Courses {
			if err := loadCourse(ctx, catalog, quizzes, category.ID, crs); err != nil {
				return err
			}
		}
	}
	return nil
}

func loadCourse(ctx context.Context, catalog repository.CatalogRepository, quizzes repository.QuizRepository, categoryID int, cs courseSeed) error {
	course := &model.Course{
		Title:          cs.Title,
		Description:    cs.Description,
		CategoryID:     categoryID,
		Level:          cs.Level,
		Duration:       cs.Duration,
		Lessons:        cs.Lessons,
		ImageURL:       cs.ImageURL,
		LearningPoints: cs.LearningPoints,
	}
	if course.LearningPoints == nil {
		course.LearningPoints = []string{}
	}
	if err := catalog.CreateCourse(ctx, course); err != nil {
		return fmt.Errorf("seed course %q: %w", cs.Title, err)
	}

	for _, ss := range cs.Sections {
		section := &model.ContentSection{
			CourseID:    course.ID,
			Title:       ss.Title,
			Type:        ss.Type,
			Description: ss.Description,
			Order:       ss.Order,
		}
		if err := catalog.CreateSection(ctx, section); err != nil {
			return fmt.Errorf("seed section %q: %w", ss.Title, err)
		}
		for _, is := range ss.Items {
			item := &model.ContentItem{
				SectionID: section.ID,
				Title:     is.Title,
				Type:      model.ContentItemType(is.Type),
				Duration:  is.Duration,
				Content:   is.Content,
				Order:     is.Order,
			}
			if err := catalog.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("seed item %q: %w", is.Title, err)
			}
		}
	}

	for _, qs := range cs.Quizzes {
		quiz := &model.Quiz{
			CourseID:    course.ID,
			Title:       qs.Title,
			Description: qs.Description,
			TimeLimit:   qs.TimeLimit,
			Difficulty:  model.QuizDifficulty(qs.Difficulty),
		}
		if err := quizzes.CreateQuiz(ctx, quiz); err != nil {
			return fmt.Errorf("seed quiz %q: %w", qs.Title, err)
		}
		for _, q := range qs.Questions {
			question := &model.QuizQuestion{
				QuizID:          quiz.ID,
				Text:            q.Text,
				Options:         make([]model.QuizOption, 0, len(q.Options)),
				CorrectAnswerID: q.CorrectAnswerID,
				Explanation:     q.Explanation,
				Order:           q.Order,
			}
			for _, o := range q.Options {
				question.Options = append(question.Options, model.QuizOption{ID: o.ID, Text: o.Text})
			}
			if err := quizzes.CreateQuestion(ctx, question); err != nil {
				return fmt.Errorf("seed question %q: %w", q.Text, err)
			}
		}
	}
	return nil
}
