package model

type Course struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description"`
	CategoryID     int      `json:"categoryId"`
	Level          string   `json:"level"`
	Duration       string   `json:"duration"`
	Lessons        int      `json:"lessons"`
	ImageURL       string   `json:"imageUrl"`
	LearningPoints []string `json:"learningPoints"`
}

// CourseWithProgress is the listing/detail shape: the course joined with its
// category name and the caller's progress.
type CourseWithProgress struct {
	Course
	CategoryName     string `json:"categoryName"`
	Progress         int    `json:"progress"`
	CompletedLessons int    `json:"completedLessons"`
	LastActivity     string `json:"lastActivity,omitempty"`
}

// FeaturedCourse carries only the progress percentage.
type FeaturedCourse struct {
	Course
	CategoryName string `json:"categoryName"`
	Progress     int    `json:"progress"`
}
