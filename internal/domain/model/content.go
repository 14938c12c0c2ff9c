package model

type ContentItemType string

const (
	ItemVideo   ContentItemType = "video"
	ItemArticle ContentItemType = "article"
	ItemQuiz    ContentItemType = "quiz"
)

func (t ContentItemType) Valid() bool {
	switch t {
	case ItemVideo, ItemArticle, ItemQuiz:
		return true
	}
	return false
}

type ContentSection struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"courseId"`
	Title       string `json:"title"`
	Type        string `json:"type"` // e.g. "module"
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type ContentItem struct {
	ID        int             `json:"id"`
	SectionID int             `json:"sectionId"`
	Title     string          `json:"title"`
	Type      ContentItemType `json:"type"`
	Duration  string          `json:"duration"`
	Content   string          `json:"content"`
	Order     int             `json:"order"`
}

type ContentItemWithStatus struct {
	ContentItem
	HTML      string `json:"html,omitempty"` // Rendered markdown, articles only
	Completed bool   `json:"completed"`
}

type SectionWithItems struct {
	ContentSection
	Items []ContentItemWithStatus `json:"items"`
}
