package model

type QuizDifficulty string

const (
	DifficultyEasy   QuizDifficulty = "easy"
	DifficultyMedium QuizDifficulty = "medium"
	DifficultyHard   QuizDifficulty = "hard"
)

func (d QuizDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Quiz struct {
	ID          int            `json:"id"`
	CourseID    int            `json:"courseId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	TimeLimit   string         `json:"timeLimit"`
	Difficulty  QuizDifficulty `json:"difficulty"`
}

type QuizOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuizQuestion struct {
	ID              int          `json:"id"`
	QuizID          int          `json:"quizId"`
	Text            string       `json:"text"`
	Options         []QuizOption `json:"options"`
	CorrectAnswerID string       `json:"correctAnswerId"`
	Explanation     string       `json:"explanation"`
	Order           int          `json:"order"`
}

// ClientQuestion is a QuizQuestion as served before submission, without the
// correct answer.
type ClientQuestion struct {
	ID          int          `json:"id"`
	QuizID      int          `json:"quizId"`
	Text        string       `json:"text"`
	Options     []QuizOption `json:"options"`
	Explanation string       `json:"explanation"`
	Order       int          `json:"order"`
}

func (q QuizQuestion) ForClient() ClientQuestion {
	return ClientQuestion{
		ID:          q.ID,
		QuizID:      q.QuizID,
		Text:        q.Text,
		Options:     q.Options,
		Explanation: q.Explanation,
		Order:       q.Order,
	}
}

type ClientQuiz struct {
	Quiz
	Questions []ClientQuestion `json:"questions"`
}

// QuizSummary is the per-course listing entry.
type QuizSummary struct {
	Quiz
	QuestionCount int  `json:"questionCount"`
	Completed     bool `json:"completed"`
	Score         *int `json:"score,omitempty"`
}

// SubmissionResult is returned after grading and always includes the answer key.
type SubmissionResult struct {
	QuizID         int            `json:"quizId"`
	Score          int            `json:"score"`
	CorrectCount   int            `json:"correctCount"`
	TotalQuestions int            `json:"totalQuestions"`
	CorrectAnswers map[int]string `json:"correctAnswers"`
}
