package domain

import "time"

// Difficulty buckets for a question.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// OptionCount is fixed: every question carries exactly four options.
const OptionCount = 4

// Question models an MCQ with exactly one correct option index.
type Question struct {
	ID            string    `json:"id"`
	Text          string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectOption int       `json:"correctOption"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	Explanation   string    `json:"explanation,omitempty"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Validate checks the question against its field bounds.
func (q Question) Validate() error {
	fields := map[string]string{}
	if q.Text == "" {
		fields["question"] = "question text is required"
	}
	if len(q.Options) != OptionCount {
		fields["options"] = "exactly 4 options are required"
	} else {
		for _, opt := range q.Options {
			if opt == "" {
				fields["options"] = "options must be non-empty"
				break
			}
		}
	}
	if q.CorrectOption < 0 || q.CorrectOption >= OptionCount {
		fields["correctOption"] = "correct option must be between 0 and 3"
	}
	if q.Category == "" {
		fields["category"] = "category is required"
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		fields["difficulty"] = "difficulty must be easy, medium, or hard"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: "invalid question", Fields: fields}
	}
	return nil
}

// Quiz is a named, timed collection of question references.
type Quiz struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	QuestionIDs      []string  `json:"questionIds"`
	TimeLimitMinutes int       `json:"timeLimit"`
	Category         string    `json:"category"`
	Active           bool      `json:"active"`
	CreatedBy        string    `json:"createdBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Validate checks the quiz against its field bounds, including the
// non-empty question set invariant.
func (q Quiz) Validate() error {
	fields := map[string]string{}
	if n := len(q.Title); n < 3 || n > 100 {
		fields["title"] = "title must be between 3 and 100 characters"
	}
	if n := len(q.Description); n < 10 || n > 500 {
		fields["description"] = "description must be between 10 and 500 characters"
	}
	if len(q.QuestionIDs) == 0 {
		fields["questionIds"] = "at least one question must be selected"
	}
	if q.TimeLimitMinutes < 1 || q.TimeLimitMinutes > 300 {
		fields["timeLimit"] = "time limit must be between 1 and 300 minutes"
	}
	if n := len(q.Category); n < 2 || n > 50 {
		fields["category"] = "category must be between 2 and 50 characters"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: "invalid quiz", Fields: fields}
	}
	return nil
}

// QuizContent is a quiz resolved together with its questions, in the
// quiz's question order. This is the unit the content cache stores.
type QuizContent struct {
	Quiz      Quiz       `json:"quiz"`
	Questions []Question `json:"questions"`
}

// AttemptAnswer records one selection. SelectedOption is nil when the
// question was left unanswered.
type AttemptAnswer struct {
	QuestionID     string `json:"questionId"`
	SelectedOption *int   `json:"selectedOption"`
}

// Attempt is the immutable record of one submission.
type Attempt struct {
	ID               string          `json:"id"`
	UserID           string          `json:"userId"`
	QuizID           string          `json:"quizId"`
	Answers          []AttemptAnswer `json:"answers"`
	Score            int             `json:"score"`
	TotalQuestions   int             `json:"totalQuestions"`
	TimeTakenSeconds int             `json:"timeTaken"`
	Completed        bool            `json:"completed"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// StartQuestion is the answer-stripped question shape served to takers.
type StartQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// StartView is what a taker sees when starting a quiz: no correct
// option indexes, no explanations.
type StartView struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	TimeLimitMinutes int             `json:"timeLimit"`
	TotalQuestions   int             `json:"totalQuestions"`
	Questions        []StartQuestion `json:"questions"`
}

// AnswerDetail is the per-question review entry returned once from submit.
type AnswerDetail struct {
	QuestionID     string   `json:"questionId"`
	Text           string   `json:"question"`
	Options        []string `json:"options"`
	SelectedOption *int     `json:"selectedOption"`
	CorrectOption  int      `json:"correctOption"`
	IsCorrect      bool     `json:"isCorrect"`
	Explanation    string   `json:"explanation,omitempty"`
}

// SubmitResult summarizes a scored submission.
type SubmitResult struct {
	AttemptID      string         `json:"attemptId"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Percentage     float64        `json:"percentage"`
	TimeTaken      int            `json:"timeTaken"`
	Answers        []AnswerDetail `json:"answers"`
}

// AttemptEvent is pushed to live dashboard subscribers on each submission.
type AttemptEvent struct {
	AttemptID      string    `json:"attemptId"`
	UserID         string    `json:"userId"`
	QuizID         string    `json:"quizId"`
	QuizTitle      string    `json:"quizTitle"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     float64   `json:"percentage"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CategoryCount is one dashboard grouping row.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DashboardStats aggregates counts for the admin dashboard.
type DashboardStats struct {
	TotalQuizzes   int             `json:"totalQuizzes"`
	TotalQuestions int             `json:"totalQuestions"`
	TotalAttempts  int             `json:"totalAttempts"`
	RecentAttempts []Attempt       `json:"recentAttempts"`
	CategoryStats  []CategoryCount `json:"categoryStats"`
}
