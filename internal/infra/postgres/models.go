package postgres

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"

	"quizhub/internal/domain"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions,alias:q"`

	ID            string    `bun:"id,pk"`
	Text          string    `bun:"text,notnull"`
	Options       []string  `bun:"options,array"`
	CorrectOption int       `bun:"correct_option,notnull"`
	Category      string    `bun:"category,notnull"`
	Difficulty    string    `bun:"difficulty,notnull"`
	Explanation   string    `bun:"explanation"`
	CreatedBy     string    `bun:"created_by"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

func questionToRow(q domain.Question) questionRow {
	return questionRow{
		ID:            q.ID,
		Text:          q.Text,
		Options:       q.Options,
		CorrectOption: q.CorrectOption,
		Category:      q.Category,
		Difficulty:    q.Difficulty,
		Explanation:   q.Explanation,
		CreatedBy:     q.CreatedBy,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func (r questionRow) toDomain() domain.Question {
	return domain.Question{
		ID:            r.ID,
		Text:          r.Text,
		Options:       r.Options,
		CorrectOption: r.CorrectOption,
		Category:      r.Category,
		Difficulty:    r.Difficulty,
		Explanation:   r.Explanation,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes,alias:qz"`

	ID               string    `bun:"id,pk"`
	Title            string    `bun:"title,notnull"`
	Description      string    `bun:"description,notnull"`
	QuestionIDs      []string  `bun:"question_ids,array"`
	TimeLimitMinutes int       `bun:"time_limit_minutes,notnull"`
	Category         string    `bun:"category,notnull"`
	Active           bool      `bun:"active,notnull"`
	CreatedBy        string    `bun:"created_by"`
	CreatedAt        time.Time `bun:"created_at,notnull"`
	UpdatedAt        time.Time `bun:"updated_at,notnull"`
}

func quizToRow(q domain.Quiz) quizRow {
	return quizRow{
		ID:               q.ID,
		Title:            q.Title,
		Description:      q.Description,
		QuestionIDs:      q.QuestionIDs,
		TimeLimitMinutes: q.TimeLimitMinutes,
		Category:         q.Category,
		Active:           q.Active,
		CreatedBy:        q.CreatedBy,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

func (r quizRow) toDomain() domain.Quiz {
	return domain.Quiz{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		QuestionIDs:      r.QuestionIDs,
		TimeLimitMinutes: r.TimeLimitMinutes,
		Category:         r.Category,
		Active:           r.Active,
		CreatedBy:        r.CreatedBy,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type attemptRow struct {
	bun.BaseModel `bun:"table:attempts,alias:a"`

	ID               string          `bun:"id,pk"`
	UserID           string          `bun:"user_id,notnull"`
	QuizID           string          `bun:"quiz_id,notnull"`
	Answers          json.RawMessage `bun:"answers,type:jsonb"`
	Score            int             `bun:"score,notnull"`
	TotalQuestions   int             `bun:"total_questions,notnull"`
	TimeTakenSeconds int             `bun:"time_taken_seconds,notnull"`
	Completed        bool            `bun:"completed,notnull"`
	CreatedAt        time.Time       `bun:"created_at,notnull"`
}

func attemptToRow(a domain.Attempt) (attemptRow, error) {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return attemptRow{}, err
	}
	return attemptRow{
		ID:               a.ID,
		UserID:           a.UserID,
		QuizID:           a.QuizID,
		Answers:          answers,
		Score:            a.Score,
		TotalQuestions:   a.TotalQuestions,
		TimeTakenSeconds: a.TimeTakenSeconds,
		Completed:        a.Completed,
		CreatedAt:        a.CreatedAt,
	}, nil
}

func (r attemptRow) toDomain() (domain.Attempt, error) {
	var answers []domain.AttemptAnswer
	if len(r.Answers) > 0 {
		if err := json.Unmarshal(r.Answers, &answers); err != nil {
			return domain.Attempt{}, err
		}
	}
	return domain.Attempt{
		ID:               r.ID,
		UserID:           r.UserID,
		QuizID:           r.QuizID,
		Answers:          answers,
		Score:            r.Score,
		TotalQuestions:   r.TotalQuestions,
		TimeTakenSeconds: r.TimeTakenSeconds,
		Completed:        r.Completed,
		CreatedAt:        r.CreatedAt,
	}, nil
}
