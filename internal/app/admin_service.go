package app

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"quizhub/internal/domain"
)

// dashboardRecentLimit caps the recent-attempts block on the dashboard.
const dashboardRecentLimit = 10

// QuizUpdate is a partial quiz edit; nil fields are left unchanged.
// A non-nil empty QuestionIDs slice fails validation: the question set
// may never become empty.
type QuizUpdate struct {
	Title            *string
	Description      *string
	QuestionIDs      []string
	TimeLimitMinutes *int
	Category         *string
	Active           *bool
}

// ImportRow is one pre-parsed tabular row for bulk question import.
type ImportRow struct {
	Question      string `json:"question"`
	Option1       string `json:"option1"`
	Option2       string `json:"option2"`
	Option3       string `json:"option3"`
	Option4       string `json:"option4"`
	CorrectAnswer *int   `json:"correctAnswer"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Explanation   string `json:"explanation"`
}

// AdminService contains the curation use cases: question and quiz CRUD,
// bulk import, and dashboard aggregation.
type AdminService struct {
	questions   QuestionRepository
	quizzes     QuizRepository
	attempts    AttemptRepository
	invalidator ContentInvalidator
	now         func() time.Time
}

func NewAdminService(questions QuestionRepository, quizzes QuizRepository, attempts AttemptRepository, invalidator ContentInvalidator) *AdminService {
	return &AdminService{
		questions:   questions,
		quizzes:     quizzes,
		attempts:    attempts,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// CreateQuestion validates and stores a new question.
func (s *AdminService) CreateQuestion(ctx context.Context, q domain.Question, createdBy string) (domain.Question, error) {
	q.ID = uuid.NewString()
	q.CreatedBy = createdBy
	q.CreatedAt = s.now()
	q.UpdatedAt = q.CreatedAt
	if q.Difficulty == "" {
		q.Difficulty = domain.DifficultyMedium
	}
	if err := q.Validate(); err != nil {
		return domain.Question{}, err
	}
	if err := s.questions.Create(ctx, &q); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

// UpdateQuestion replaces a question's content and invalidates cached
// content for every quiz referencing it.
func (s *AdminService) UpdateQuestion(ctx context.Context, id string, in domain.Question) (domain.Question, error) {
	existing, err := s.questions.Get(ctx, id)
	if err != nil {
		return domain.Question{}, err
	}

	existing.Text = in.Text
	existing.Options = in.Options
	existing.CorrectOption = in.CorrectOption
	existing.Category = in.Category
	existing.Explanation = in.Explanation
	if in.Difficulty != "" {
		existing.Difficulty = in.Difficulty
	}
	existing.UpdatedAt = s.now()

	if err := existing.Validate(); err != nil {
		return domain.Question{}, err
	}
	if err := s.questions.Update(ctx, &existing); err != nil {
		return domain.Question{}, err
	}
	s.invalidateReferencing(ctx, id)
	return existing, nil
}

// DeleteQuestion removes a question and pulls its id out of every quiz
// referencing it. The delete is rejected when it would leave any quiz
// with an empty question set.
func (s *AdminService) DeleteQuestion(ctx context.Context, id string) error {
	if _, err := s.questions.Get(ctx, id); err != nil {
		return err
	}
	refs, err := s.quizzes.Referencing(ctx, id)
	if err != nil {
		return err
	}
	for _, quiz := range refs {
		if len(quiz.QuestionIDs) <= 1 {
			return domain.Validationf("question is the only question in quiz %q; delete or edit that quiz first", quiz.Title)
		}
	}
	if err := s.quizzes.RemoveQuestionRef(ctx, id); err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}
	for _, quiz := range refs {
		s.invalidator.Invalidate(ctx, quiz.ID)
	}
	return nil
}

// ListQuestions returns questions matching the filter, newest first.
func (s *AdminService) ListQuestions(ctx context.Context, f QuestionFilter) ([]domain.Question, error) {
	return s.questions.List(ctx, f)
}

// CreateQuiz validates bounds, the non-empty question set, and that
// every referenced question exists, then stores the quiz.
func (s *AdminService) CreateQuiz(ctx context.Context, q domain.Quiz, createdBy string) (domain.Quiz, error) {
	q.ID = uuid.NewString()
	q.CreatedBy = createdBy
	q.CreatedAt = s.now()
	q.UpdatedAt = q.CreatedAt
	if err := q.Validate(); err != nil {
		return domain.Quiz{}, err
	}
	if err := s.checkQuestionsExist(ctx, q.QuestionIDs); err != nil {
		return domain.Quiz{}, err
	}
	if err := s.quizzes.Create(ctx, &q); err != nil {
		return domain.Quiz{}, err
	}
	return q, nil
}

// UpdateQuiz applies a partial edit. The merged quiz must still satisfy
// every invariant, so the stored record never ends up with an empty
// question set.
func (s *AdminService) UpdateQuiz(ctx context.Context, id string, upd QuizUpdate) (domain.Quiz, error) {
	quiz, err := s.quizzes.Get(ctx, id)
	if err != nil {
		return domain.Quiz{}, err
	}

	if upd.Title != nil {
		quiz.Title = *upd.Title
	}
	if upd.Description != nil {
		quiz.Description = *upd.Description
	}
	if upd.QuestionIDs != nil {
		quiz.QuestionIDs = upd.QuestionIDs
	}
	if upd.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = *upd.TimeLimitMinutes
	}
	if upd.Category != nil {
		quiz.Category = *upd.Category
	}
	if upd.Active != nil {
		quiz.Active = *upd.Active
	}
	quiz.UpdatedAt = s.now()

	if err := quiz.Validate(); err != nil {
		return domain.Quiz{}, err
	}
	if upd.QuestionIDs != nil {
		if err := s.checkQuestionsExist(ctx, quiz.QuestionIDs); err != nil {
			return domain.Quiz{}, err
		}
	}
	if err := s.quizzes.Update(ctx, &quiz); err != nil {
		return domain.Quiz{}, err
	}
	s.invalidator.Invalidate(ctx, id)
	return quiz, nil
}

// DeleteQuiz removes a quiz. Attempts against it are kept.
func (s *AdminService) DeleteQuiz(ctx context.Context, id string) error {
	if _, err := s.quizzes.Get(ctx, id); err != nil {
		return err
	}
	if err := s.quizzes.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidator.Invalidate(ctx, id)
	return nil
}

// ListQuizzes returns every quiz, inactive ones included, newest first.
func (s *AdminService) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	return s.quizzes.List(ctx, QuizFilter{})
}

// ImportQuestions maps pre-parsed tabular rows onto question records.
// Rows missing the question text or any option are skipped; a missing
// or out-of-range correct answer defaults to 0, category to "General",
// difficulty to medium. Returns the number of imported questions.
func (s *AdminService) ImportQuestions(ctx context.Context, rows []ImportRow, createdBy string) (int, error) {
	now := s.now()
	questions := make([]domain.Question, 0, len(rows))
	for _, row := range rows {
		if row.Question == "" || row.Option1 == "" || row.Option2 == "" || row.Option3 == "" || row.Option4 == "" {
			continue
		}
		correct := 0
		if row.CorrectAnswer != nil && *row.CorrectAnswer >= 0 && *row.CorrectAnswer < domain.OptionCount {
			correct = *row.CorrectAnswer
		}
		category := row.Category
		if category == "" {
			category = "General"
		}
		difficulty := row.Difficulty
		switch difficulty {
		case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		default:
			difficulty = domain.DifficultyMedium
		}
		questions = append(questions, domain.Question{
			ID:            uuid.NewString(),
			Text:          row.Question,
			Options:       []string{row.Option1, row.Option2, row.Option3, row.Option4},
			CorrectOption: correct,
			Category:      category,
			Difficulty:    difficulty,
			Explanation:   row.Explanation,
			CreatedBy:     createdBy,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	if len(questions) == 0 {
		return 0, nil
	}
	if err := s.questions.CreateMany(ctx, questions); err != nil {
		return 0, err
	}
	return len(questions), nil
}

// Dashboard aggregates counts, the most recent attempts, and quiz
// counts per category.
func (s *AdminService) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	totalQuizzes, err := s.quizzes.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	totalQuestions, err := s.questions.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	totalAttempts, err := s.attempts.Count(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	recent, err := s.attempts.Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	categories, err := s.quizzes.CategoryCounts(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return domain.DashboardStats{
		TotalQuizzes:   totalQuizzes,
		TotalQuestions: totalQuestions,
		TotalAttempts:  totalAttempts,
		RecentAttempts: recent,
		CategoryStats:  categories,
	}, nil
}

// AllAttempts returns every user's attempts, newest first.
func (s *AdminService) AllAttempts(ctx context.Context) ([]domain.Attempt, error) {
	return s.attempts.ListAll(ctx)
}

func (s *AdminService) checkQuestionsExist(ctx context.Context, ids []string) error {
	found, err := s.questions.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return domain.Validationf("some selected questions do not exist")
	}
	return nil
}

func (s *AdminService) invalidateReferencing(ctx context.Context, questionID string) {
	refs, err := s.quizzes.Referencing(ctx, questionID)
	if err != nil {
		// Cache entries expire on their own TTL if this lookup fails.
		log.Printf("invalidate lookup for question %s: %v", questionID, err)
		return
	}
	for _, quiz := range refs {
		s.invalidator.Invalidate(ctx, quiz.ID)
	}
}
