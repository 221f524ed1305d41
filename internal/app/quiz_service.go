package app

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"quizhub/internal/domain"
)

// attemptHistoryLimit caps the taker-facing attempt history.
const attemptHistoryLimit = 20

// QuizService contains the taker-facing use cases: listing, starting,
// and submitting quizzes.
type QuizService struct {
	quizzes  QuizRepository
	attempts AttemptRepository
	content  QuizContentSource
	feed     *AttemptFeed
	now      func() time.Time
}

func NewQuizService(quizzes QuizRepository, attempts AttemptRepository, content QuizContentSource, feed *AttemptFeed) *QuizService {
	return &QuizService{
		quizzes:  quizzes,
		attempts: attempts,
		content:  content,
		feed:     feed,
		now:      time.Now,
	}
}

// List returns active quizzes, optionally filtered by category and a
// case-insensitive title/description search, newest first.
func (s *QuizService) List(ctx context.Context, category, search string) ([]domain.Quiz, error) {
	return s.quizzes.List(ctx, QuizFilter{Category: category, Search: search, ActiveOnly: true})
}

// Get returns the full quiz content, answers included. Inactive quizzes
// are treated as missing.
func (s *QuizService) Get(ctx context.Context, quizID string) (domain.QuizContent, error) {
	content, err := s.content.GetContent(ctx, quizID)
	if err != nil {
		return domain.QuizContent{}, err
	}
	if !content.Quiz.Active {
		return domain.QuizContent{}, domain.ErrQuizNotFound
	}
	return content, nil
}

// Start returns the answer-stripped view of an active quiz. The correct
// option index and explanation never appear in the result.
func (s *QuizService) Start(ctx context.Context, quizID string) (domain.StartView, error) {
	content, err := s.content.GetContent(ctx, quizID)
	if err != nil {
		return domain.StartView{}, err
	}
	if !content.Quiz.Active {
		return domain.StartView{}, domain.ErrQuizNotFound
	}

	questions := make([]domain.StartQuestion, 0, len(content.Questions))
	for _, q := range content.Questions {
		questions = append(questions, domain.StartQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.Options,
		})
	}
	return domain.StartView{
		ID:               content.Quiz.ID,
		Title:            content.Quiz.Title,
		Description:      content.Quiz.Description,
		TimeLimitMinutes: content.Quiz.TimeLimitMinutes,
		TotalQuestions:   len(questions),
		Questions:        questions,
	}, nil
}

// Submit scores the answers positionally against the quiz's current
// question list, persists one Attempt, and returns the result with a
// per-question review. The active flag is deliberately not re-checked.
//
// Scoring does not use a persisted snapshot of the question set the
// taker was shown; an admin edit between start and submit scores
// against the edited quiz.
func (s *QuizService) Submit(ctx context.Context, quizID, userID string, answers []*int, timeTaken int) (domain.SubmitResult, error) {
	content, err := s.content.GetContent(ctx, quizID)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	score, details, recorded := scoreAnswers(content.Questions, answers)
	if timeTaken < 0 {
		timeTaken = 0
	}

	attempt := domain.Attempt{
		ID:               uuid.NewString(),
		UserID:           userID,
		QuizID:           quizID,
		Answers:          recorded,
		Score:            score,
		TotalQuestions:   len(content.Questions),
		TimeTakenSeconds: timeTaken,
		Completed:        true,
		CreatedAt:        s.now(),
	}
	if err := s.attempts.Create(ctx, &attempt); err != nil {
		return domain.SubmitResult{}, err
	}

	pct := percentage(score, attempt.TotalQuestions)
	if s.feed != nil {
		s.feed.Publish(domain.AttemptEvent{
			AttemptID:      attempt.ID,
			UserID:         userID,
			QuizID:         quizID,
			QuizTitle:      content.Quiz.Title,
			Score:          score,
			TotalQuestions: attempt.TotalQuestions,
			Percentage:     pct,
			CreatedAt:      attempt.CreatedAt,
		})
	}

	return domain.SubmitResult{
		AttemptID:      attempt.ID,
		Score:          score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     pct,
		TimeTaken:      timeTaken,
		Answers:        details,
	}, nil
}

// Attempts returns the caller's recent attempts, newest first.
func (s *QuizService) Attempts(ctx context.Context, userID string) ([]domain.Attempt, error) {
	return s.attempts.ListByUser(ctx, userID, attemptHistoryLimit)
}

// Categories returns the distinct categories of active quizzes.
func (s *QuizService) Categories(ctx context.Context) ([]string, error) {
	return s.quizzes.Categories(ctx)
}

// scoreAnswers walks the question list once, matching answers by
// position. Missing or out-of-range entries count as unanswered and
// never score; entries beyond the question count are ignored.
func scoreAnswers(questions []domain.Question, answers []*int) (int, []domain.AnswerDetail, []domain.AttemptAnswer) {
	score := 0
	details := make([]domain.AnswerDetail, 0, len(questions))
	recorded := make([]domain.AttemptAnswer, 0, len(questions))

	for i, q := range questions {
		var selected *int
		if i < len(answers) {
			selected = answers[i]
		}
		correct := selected != nil && *selected == q.CorrectOption
		if correct {
			score++
		}
		details = append(details, domain.AnswerDetail{
			QuestionID:     q.ID,
			Text:           q.Text,
			Options:        q.Options,
			SelectedOption: selected,
			CorrectOption:  q.CorrectOption,
			IsCorrect:      correct,
			Explanation:    q.Explanation,
		})
		recorded = append(recorded, domain.AttemptAnswer{
			QuestionID:     q.ID,
			SelectedOption: selected,
		})
	}
	return score, details, recorded
}

// percentage rounds score/total to two decimal places. Quizzes are never
// empty, but an empty question list must not divide by zero.
func percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*100*100) / 100
}
