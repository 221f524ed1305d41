package app_test

import (
	"context"
	"errors"
	"testing"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

func TestCreateQuizRequiresQuestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.admin.CreateQuiz(ctx, domain.Quiz{
		Title:            "Empty Quiz",
		Description:      "This quiz has no questions.",
		QuestionIDs:      nil,
		TimeLimitMinutes: 10,
		Category:         "General",
		Active:           true,
	}, "admin-1")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["questionIds"]; !ok {
		t.Fatalf("expected questionIds failure, got %v", verr.Fields)
	}
}

func TestCreateQuizRejectsUnknownQuestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedQuiz(t, 1)

	_, err := f.admin.CreateQuiz(ctx, domain.Quiz{
		Title:            "Broken Quiz",
		Description:      "References a question that does not exist.",
		QuestionIDs:      []string{"no-such-question"},
		TimeLimitMinutes: 10,
		Category:         "General",
		Active:           true,
	}, "admin-1")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateQuizCannotEmptyQuestionSet(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID := f.seedQuiz(t, 2)

	_, err := f.admin.UpdateQuiz(ctx, quizID, app.QuizUpdate{QuestionIDs: []string{}})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// The stored quiz is untouched.
	quizzes, err := f.admin.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list quizzes: %v", err)
	}
	if len(quizzes) != 1 || len(quizzes[0].QuestionIDs) != 2 {
		t.Fatalf("stored quiz must keep its questions, got %+v", quizzes)
	}
}

func TestUpdateQuizPartialEdit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID := f.seedQuiz(t, 2)

	title := "Renamed Quiz"
	limit := 30
	quiz, err := f.admin.UpdateQuiz(ctx, quizID, app.QuizUpdate{Title: &title, TimeLimitMinutes: &limit})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if quiz.Title != "Renamed Quiz" || quiz.TimeLimitMinutes != 30 {
		t.Fatalf("edit not applied: %+v", quiz)
	}
	if len(quiz.QuestionIDs) != 2 || quiz.Category != "General" {
		t.Fatalf("untouched fields changed: %+v", quiz)
	}
}

func TestDeleteQuestionPullsReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID := f.seedQuiz(t, 3)

	quizzes, _ := f.admin.ListQuizzes(ctx)
	victim := quizzes[0].QuestionIDs[1]

	if err := f.admin.DeleteQuestion(ctx, victim); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	quiz, err := f.quiz.Get(ctx, quizID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if len(quiz.Quiz.QuestionIDs) != 2 {
		t.Fatalf("expected reference pulled, got %v", quiz.Quiz.QuestionIDs)
	}
	for _, id := range quiz.Quiz.QuestionIDs {
		if id == victim {
			t.Fatalf("deleted question still referenced")
		}
	}

	if _, err := f.admin.ListQuestions(ctx, app.QuestionFilter{}); err != nil {
		t.Fatalf("list questions: %v", err)
	}
}

func TestDeleteLastQuestionOfQuizRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedQuiz(t, 1)

	quizzes, _ := f.admin.ListQuizzes(ctx)
	only := quizzes[0].QuestionIDs[0]

	err := f.admin.DeleteQuestion(ctx, only)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Question and reference both survive.
	if _, err := f.admin.UpdateQuestion(ctx, only, domain.Question{
		Text:          "Still here",
		Options:       []string{"a", "b", "c", "d"},
		CorrectOption: 0,
		Category:      "General",
	}); err != nil {
		t.Fatalf("question should still exist: %v", err)
	}
	quizzes, _ = f.admin.ListQuizzes(ctx)
	if len(quizzes[0].QuestionIDs) != 1 {
		t.Fatalf("quiz lost its only question: %+v", quizzes[0])
	}
}

func TestDeleteMissingQuestion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	if err := f.admin.DeleteQuestion(ctx, "nope"); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}
}

func TestImportQuestionsPermissive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	bad := 7
	rows := []app.ImportRow{
		{
			Question: "Complete row",
			Option1:  "a", Option2: "b", Option3: "c", Option4: "d",
			CorrectAnswer: ip(2),
			Category:      "Tech",
			Difficulty:    "hard",
		},
		{
			// Missing option4: skipped.
			Question: "Incomplete row",
			Option1:  "a", Option2: "b", Option3: "c",
		},
		{
			// Out-of-range correct answer defaults to 0, blanks default.
			Question: "Sloppy row",
			Option1:  "a", Option2: "b", Option3: "c", Option4: "d",
			CorrectAnswer: &bad,
			Difficulty:    "impossible",
		},
	}

	count, err := f.admin.ImportQuestions(ctx, rows, "admin-1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported, got %d", count)
	}

	questions, err := f.admin.ListQuestions(ctx, app.QuestionFilter{Search: "sloppy"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected sloppy row imported, got %d", len(questions))
	}
	q := questions[0]
	if q.CorrectOption != 0 || q.Category != "General" || q.Difficulty != domain.DifficultyMedium {
		t.Fatalf("defaults not applied: %+v", q)
	}
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID := f.seedQuiz(t, 2)

	for i := 0; i < 12; i++ {
		if _, err := f.quiz.Submit(ctx, quizID, "u1", []*int{ip(0), ip(1)}, i); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	stats, err := f.admin.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalQuizzes != 1 || stats.TotalQuestions != 2 || stats.TotalAttempts != 12 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if len(stats.RecentAttempts) != 10 {
		t.Fatalf("expected 10 recent attempts, got %d", len(stats.RecentAttempts))
	}
	if len(stats.CategoryStats) != 1 || stats.CategoryStats[0].Category != "General" || stats.CategoryStats[0].Count != 1 {
		t.Fatalf("unexpected category stats: %+v", stats.CategoryStats)
	}
}

func TestDeleteQuizKeepsAttempts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	quizID := f.seedQuiz(t, 1)

	if _, err := f.quiz.Submit(ctx, quizID, "u1", []*int{ip(0)}, 10); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.admin.DeleteQuiz(ctx, quizID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}

	attempts, err := f.admin.AllAttempts(ctx)
	if err != nil {
		t.Fatalf("all attempts: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("attempts must survive quiz deletion, got %d", len(attempts))
	}
}
