package domain

import (
	"errors"
	"strings"
	"testing"
)

func validQuestion() Question {
	return Question{
		ID:            "q1",
		Text:          "What is 2 + 2?",
		Options:       []string{"3", "4", "5", "22"},
		CorrectOption: 1,
		Category:      "Math",
		Difficulty:    DifficultyMedium,
	}
}

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Question)
		wantErr string
	}{
		{name: "valid", mutate: func(q *Question) {}},
		{
			name:    "empty text",
			mutate:  func(q *Question) { q.Text = "" },
			wantErr: "question",
		},
		{
			name:    "three options",
			mutate:  func(q *Question) { q.Options = q.Options[:3] },
			wantErr: "options",
		},
		{
			name:    "blank option",
			mutate:  func(q *Question) { q.Options[2] = "" },
			wantErr: "options",
		},
		{
			name:    "correct option out of range",
			mutate:  func(q *Question) { q.CorrectOption = 4 },
			wantErr: "correctOption",
		},
		{
			name:    "negative correct option",
			mutate:  func(q *Question) { q.CorrectOption = -1 },
			wantErr: "correctOption",
		},
		{
			name:    "unknown difficulty",
			mutate:  func(q *Question) { q.Difficulty = "extreme" },
			wantErr: "difficulty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tt.wantErr]; !ok {
				t.Fatalf("expected field %q in %v", tt.wantErr, verr.Fields)
			}
		})
	}
}

func validQuiz() Quiz {
	return Quiz{
		ID:               "quiz-1",
		Title:            "General Knowledge",
		Description:      "A mixed bag of questions.",
		QuestionIDs:      []string{"q1", "q2"},
		TimeLimitMinutes: 10,
		Category:         "General",
		Active:           true,
	}
}

func TestQuizValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Quiz)
		wantErr string
	}{
		{name: "valid", mutate: func(q *Quiz) {}},
		{
			name:    "short title",
			mutate:  func(q *Quiz) { q.Title = "ab" },
			wantErr: "title",
		},
		{
			name:    "long title",
			mutate:  func(q *Quiz) { q.Title = strings.Repeat("x", 101) },
			wantErr: "title",
		},
		{
			name:    "short description",
			mutate:  func(q *Quiz) { q.Description = "too short" },
			wantErr: "description",
		},
		{
			name:    "empty question set",
			mutate:  func(q *Quiz) { q.QuestionIDs = nil },
			wantErr: "questionIds",
		},
		{
			name:    "zero time limit",
			mutate:  func(q *Quiz) { q.TimeLimitMinutes = 0 },
			wantErr: "timeLimit",
		},
		{
			name:    "time limit too high",
			mutate:  func(q *Quiz) { q.TimeLimitMinutes = 301 },
			wantErr: "timeLimit",
		},
		{
			name:    "short category",
			mutate:  func(q *Quiz) { q.Category = "a" },
			wantErr: "category",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuiz()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tt.wantErr]; !ok {
				t.Fatalf("expected field %q in %v", tt.wantErr, verr.Fields)
			}
		})
	}
}
