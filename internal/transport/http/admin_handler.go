package http

import (
	"fmt"
	"net/http"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

type questionRequest struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"min=0,max=3"`
	Category      string   `json:"category" validate:"required"`
	Difficulty    string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Explanation   string   `json:"explanation"`
}

func (r questionRequest) toDomain() domain.Question {
	return domain.Question{
		Text:          r.Question,
		Options:       r.Options,
		CorrectOption: r.CorrectAnswer,
		Category:      r.Category,
		Difficulty:    r.Difficulty,
		Explanation:   r.Explanation,
	}
}

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	question, err := h.admin.CreateQuestion(r.Context(), req.toDomain(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

func (h *Handler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	question, err := h.admin.UpdateQuestion(r.Context(), r.PathValue("id"), req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteQuestion(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "question deleted successfully"})
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.admin.ListQuestions(r.Context(), app.QuestionFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

type createQuizRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=10,max=500"`
	QuestionIDs []string `json:"questionIds" validate:"required,min=1,dive,required"`
	TimeLimit   int      `json:"timeLimit" validate:"required,min=1,max=300"`
	Category    string   `json:"category" validate:"required,min=2,max=50"`
	Active      *bool    `json:"active"`
}

func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	quiz, err := h.admin.CreateQuiz(r.Context(), domain.Quiz{
		Title:            req.Title,
		Description:      req.Description,
		QuestionIDs:      req.QuestionIDs,
		TimeLimitMinutes: req.TimeLimit,
		Category:         req.Category,
		Active:           active,
	}, userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

type updateQuizRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description" validate:"omitempty,min=10,max=500"`
	QuestionIDs []string `json:"questionIds" validate:"omitempty,min=1,dive,required"`
	TimeLimit   *int     `json:"timeLimit" validate:"omitempty,min=1,max=300"`
	Category    *string  `json:"category" validate:"omitempty,min=2,max=50"`
	Active      *bool    `json:"active"`
}

func (h *Handler) updateQuiz(w http.ResponseWriter, r *http.Request) {
	var req updateQuizRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	quiz, err := h.admin.UpdateQuiz(r.Context(), r.PathValue("id"), app.QuizUpdate{
		Title:            req.Title,
		Description:      req.Description,
		QuestionIDs:      req.QuestionIDs,
		TimeLimitMinutes: req.TimeLimit,
		Category:         req.Category,
		Active:           req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteQuiz(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "quiz deleted successfully"})
}

func (h *Handler) adminListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.admin.ListQuizzes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

type importRequest struct {
	Rows []app.ImportRow `json:"rows" validate:"required,min=1"`
}

func (h *Handler) importQuestions(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	count, err := h.admin.ImportQuestions(r.Context(), req.Rows, userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%d questions uploaded successfully", count),
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) allAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.admin.AllAttempts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}
