package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"quizhub/internal/app"
)

// Handler wires the quiz and admin services into the REST surface.
type Handler struct {
	quiz     *app.QuizService
	admin    *app.AdminService
	feed     *app.AttemptFeed
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func NewHandler(quiz *app.QuizService, admin *app.AdminService, feed *app.AttemptFeed) *Handler {
	return &Handler{
		quiz:     quiz,
		admin:    admin,
		feed:     feed,
		validate: validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Router builds the route table.
func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/quizzes", h.listQuizzes)
	mux.HandleFunc("GET /api/quizzes/categories", h.categories)
	mux.HandleFunc("GET /api/quizzes/attempts", requireUser(h.myAttempts))
	mux.HandleFunc("GET /api/quizzes/{id}", h.getQuiz)
	mux.HandleFunc("GET /api/quizzes/{id}/start", requireUser(h.startQuiz))
	mux.HandleFunc("POST /api/quizzes/{id}/submit", requireUser(h.submitQuiz))

	mux.HandleFunc("GET /api/admin/dashboard", requireAdmin(h.dashboard))
	mux.HandleFunc("GET /api/admin/questions", requireAdmin(h.listQuestions))
	mux.HandleFunc("POST /api/admin/questions", requireAdmin(h.createQuestion))
	mux.HandleFunc("PUT /api/admin/questions/{id}", requireAdmin(h.updateQuestion))
	mux.HandleFunc("DELETE /api/admin/questions/{id}", requireAdmin(h.deleteQuestion))
	mux.HandleFunc("POST /api/admin/questions/import", requireAdmin(h.importQuestions))
	mux.HandleFunc("GET /api/admin/quizzes", requireAdmin(h.adminListQuizzes))
	mux.HandleFunc("POST /api/admin/quizzes", requireAdmin(h.createQuiz))
	mux.HandleFunc("PUT /api/admin/quizzes/{id}", requireAdmin(h.updateQuiz))
	mux.HandleFunc("DELETE /api/admin/quizzes/{id}", requireAdmin(h.deleteQuiz))
	mux.HandleFunc("GET /api/admin/attempts", requireAdmin(h.allAttempts))
	mux.HandleFunc("GET /api/admin/attempts/live", requireAdmin(h.liveAttempts))
	return mux
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quiz.List(r.Context(), r.URL.Query().Get("category"), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.quiz.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	content, err := h.quiz.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.Start(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type submitRequest struct {
	Answers   []*int `json:"answers" validate:"required"`
	TimeTaken int    `json:"timeTaken" validate:"gte=0"`
}

func (h *Handler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := h.decodeValid(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.quiz.Submit(r.Context(), r.PathValue("id"), userID(r), req.Answers, req.TimeTaken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) myAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.quiz.Attempts(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attempts)
}
