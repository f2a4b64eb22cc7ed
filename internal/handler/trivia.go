package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/fyyur-trivia/internal/app"
	"github.com/qs-lzh/fyyur-trivia/internal/model"
	"github.com/qs-lzh/fyyur-trivia/internal/service"
	"github.com/qs-lzh/fyyur-trivia/internal/service/domain"
)

type TriviaHandler struct {
	app    *app.App
	logger *zap.Logger
}

func NewTriviaHandler(app *app.App) *TriviaHandler {
	return &TriviaHandler{
		app:    app,
		logger: app.Logger,
	}
}

func NewTriviaRouter(app *app.App) *gin.Engine {
	h := NewTriviaHandler(app)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(RequestLogger(app.Logger), Recovery(app.Logger, func(c *gin.Context) {
		abortWithError(c, http.StatusInternalServerError)
	}), CORS(app.Config.CORSOrigins))

	r.GET("/categories", h.HandleListCategories)
	r.GET("/categories/:id/questions", h.HandleCategoryQuestions)
	r.GET("/questions", h.HandleListQuestions)
	r.POST("/questions", h.HandleCreateQuestion)
	r.POST("/questions/search", h.HandleSearchQuestions)
	r.DELETE("/questions/:id", h.HandleDeleteQuestion)
	r.POST("/quizzes", h.HandleQuiz)

	r.NoRoute(func(c *gin.Context) { abortWithError(c, http.StatusNotFound) })
	r.NoMethod(func(c *gin.Context) { abortWithError(c, http.StatusMethodNotAllowed) })

	return r
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable entity",
	http.StatusInternalServerError: "internal server error",
}

func abortWithError(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   status,
		"message": errorMessages[status],
	})
}

// looseInt accepts a JSON number or a numeric string.
type looseInt int64

func (i *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*i = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*i = looseInt(n)
	return nil
}

type createQuestionRequest struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   looseInt `json:"category"`
	Difficulty looseInt `json:"difficulty"`
}

type searchQuestionsRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type quizRequest struct {
	PreviousQuestions []uint `json:"previous_questions"`
	QuizCategory      *struct {
		ID looseInt `json:"id"`
	} `json:"quiz_category"`
}

// bindJSON decodes an optional JSON body; an empty body leaves req untouched.
func bindJSON(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest)
		return false
	}
	return true
}

func (h *TriviaHandler) internalError(c *gin.Context, err error) {
	h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	abortWithError(c, http.StatusInternalServerError)
}

func (h *TriviaHandler) HandleListCategories(c *gin.Context) {
	categories, err := h.app.CategoryService.CategoryMap(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	if len(categories) == 0 {
		abortWithError(c, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
	})
}

func (h *TriviaHandler) HandleListQuestions(c *gin.Context) {
	page := 1
	if raw, ok := c.GetQuery("page"); ok {
		p, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest)
			return
		}
		page = p
	}

	result, err := h.app.QuestionService.ListQuestionsPage(c.Request.Context(), page)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest)
		case errors.Is(err, service.ErrNotFound):
			abortWithError(c, http.StatusNotFound)
		default:
			h.internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.TotalQuestions,
		"current_category": nil,
		"categories":       result.Categories,
	})
}

func (h *TriviaHandler) HandleDeleteQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abortWithError(c, http.StatusNotFound)
		return
	}
	if err := h.app.QuestionService.DeleteQuestion(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			abortWithError(c, http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete question", zap.Uint("question_id", id), zap.Error(err))
		abortWithError(c, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": id,
	})
}

func (h *TriviaHandler) HandleCreateQuestion(c *gin.Context) {
	var req createQuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Category < 0 || req.Difficulty < 0 {
		abortWithError(c, http.StatusBadRequest)
		return
	}

	id, err := h.app.QuestionService.CreateQuestion(c.Request.Context(), &model.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   uint(req.Category),
		Difficulty: int(req.Difficulty),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			abortWithError(c, http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create question", zap.Error(err))
		abortWithError(c, http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"created": id,
	})
}

func (h *TriviaHandler) HandleSearchQuestions(c *gin.Context) {
	var req searchQuestionsRequest
	if !bindJSON(c, &req) {
		return
	}
	questions, err := h.app.QuestionService.SearchQuestions(c.Request.Context(), req.SearchTerm)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest)
		case errors.Is(err, service.ErrNotFound):
			abortWithError(c, http.StatusNotFound)
		default:
			h.internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        questions,
		"total_questions":  len(questions),
		"current_category": nil,
	})
}

func (h *TriviaHandler) HandleCategoryQuestions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abortWithError(c, http.StatusNotFound)
		return
	}
	result, err := h.app.QuestionService.ListQuestionsByCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			abortWithError(c, http.StatusNotFound)
			return
		}
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.TotalQuestions,
		"current_category": result.CurrentCategory,
	})
}

func (h *TriviaHandler) HandleQuiz(c *gin.Context) {
	var req quizRequest
	if !bindJSON(c, &req) {
		return
	}
	categoryID := domain.AllCategories
	if req.QuizCategory != nil {
		if req.QuizCategory.ID < 0 {
			abortWithError(c, http.StatusBadRequest)
			return
		}
		categoryID = uint(req.QuizCategory.ID)
	}

	question, err := h.app.QuizService.NextQuestion(c.Request.Context(), req.PreviousQuestions, categoryID)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"question": question,
	})
}
