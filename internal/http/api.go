package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	exercises service.ExerciseService
	indexPath string
	timeout   time.Duration
	logger    *logrus.Logger
}

func NewHandler(users service.UserService, exercises service.ExerciseService, indexPath string, timeout time.Duration, logger *logrus.Logger) *Handler {
	return &Handler{
		users:     users,
		exercises: exercises,
		indexPath: indexPath,
		timeout:   timeout,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	router.StaticFile("/", h.indexPath)

	api := router.Group("/api")
	{
		api.POST("/users", h.createUser)
		api.GET("/users", h.listUsers)
		api.POST("/users/:_id/exercises", h.addExercise)
		api.GET("/users/:_id/logs", h.getLogs)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("request")
	}
}

type createUserRequest struct {
	Username string `form:"username" json:"username"`
}

type addExerciseRequest struct {
	Description string  `form:"description" json:"description"`
	Duration    float64 `form:"duration" json:"duration"`
	Date        string  `form:"date" json:"date"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.users.CreateUser(ctx, req.Username)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) listUsers(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	users, err := h.users.ListUsers(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) addExercise(c *gin.Context) {
	var req addExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, entry, err := h.exercises.AddExercise(ctx, c.Param("_id"), req.Description, req.Duration, req.Date)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExerciseResponse{
		Username:    user.Username,
		Description: entry.Description,
		Duration:    entry.Duration,
		Date:        entry.Date.Format(domain.DateDisplayLayout),
		ID:          user.ID,
	})
}

func (h *Handler) getLogs(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.exercises.GetLogs(
		ctx,
		c.Param("_id"),
		c.Query("from"),
		c.Query("to"),
		c.Query("limit"),
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	log := make([]LogEntryResponse, len(result.Entries))
	for i := range result.Entries {
		log[i] = LogEntryResponse{
			Description: result.Entries[i].Description,
			Duration:    result.Entries[i].Duration,
			Date:        result.Entries[i].Date.Format(domain.DateDisplayLayout),
		}
	}

	c.JSON(http.StatusOK, UserLogResponse{
		Username: result.User.Username,
		Count:    result.User.Count,
		ID:       result.User.ID,
		Log:      log,
	})
}

// requestContext bounds service calls so a stalled database cannot hang the
// request indefinitely.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
	case errors.Is(err, service.ErrUsernameRequired), errors.Is(err, service.ErrInvalidLimit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

type ExerciseResponse struct {
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
	ID          string  `json:"_id"`
}

type LogEntryResponse struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

type UserLogResponse struct {
	Username string             `json:"username"`
	Count    int                `json:"count"`
	ID       string             `json:"_id"`
	Log      []LogEntryResponse `json:"log"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		Username: user.Username,
		ID:       user.ID,
	}
}
