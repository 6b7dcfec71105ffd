// Package api is the operator control surface: a JSON API over the queue
// service plus the WebSocket endpoint display processes connect to.
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/queuebot/internal/commands"
	"github.com/KirkDiggler/queuebot/internal/models"
	"github.com/KirkDiggler/queuebot/internal/services/queue"
)

// Config holds configuration for the API handler
type Config struct {
	QueueService queue.Service

	// DisplayHandler serves GET /ws/display when set
	DisplayHandler gin.HandlerFunc

	// AllowOrigins lists CORS origins; defaults to all
	AllowOrigins []string
}

// Handler serves the operator API
type Handler struct {
	queueService   queue.Service
	displayHandler gin.HandlerFunc
	allowOrigins   []string
}

// New creates a new API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.QueueService == nil {
		return nil, errors.New("queue service cannot be nil")
	}

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Handler{
		queueService:   cfg.QueueService,
		displayHandler: cfg.DisplayHandler,
		allowOrigins:   origins,
	}, nil
}

// Router builds the gin engine with every route registered
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  h.allowOrigins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/queue", h.GetQueue)
		apiGroup.DELETE("/queue", h.ClearQueue)
		apiGroup.POST("/queue/move", h.MoveEntry)
		apiGroup.DELETE("/queue/:username", h.RemoveEntry)
		apiGroup.POST("/queue/:username/playing", h.StartPlaying)
		apiGroup.DELETE("/queue/:username/playing", h.StopPlaying)

		apiGroup.GET("/settings", h.GetSettings)
		apiGroup.PATCH("/settings", h.UpdateSettings)

		apiGroup.POST("/commands", h.RunCommand)
	}

	if h.displayHandler != nil {
		r.GET("/ws/display", h.displayHandler)
	}

	return r
}

// GetQueue returns the current snapshot
func (h *Handler) GetQueue(c *gin.Context) {
	snapshot, err := h.queueService.GetSnapshot(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// ClearQueue removes every entry
func (h *Handler) ClearQueue(c *gin.Context) {
	if err := h.queueService.ClearQueue(c.Request.Context()); err != nil {
		internalError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MoveEntry reorders the queue
func (h *Handler) MoveEntry(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidBody,
			Message: "fromIndex and toIndex are required",
			Details: err.Error(),
		})
		return
	}

	err := h.queueService.MoveEntry(c.Request.Context(), &queue.MoveEntryInput{
		FromIndex: *req.FromIndex,
		ToIndex:   *req.ToIndex,
	})
	if errors.Is(err, queue.ErrInvalidIndex) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidIndex,
			Message: "index out of range",
		})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	h.GetQueue(c)
}

// RemoveEntry removes a user from the queue
func (h *Handler) RemoveEntry(c *gin.Context) {
	err := h.queueService.RemoveEntry(c.Request.Context(), &queue.RemoveEntryInput{
		Username: c.Param("username"),
	})
	if h.handleEntryError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

// StartPlaying marks a user as playing
func (h *Handler) StartPlaying(c *gin.Context) {
	h.setPlaying(c, true)
}

// StopPlaying unmarks a user as playing
func (h *Handler) StopPlaying(c *gin.Context) {
	h.setPlaying(c, false)
}

func (h *Handler) setPlaying(c *gin.Context, playing bool) {
	err := h.queueService.SetPlaying(c.Request.Context(), &queue.SetPlayingInput{
		Username: c.Param("username"),
		Playing:  playing,
	})
	if h.handleEntryError(c, err) {
		return
	}

	h.GetQueue(c)
}

// GetSettings returns the current settings
func (h *Handler) GetSettings(c *gin.Context) {
	snapshot, err := h.queueService.GetSnapshot(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{
		Settings:  snapshot.Settings,
		Persisted: true,
	})
}

// UpdateSettings applies a partial settings update
func (h *Handler) UpdateSettings(c *gin.Context) {
	var update models.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidBody,
			Message: "invalid settings document",
			Details: err.Error(),
		})
		return
	}

	if err := validateSettingsUpdate(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidSettings,
			Message: err.Error(),
		})
		return
	}

	out, err := h.queueService.UpdateSettings(c.Request.Context(), &queue.UpdateSettingsInput{
		Update: &update,
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{
		Settings:  out.Settings,
		Persisted: out.Persisted,
	})
}

// RunCommand feeds a chat line through the same path as the chat connection
func (h *Handler) RunCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidBody,
			Message: "username is required",
			Details: err.Error(),
		})
		return
	}

	cmd, ok := commands.Parse(req.Username, req.Text)
	if !ok {
		c.JSON(http.StatusOK, CommandResponse{})
		return
	}

	out, err := h.queueService.ProcessCommand(c.Request.Context(), &queue.ProcessCommandInput{
		Command: cmd,
	})
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, CommandResponse{
		Handled:  true,
		Response: out.Response,
		Changed:  out.Changed,
	})
}

// handleEntryError writes the reply for err and reports whether it did
func (h *Handler) handleEntryError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, queue.ErrEntryNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    CodeNotInQueue,
			Message: c.Param("username") + " is not in the queue",
		})
		return true
	}

	internalError(c, err)
	return true
}

func internalError(c *gin.Context, err error) {
	log.Printf("API %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    CodeInternal,
		Message: "internal error",
		Details: err.Error(),
	})
}
