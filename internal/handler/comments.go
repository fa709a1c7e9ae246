package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agoranews/comment-gateway/internal/client"
	"github.com/agoranews/comment-gateway/internal/model"
	"github.com/agoranews/comment-gateway/internal/service"
)

type ThreadHandler struct {
	registry *service.ThreadRegistry
	log      *zap.Logger
}

func NewThreadHandler(registry *service.ThreadRegistry, log *zap.Logger) *ThreadHandler {
	return &ThreadHandler{registry: registry, log: log}
}

// GetThread godoc
// @Summary Get the comment forest for a subject
// @Description Nested comments for one article or debate topic, in server sort order. stance filters topic comments client-side.
// @Tags threads
// @Produce json
// @Param subject path string true "Article or topic ID"
// @Param sort query string false "latest | oldest | popular"
// @Param stance query string false "LEFT | RIGHT | NEUTRAL"
// @Success 200 {object} model.ThreadResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/threads/{subject}/comments [get]
func (h *ThreadHandler) GetThread(c *gin.Context) {
	subject := c.Param("subject")
	token := BearerToken(c)
	sort := model.SortMode(c.Query("sort"))
	stance := model.Stance(c.Query("stance"))

	res, err := h.registry.View(subject, token).Fetch(c.Request.Context(), token, sort, stance)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateComment godoc
// @Summary Post a comment or reply
// @Description Creates the comment and returns the refetched thread — the server assigns the id and sort position.
// @Tags threads
// @Accept json
// @Produce json
// @Param subject path string true "Article or topic ID"
// @Param request body model.CreateCommentRequest true "Comment payload"
// @Security BearerAuth
// @Success 201 {object} model.ThreadResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/threads/{subject}/comments [post]
func (h *ThreadHandler) CreateComment(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	subject := c.Param("subject")
	token := BearerToken(c)

	res, err := h.registry.View(subject, token).Create(c.Request.Context(), token, req.Content, req.ParentID, req.Stance)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// EditComment godoc
// @Summary Edit a comment
// @Description Applies the server's updated record to the local forest without a refetch.
// @Tags threads
// @Accept json
// @Produce json
// @Param subject path string true "Article or topic ID"
// @Param id path string true "Comment ID"
// @Param request body model.EditCommentRequest true "New content"
// @Security BearerAuth
// @Success 200 {object} model.ThreadResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/threads/{subject}/comments/{id} [patch]
func (h *ThreadHandler) EditComment(c *gin.Context) {
	var req model.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	subject := c.Param("subject")
	token := BearerToken(c)

	res, err := h.registry.View(subject, token).Edit(c.Request.Context(), token, c.Param("id"), req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Soft delete: the comment becomes a placeholder and its replies stay.
// @Tags threads
// @Produce json
// @Param subject path string true "Article or topic ID"
// @Param id path string true "Comment ID"
// @Security BearerAuth
// @Success 200 {object} model.ThreadResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/threads/{subject}/comments/{id} [delete]
func (h *ThreadHandler) DeleteComment(c *gin.Context) {
	subject := c.Param("subject")
	token := BearerToken(c)

	res, err := h.registry.View(subject, token).SoftDelete(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ReactToComment godoc
// @Summary React to a comment
// @Description LIKE or DISLIKE. The response carries the server's authoritative counts.
// @Tags threads
// @Accept json
// @Produce json
// @Param subject path string true "Article or topic ID"
// @Param id path string true "Comment ID"
// @Param request body model.ReactionRequest true "Reaction type"
// @Security BearerAuth
// @Success 200 {object} model.ReactionResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/threads/{subject}/comments/{id}/reaction [post]
func (h *ThreadHandler) ReactToComment(c *gin.Context) {
	var req model.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	subject := c.Param("subject")
	token := BearerToken(c)

	state, err := h.registry.View(subject, token).React(c.Request.Context(), token, c.Param("id"), req.Type)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ReactionResponse{Status: "success", Reaction: *state})
}

// ClearReaction godoc
// @Summary Clear a reaction
// @Tags threads
// @Produce json
// @Param subject path string true "Article or topic ID"
// @Param id path string true "Comment ID"
// @Security BearerAuth
// @Success 200 {object} model.ReactionResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/threads/{subject}/comments/{id}/reaction [delete]
func (h *ThreadHandler) ClearReaction(c *gin.Context) {
	subject := c.Param("subject")
	token := BearerToken(c)

	state, err := h.registry.View(subject, token).ClearReaction(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ReactionResponse{Status: "success", Reaction: *state})
}

// ReportComment godoc
// @Summary Report a comment
// @Tags threads
// @Accept json
// @Produce json
// @Param subject path string true "Article or topic ID"
// @Param id path string true "Comment ID"
// @Param request body model.ReportRequest true "Report reason"
// @Security BearerAuth
// @Success 200 {object} model.ReportResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/threads/{subject}/comments/{id}/report [post]
func (h *ThreadHandler) ReportComment(c *gin.Context) {
	var req model.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	subject := c.Param("subject")
	token := BearerToken(c)

	message, err := h.registry.View(subject, token).Report(c.Request.Context(), token, c.Param("id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ReportResponse{Status: "success", Message: message})
}

// writeError maps the service error taxonomy onto status codes:
// ValidationError → 400, SessionExpired → 401 (caller forces re-login),
// everything else → 502 with the server-provided message when present.
func (h *ThreadHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, client.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "session expired"})
	default:
		var remote *client.RemoteError
		if errors.As(err, &remote) && remote.Message != "" {
			h.log.Warn("comment API failure",
				zap.String("request_id", RequestID(c)),
				zap.Int("upstream_status", remote.StatusCode))
			c.JSON(http.StatusBadGateway, model.ErrorResponse{Error: remote.Message})
			return
		}
		h.log.Warn("comment action failed",
			zap.String("request_id", RequestID(c)), zap.Error(err))
		c.JSON(http.StatusBadGateway, model.ErrorResponse{Error: "comment service unavailable"})
	}
}
