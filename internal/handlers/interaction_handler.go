package handlers

import (
	"net/http"

	"medcase_backend/internal/middleware"
	"medcase_backend/internal/models"
	"medcase_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	*BaseHandler
	interactionService services.InteractionService
	commentService     services.CommentService
}

func NewInteractionHandler(
	base *BaseHandler,
	interactionService services.InteractionService,
	commentService services.CommentService,
) *InteractionHandler {
	return &InteractionHandler{
		BaseHandler:        base,
		interactionService: interactionService,
		commentService:     commentService,
	}
}

func (h *InteractionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cases := rg.Group("/cases")
	{
		cases.POST("/:id/like", h.ToggleLike)
		cases.POST("/:id/save", h.ToggleSave)
	}

	rg.GET("/saved-cases", h.GetSavedCases)
	rg.DELETE("/comments/:id", h.DeleteComment)
}

func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.interactionService.ToggleLike(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InteractionHandler) ToggleSave(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.interactionService.ToggleSave(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InteractionHandler) GetSavedCases(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit, offset := ParsePagination(c)
	resp, err := h.interactionService.GetSavedCases(userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	isAdmin := middleware.GetUserRole(c) == string(models.UserRoleAdmin)
	if err := h.commentService.DeleteComment(userID, c.Param("id"), isAdmin); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
