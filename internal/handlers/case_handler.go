package handlers

import (
	"net/http"

	"medcase_backend/internal/middleware"
	"medcase_backend/internal/models"
	"medcase_backend/internal/services"
	"medcase_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CaseHandler struct {
	*BaseHandler
	caseService    services.CaseService
	commentService services.CommentService
}

func NewCaseHandler(base *BaseHandler, caseService services.CaseService, commentService services.CommentService) *CaseHandler {
	return &CaseHandler{
		BaseHandler:    base,
		caseService:    caseService,
		commentService: commentService,
	}
}

func (h *CaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cases := rg.Group("/cases")
	{
		cases.GET("", h.GetFeed)
		cases.POST("", h.CreateCase)
		cases.GET("/mine", h.GetMyCases)
		cases.GET("/:id", h.GetCase)
		cases.PATCH("/:id", h.UpdateCase)
		cases.POST("/:id/publish", h.PublishCase)
		cases.DELETE("/:id", h.RemoveCase)

		cases.GET("/:id/comments", h.ListComments)
		cases.POST("/:id/comments", h.AddComment)
	}
}

func (h *CaseHandler) GetFeed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var filter dto.CaseFeedFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	feed, err := h.caseService.GetFeed(userID, &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

func (h *CaseHandler) CreateCase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCaseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	created, err := h.caseService.CreateCase(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *CaseHandler) GetMyCases(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit, offset := ParsePagination(c)
	cases, err := h.caseService.GetMyCases(userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cases)
}

func (h *CaseHandler) GetCase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	item, err := h.caseService.GetCase(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *CaseHandler) UpdateCase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCaseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	updated, err := h.caseService.UpdateCase(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *CaseHandler) PublishCase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	published, err := h.caseService.PublishCase(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, published)
}

func (h *CaseHandler) RemoveCase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	isAdmin := middleware.GetUserRole(c) == string(models.UserRoleAdmin)
	if err := h.caseService.RemoveCase(userID, c.Param("id"), isAdmin); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "case removed"})
}

func (h *CaseHandler) ListComments(c *gin.Context) {
	limit, offset := ParsePagination(c)

	comments, err := h.commentService.ListComments(c.Param("id"), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CaseHandler) AddComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	comment, err := h.commentService.AddComment(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
