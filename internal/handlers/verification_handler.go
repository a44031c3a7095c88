package handlers

import (
	"net/http"

	"medcase_backend/internal/models"
	"medcase_backend/internal/services"
	"medcase_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
	}
}

// RegisterRoutes mounts the doctor-facing endpoints; the admin review
// endpoints live under RegisterAdminRoutes.
func (h *VerificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	verification := rg.Group("/verification")
	{
		verification.POST("/requests", h.Submit)
		verification.GET("/status", h.GetMyStatus)
	}
}

func (h *VerificationHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/verification-requests")
	{
		requests.GET("", h.ListRequests)
		requests.GET("/:id", h.GetRequest)
		requests.POST("/:id/approve", h.Approve)
		requests.POST("/:id/reject", h.Reject)
	}
}

func (h *VerificationHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.verificationService.Submit(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *VerificationHandler) GetMyStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.GetMyStatus(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) ListRequests(c *gin.Context) {
	status := models.VerificationStatus(c.DefaultQuery("status", string(models.VerificationStatusPending)))

	limit, offset := ParsePagination(c)
	resp, err := h.verificationService.ListRequests(status, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) GetRequest(c *gin.Context) {
	resp, err := h.verificationService.GetRequest(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) Approve(c *gin.Context) {
	reviewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.Approve(reviewerID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) Reject(c *gin.Context) {
	reviewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.verificationService.Reject(reviewerID, c.Param("id"), req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
