package handlers

import (
	"net/http"

	"medcase_backend/internal/services"
	"medcase_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	caseService services.CaseService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, caseService services.CaseService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		caseService: caseService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/me", h.GetMyProfile)
		users.PATCH("/me", h.UpdateMyProfile)
		users.GET("/:id", h.GetPublicProfile)
		users.GET("/:id/cases", h.GetUserCases)
	}
}

func (h *UserHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.userService.GetPublicProfile(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetUserCases lists another user's published cases.
func (h *UserHandler) GetUserCases(c *gin.Context) {
	limit, offset := ParsePagination(c)

	cases, err := h.caseService.GetAuthorCases(c.Param("id"), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cases)
}
