package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tastebook/internal/pkg/response"
	"tastebook/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects the group to already carry auth + admin-only
// middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	adminGroup := rg.Group("/admin")
	{
		adminGroup.GET("/users", h.ListUsers)
		adminGroup.POST("/users", h.CreateUser)
		adminGroup.PUT("/users/:id/admin", h.SetAdmin)
		adminGroup.GET("/venues", h.ListVenues)
		adminGroup.DELETE("/venues/:id", h.DeleteVenue)
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	profiles, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profiles)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user fields", errs)
		return
	}

	profile, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, profile)
}

func (h *Handler) SetAdmin(c *gin.Context) {
	var req SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetAdmin(c.Request.Context(), c.Param("id"), req.IsAdmin); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id"), "is_admin": req.IsAdmin})
}

func (h *Handler) ListVenues(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.ListVenues(c.Request.Context()))
}

func (h *Handler) DeleteVenue(c *gin.Context) {
	if err := h.service.DeleteVenue(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
