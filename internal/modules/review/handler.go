package review

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

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/venues/:id/reviews", h.ListByVenue)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.Create)
	rg.PUT("/reviews/:id", h.Update)
	rg.DELETE("/reviews/:id", h.Delete)
}

func (h *Handler) ListByVenue(c *gin.Context) {
	reviews, err := h.service.ListByVenue(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviews)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review fields", errs)
		return
	}

	rv, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

// Update and Delete are restricted to the review author or an admin;
// the check happens here, at the same boundary that verified the
// session.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if !h.requireAuthorOrAdmin(c, id) {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !h.requireAuthorOrAdmin(c, id) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) requireAuthorOrAdmin(c *gin.Context, reviewID string) bool {
	rv, err := h.service.reviews.GetByID(c.Request.Context(), reviewID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
		return false
	}
	if rv.AuthorID != c.GetString("user_id") && !c.GetBool("is_admin") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the author or an admin can modify this review")
		return false
	}
	return true
}
