package venue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tastebook/internal/pkg/apperr"
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
	rg.GET("/venues", h.List)
	rg.GET("/venues/:id", h.Get)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/venues", h.Create)
	rg.PUT("/venues/:id", h.Update)
	rg.DELETE("/venues/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.List(c.Request.Context()))
}

func (h *Handler) Get(c *gin.Context) {
	v, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid venue fields", errs)
		return
	}

	v, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v)
}

// Update is restricted to the venue owner or an admin. The check lives
// here at the HTTP boundary; the service trusts its caller.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwnerOrAdmin(c, id) {
		return
	}

	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	v, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			// Already gone: the end state matches intent.
			response.Success(c, http.StatusOK, gin.H{"id": id})
			return
		}
		response.FromError(c, err)
		return
	}
	if v.OwnerID != c.GetString("user_id") && !c.GetBool("is_admin") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the owner or an admin can delete this venue")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func (h *Handler) requireOwnerOrAdmin(c *gin.Context, venueID string) bool {
	v, err := h.service.Get(c.Request.Context(), venueID)
	if err != nil {
		response.FromError(c, err)
		return false
	}
	if v.OwnerID != c.GetString("user_id") && !c.GetBool("is_admin") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the owner or an admin can modify this venue")
		return false
	}
	return true
}
