package favorite

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tastebook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("/:venueId", h.Add)
		favorites.DELETE("/:venueId", h.Remove)
		favorites.GET("/:venueId/check", h.Check)
	}
}

func (h *Handler) List(c *gin.Context) {
	venues, err := h.service.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, venues)
}

func (h *Handler) Add(c *gin.Context) {
	err := h.service.Add(c.Request.Context(), c.GetString("user_id"), c.Param("venueId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorited": true})
}

func (h *Handler) Remove(c *gin.Context) {
	err := h.service.Remove(c.Request.Context(), c.GetString("user_id"), c.Param("venueId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorited": false})
}

func (h *Handler) Check(c *gin.Context) {
	favorited := h.service.IsFavorite(c.Request.Context(), c.GetString("user_id"), c.Param("venueId"))
	response.Success(c, http.StatusOK, gin.H{"favorited": favorited})
}
