package photo

import (
	"io"
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
	photos := rg.Group("/photos")
	{
		photos.POST("", h.Attach)
		photos.DELETE("/:id", h.Detach)
	}
}

// Attach accepts a multipart form with one or more files plus the
// owning venue_id or review_id. Multiple files are uploaded in
// parallel and fail as a unit.
func (h *Handler) Attach(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid multipart form")
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "At least one photo is required")
		return
	}

	venueID := optionalField(form.Value["venue_id"])
	reviewID := optionalField(form.Value["review_id"])

	inputs := make([]AttachInput, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot read uploaded file")
			return
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot read uploaded file")
			return
		}
		inputs = append(inputs, AttachInput{
			Content:  content,
			Filename: fh.Filename,
			VenueID:  venueID,
			ReviewID: reviewID,
		})
	}

	photos, err := h.service.AttachBatch(c.Request.Context(), c.GetString("user_id"), inputs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, photos)
}

// Detach is restricted to the uploader or an admin.
func (h *Handler) Detach(c *gin.Context) {
	id := c.Param("id")

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if p.UploaderID != c.GetString("user_id") && !c.GetBool("is_admin") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the uploader or an admin can remove this photo")
		return
	}

	if _, err := h.service.Detach(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id})
}

func optionalField(values []string) *string {
	if len(values) == 0 || values[0] == "" {
		return nil
	}
	v := values[0]
	return &v
}
