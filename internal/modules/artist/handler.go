package artist

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"inkbook/internal/domain"
	"inkbook/internal/pkg/imageenc"
	"inkbook/internal/pkg/response"
	"inkbook/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, artists *gin.RouterGroup) {
	if public != nil {
		public.GET("/artists", h.List)
		public.GET("/artists/:id", h.Get)
	}
	if artists != nil {
		artists.PATCH("/artist/profile", h.UpdateProfile)
		artists.POST("/artist/portfolio", h.AddPortfolioImage)
		artists.DELETE("/artist/portfolio/:index", h.RemovePortfolioImage)
	}
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid artist ID")
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"artist": a})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, _ := session.FromContext(c.Request.Context())
	a, err := h.service.UpdateProfile(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"artist": a})
}

func (h *Handler) AddPortfolioImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}

	img, err := imageenc.FromMultipart(fh)
	if err != nil {
		switch {
		case errors.Is(err, imageenc.ErrFileTooLarge):
			response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", err.Error())
		case errors.Is(err, imageenc.ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", err.Error())
		default:
			response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
		}
		return
	}

	actor, _ := session.FromContext(c.Request.Context())
	a, err := h.service.AddPortfolioImage(c.Request.Context(), actor, img)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"artist": a})
}

func (h *Handler) RemovePortfolioImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INDEX", "Invalid portfolio index")
		return
	}

	actor, _ := session.FromContext(c.Request.Context())
	a, err := h.service.RemovePortfolioImage(c.Request.Context(), actor, index)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"artist": a})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, domain.ErrInvalidAvailability):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrPortfolioFull):
		response.Error(c, http.StatusConflict, "PORTFOLIO_FULL", "Portfolio already holds the maximum number of images")
	case errors.Is(err, ErrPortfolioIndex):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Portfolio image not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Artist not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only artists can edit artist profiles")
	default:
		log.Printf("artist_error path=%s err=%v", c.Request.URL.Path, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
