package auth

import (
	"errors"
	"log"
	"net/http"

	"inkbook/internal/pkg/imageenc"
	"inkbook/internal/pkg/response"
	"inkbook/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler manages HTTP interactions for authentication and the caller's account.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PATCH("/me", h.UpdateProfile)
		userGroup.POST("/me/avatar", h.UploadAvatar)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "REGISTRATION_FAILED")
		return
	}

	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "LOGIN_FAILED")
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := session.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	a, err := h.service.Me(c.Request.Context(), actor)
	if err != nil {
		h.writeError(c, err, "PROFILE_FAILED")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": a})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	actor, ok := session.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.UpdateProfile(c.Request.Context(), actor, req)
	if err != nil {
		h.writeError(c, err, "UPDATE_FAILED")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": a})
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	actor, ok := session.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}

	img, err := imageenc.FromMultipart(fh)
	if err != nil {
		writeImageError(c, err)
		return
	}

	a, err := h.service.UpdateAvatar(c.Request.Context(), actor, img)
	if err != nil {
		h.writeError(c, err, "UPDATE_FAILED")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": a})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var fieldErr *FieldError
	switch {
	case errors.As(err, &fieldErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", fieldErr.Fields)
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		log.Printf("auth_error code=%s path=%s err=%v", fallback, c.Request.URL.Path, err)
		response.Error(c, http.StatusInternalServerError, fallback, "Internal server error")
	}
}

func writeImageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, imageenc.ErrFileTooLarge):
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, imageenc.ErrInvalidMimeType):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", err.Error())
	default:
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
	}
}
