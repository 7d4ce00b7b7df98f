package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"inkbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// artist moderation
	admin.GET("/artists/pending", h.GetPendingArtists)
	admin.POST("/artists/:id/approval", h.SetApproval)

	// accounts
	admin.DELETE("/users/:id", h.DeleteAccount)

	// mirror maintenance
	admin.POST("/reconcile", h.Reconcile)

	admin.GET("/stats", h.GetStats)
}

func (h *Handler) GetPendingArtists(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := h.service.PendingArtists(c.Request.Context(), page, limit)
	if err != nil {
		log.Printf("admin_pending_failed err=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load pending artists")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"artists": items,
		"total":   total,
		"page":    page,
	})
}

func (h *Handler) SetApproval(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid artist ID")
		return
	}

	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Field approved is required")
		return
	}

	a, err := h.service.SetApproval(c.Request.Context(), c.GetInt64("user_id"), id, *req.Approved)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"artist": a})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) Reconcile(c *gin.Context) {
	report, err := h.service.Reconcile(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrNotArtist):
		response.Error(c, http.StatusBadRequest, "NOT_ARTIST", "Account is not an artist")
	case errors.Is(err, ErrSelfDeletion):
		response.Error(c, http.StatusBadRequest, "SELF_DELETION", "You cannot delete your own account")
	default:
		log.Printf("admin_error path=%s err=%v", c.Request.URL.Path, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
