package booking

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"inkbook/internal/domain"
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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/artists/:id/slots", h.GetSlots)
	}
	if protected != nil {
		protected.POST("/bookings", h.CreateBooking)
		protected.GET("/bookings", h.ListMine)
		protected.GET("/bookings/:id", h.GetBooking)
		protected.PATCH("/bookings/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, _ := session.FromContext(c.Request.Context())
	b, err := h.service.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	actor, _ := session.FromContext(c.Request.Context())
	items, err := h.service.ListMine(c.Request.Context(), actor, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	actor, _ := session.FromContext(c.Request.Context())
	b, err := h.service.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor, _ := session.FromContext(c.Request.Context())
	b, err := h.service.UpdateStatus(c.Request.Context(), actor, id, domain.BookingStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetSlots(c *gin.Context) {
	artistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || artistID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid artist ID")
		return
	}

	slots, err := h.service.Slots(c.Request.Context(), artistID, c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, slots)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case errors.Is(err, ErrPastDate):
		response.Error(c, http.StatusBadRequest, "PAST_DATE", "Booking date is in the past")
	case errors.Is(err, ErrSlotUnavailable):
		response.Error(c, http.StatusBadRequest, "SLOT_UNAVAILABLE", "Selected time is not offered by the artist")
	case errors.Is(err, ErrArtistNotFound):
		response.Error(c, http.StatusNotFound, "ARTIST_NOT_FOUND", "Artist not found")
	case errors.Is(err, ErrArtistNotApproved):
		response.Error(c, http.StatusConflict, "ARTIST_NOT_APPROVED", "Artist is not accepting bookings")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Status change not allowed")
	default:
		log.Printf("booking_error path=%s err=%v", c.Request.URL.Path, err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
