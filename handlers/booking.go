package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderstay/middleware"
	"wanderstay/models"
	"wanderstay/services/booking"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	svc    booking.BookingService
	logger *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": resp})
}

// Get handles GET /api/bookings/:ref.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), middleware.UserID(c), middleware.Role(c), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// List handles GET /api/bookings, returning the caller's bookings.
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.svc.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListByHotel handles GET /api/hotels/:id/bookings (admin).
func (h *BookingHandler) ListByHotel(c *gin.Context) {
	bookings, err := h.svc.ListByHotel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Cancel handles PUT /api/bookings/:ref/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req models.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.svc.Cancel(c.Request.Context(), c.Param("ref"), middleware.UserID(c), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":      resp.Booking,
		"refundAmount": resp.RefundAmount,
		"refundStatus": resp.RefundStatus,
	})
}

// Update handles PATCH /api/bookings/:ref (admin).
func (h *BookingHandler) Update(c *gin.Context) {
	var patch models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.svc.Update(c.Request.Context(), c.Param("ref"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// Complete handles POST /api/bookings/:ref/complete (admin).
func (h *BookingHandler) Complete(c *gin.Context) {
	b, err := h.svc.MarkCompleted(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// NoShow handles POST /api/bookings/:ref/no-show (admin).
func (h *BookingHandler) NoShow(c *gin.Context) {
	b, err := h.svc.MarkNoShow(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}
