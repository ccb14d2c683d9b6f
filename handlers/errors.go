package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderstay/utils"
)

// coded is implemented by the domain error types of the booking and
// payment services.
type coded interface {
	ErrorCode() string
	Error() string
}

var statusByCode = map[string]int{
	"InvalidDateError":          http.StatusBadRequest,
	"AdvanceLimitExceeded":      http.StatusBadRequest,
	"AdvanceLimitTooSoon":       http.StatusBadRequest,
	"InvalidRefundAmount":       http.StatusBadRequest,
	"Forbidden":                 http.StatusForbidden,
	"HotelNotFound":             http.StatusNotFound,
	"BookingNotFound":           http.StatusNotFound,
	"PaymentNotFound":           http.StatusNotFound,
	"HotelUnavailable":          http.StatusConflict,
	"InvalidBookingState":       http.StatusConflict,
	"CancellationWindowClosed":  http.StatusConflict,
	"PaymentAlreadyExists":      http.StatusConflict,
	"PaymentAlreadyProcessed":   http.StatusConflict,
	"RoomsUnavailable":          http.StatusConflict,
	"PaymentVerificationFailed": http.StatusUnprocessableEntity,
	"PaymentGatewayError":       http.StatusBadGateway,
}

// respondError translates a domain error into a structured HTTP response.
func respondError(c *gin.Context, err error) {
	var domainErr coded
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.ErrorCode()]
		if !ok {
			status = http.StatusInternalServerError
		}
		utils.JSONError(c, status, domainErr.ErrorCode(), domainErr.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "InternalError", err.Error())
}
