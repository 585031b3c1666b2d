package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pasto-sano/internal/auth"
	"github.com/MikeMC777/pasto-sano/internal/delivery"
	"github.com/MikeMC777/pasto-sano/internal/discount"
	"github.com/MikeMC777/pasto-sano/internal/geo"
	"github.com/MikeMC777/pasto-sano/internal/httpx"
	"github.com/MikeMC777/pasto-sano/internal/invoice"
	"github.com/MikeMC777/pasto-sano/internal/order"
	"github.com/MikeMC777/pasto-sano/internal/payment"
	"github.com/MikeMC777/pasto-sano/internal/payout"
	"github.com/MikeMC777/pasto-sano/internal/rider"
)

var statusByErr = []struct {
	err    error
	status int
}{
	{order.ErrNotFound, http.StatusNotFound},
	{rider.ErrNotFound, http.StatusNotFound},

	{order.ErrInvalidOrder, http.StatusBadRequest},
	{order.ErrAmountMismatch, http.StatusBadRequest},
	{order.ErrNotAwaitingPayment, http.StatusBadRequest},
	{delivery.ErrOutOfRange, http.StatusBadRequest},
	{delivery.ErrInvalidDistance, http.StatusBadRequest},
	{discount.ErrUnknownCode, http.StatusBadRequest},
	{discount.ErrInvalidIdentity, http.StatusBadRequest},
	{payout.ErrInvalidPeriod, http.StatusBadRequest},
	{payment.ErrBadSignature, http.StatusBadRequest},
	{geo.ErrEmptyAddress, http.StatusBadRequest},
	{auth.ErrWeakPassword, http.StatusBadRequest},

	{auth.ErrInvalidCredentials, http.StatusUnauthorized},
	{rider.ErrInvalidCredentials, http.StatusUnauthorized},

	{rider.ErrInactive, http.StatusForbidden},
	{delivery.ErrNotYourOrder, http.StatusForbidden},

	{delivery.ErrConflict, http.StatusConflict},
	{delivery.ErrNoDelivery, http.StatusConflict},
	{delivery.ErrRiderInactive, http.StatusConflict},
	{discount.ErrAlreadyUsed, http.StatusConflict},
	{rider.ErrEmailTaken, http.StatusConflict},
	{order.ErrAlreadyConfirmed, http.StatusConflict},
	{order.ErrPaymentMismatch, http.StatusConflict},
	{order.ErrPaymentRefUsed, http.StatusConflict},
	{payout.ErrAlreadyPaid, http.StatusConflict},
	{payout.ErrNothingToPay, http.StatusConflict},

	{order.ErrProvider, http.StatusBadGateway},

	{order.ErrPaymentUnavailable, http.StatusServiceUnavailable},
	{auth.ErrAdminDisabled, http.StatusServiceUnavailable},
	{invoice.ErrNotConfigured, http.StatusServiceUnavailable},
}

func statusOf(err error) int {
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// fail writes err with the status mapped from its sentinel.
func fail(c *gin.Context, err error) {
	httpx.Fail(c, statusOf(err), err)
}
