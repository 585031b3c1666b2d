package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pasto-sano/internal/auth"
	"github.com/MikeMC777/pasto-sano/internal/delivery"
	"github.com/MikeMC777/pasto-sano/internal/discount"
	"github.com/MikeMC777/pasto-sano/internal/geo"
	"github.com/MikeMC777/pasto-sano/internal/httpx"
	"github.com/MikeMC777/pasto-sano/internal/invoice"
	"github.com/MikeMC777/pasto-sano/internal/menu"
	"github.com/MikeMC777/pasto-sano/internal/order"
)

var errDistanceUnavailable = errors.New("distance lookup is not configured")

type distancer interface {
	DistanceKm(ctx context.Context, address string) (float64, error)
}

type invoicer interface {
	Create(ctx context.Context, o *order.Order, in invoice.Request) (string, error)
}

type liveFeed interface {
	Serve(w http.ResponseWriter, r *http.Request, riderID string)
}

type healthChecker interface {
	Healthy() bool
}

type addressRequest struct {
	Address string `json:"address" binding:"required,max=300"`
}

// calculateDistanceHandler godoc
// @Summary  Distance and delivery price for an address
// @Tags     delivery
// @Accept   json
// @Produce  json
// @Param    body  body      addressRequest  true  "address"
// @Success  200   {object}  map[string]any
// @Failure  400   {object}  httpx.ErrorResponse
// @Failure  502   {object}  httpx.ErrorResponse
// @Router   /api/calculate-distance [post]
func calculateDistanceHandler(d distancer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d == nil {
			httpx.Fail(c, http.StatusServiceUnavailable, errDistanceUnavailable)
			return
		}
		var in addressRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		km, err := d.DistanceKm(c.Request.Context(), in.Address)
		switch {
		case errors.Is(err, geo.ErrEmptyAddress), errors.Is(err, geo.ErrAddressNotFound):
			httpx.Fail(c, http.StatusBadRequest, err)
			return
		case err != nil:
			httpx.Fail(c, http.StatusBadGateway, fmt.Errorf("distance lookup: %w", err))
			return
		}
		z, err := delivery.ZoneFor(km)
		if err != nil {
			httpx.OK(c, http.StatusOK, gin.H{
				"distanceKm": km,
				"available":  false,
				"message":    err.Error(),
			})
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{
			"distanceKm":    km,
			"available":     true,
			"zone":          z.Name,
			"cost":          z.Cost,
			"riderShare":    z.RiderShare,
			"platformShare": z.PlatformShare,
		})
	}
}

func deliveryZonesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		httpx.OK(c, http.StatusOK, gin.H{"zones": delivery.Zones(), "maxKm": delivery.MaxDistanceKm})
	}
}

type discountRequest struct {
	Code    string `json:"code"  binding:"required,max=50"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,phone"`
	OrderID string `json:"orderId,omitempty"`
}

// checkDiscountHandler godoc
// @Summary  Check whether a customer may use a discount code
// @Tags     discount
// @Accept   json
// @Produce  json
// @Param    body  body      discountRequest  true  "code and customer"
// @Success  200   {object}  map[string]any
// @Router   /api/check-discount [post]
func checkDiscountHandler(svc *discount.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in discountRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		code, err := svc.Check(c.Request.Context(), in.Code, in.Email, in.Phone)
		if errors.Is(err, discount.ErrUnknownCode) || errors.Is(err, discount.ErrAlreadyUsed) {
			httpx.OK(c, http.StatusOK, gin.H{"valid": false, "percent": 0, "reason": err.Error()})
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"valid": true, "code": code.Code, "percent": code.Percent})
	}
}

func useDiscountHandler(svc *discount.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in discountRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		code, err := svc.Use(c.Request.Context(), in.Code, in.Email, in.Phone, in.OrderID)
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"code": code.Code, "percent": code.Percent})
	}
}

// menuHandler godoc
// @Summary  Menu of the day
// @Tags     menu
// @Produce  json
// @Param    date  query     string  false  "YYYY-MM-DD, defaults to today"
// @Success  200   {object}  menu.Result
// @Failure  400   {object}  httpx.ErrorResponse
// @Router   /api/menu [get]
func menuHandler(cal *menu.Calendar, loc *time.Location, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := now().In(loc)
		if q := c.Query("date"); q != "" {
			d, err := menu.ParseDate(q, loc)
			if err != nil {
				httpx.Fail(c, http.StatusBadRequest, err)
				return
			}
			date = d
		}
		r := cal.For(date)
		httpx.OK(c, http.StatusOK, gin.H{
			"date":      r.Date,
			"week":      r.Week,
			"day":       r.Day,
			"isWeekend": r.IsWeekend,
			"primi":     r.Primi,
			"secondi":   r.Secondi,
			"contorni":  r.Contorni,
		})
	}
}

// createInvoiceHandler godoc
// @Summary   Issue an invoice for an order
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      invoice.Request  true  "billing data"
// @Success   200   {object}  map[string]any
// @Failure   404   {object}  httpx.ErrorResponse
// @Failure   502   {object}  httpx.ErrorResponse
// @Router    /api/create-invoice [post]
func createInvoiceHandler(orders *order.Service, inv invoicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in invoice.Request
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		o, err := orders.Get(c.Request.Context(), in.OrderID)
		if err != nil {
			fail(c, err)
			return
		}
		id, err := inv.Create(c.Request.Context(), o, in)
		if errors.Is(err, invoice.ErrNotConfigured) {
			fail(c, err)
			return
		}
		if err != nil {
			httpx.Fail(c, http.StatusBadGateway, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"orderId": o.ID, "invoiceId": id})
	}
}

// riderFeedHandler upgrades to the rider websocket feed. Require has already
// checked the token, which browsers pass as ?token=.
func riderFeedHandler(feed liveFeed) gin.HandlerFunc {
	return func(c *gin.Context) {
		feed.Serve(c.Writer, c.Request, auth.Subject(c))
	}
}

func healthzHandler(h healthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h != nil && !h.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
