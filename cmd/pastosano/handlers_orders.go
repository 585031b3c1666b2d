package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pasto-sano/internal/httpx"
	"github.com/MikeMC777/pasto-sano/internal/order"
	"github.com/MikeMC777/pasto-sano/internal/payment"
)

const maxWebhookBody = 64 << 10

// cashOrderHandler godoc
// @Summary      Place a cash order
// @Description  Stores a confirmed order paid on delivery or at pickup, then auto-assigns a rider.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      order.PlaceOrderRequest  true  "cart"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  httpx.ErrorResponse
// @Failure      409   {object}  httpx.ErrorResponse
// @Router       /api/cash-order [post]
func cashOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.PlaceOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		o, err := svc.CreateCash(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusCreated, gin.H{"orderId": o.ID, "order": o})
	}
}

// checkoutHandler godoc
// @Summary      Start an online payment
// @Description  card opens a hosted checkout session; paypal returns the total for the client SDK.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      order.PlaceOrderRequest  true  "cart"
// @Success      200   {object}  order.CheckoutResult
// @Failure      400   {object}  httpx.ErrorResponse
// @Failure      502   {object}  httpx.ErrorResponse
// @Router       /api/checkout [post]
func checkoutHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.PlaceOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		_, res, err := svc.Checkout(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}
		fields := gin.H{"orderId": res.OrderID, "total": res.Total}
		if res.SessionID != "" {
			fields["sessionId"] = res.SessionID
			fields["url"] = res.URL
		}
		httpx.OK(c, http.StatusOK, fields)
	}
}

type webhookParser interface {
	ParseWebhook(payload []byte, signature string) (payment.CompletedSession, bool, error)
}

// stripeWebhookHandler godoc
// @Summary  Stripe webhook
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    Stripe-Signature  header  string  true  "signature"
// @Success  200  {object}  map[string]any
// @Failure  400  {object}  httpx.ErrorResponse
// @Router   /api/stripe-webhook [post]
func stripeWebhookHandler(svc *order.Service, wh webhookParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if wh == nil {
			fail(c, order.ErrPaymentUnavailable)
			return
		}
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, err)
			return
		}
		sess, ok, err := wh.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, err)
			return
		}
		if !ok {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		_, err = svc.ConfirmCard(c.Request.Context(), sess.OrderID, sess.SessionID)
		if errors.Is(err, order.ErrAlreadyConfirmed) {
			log.Printf("[stripe] duplicate event=%s order=%s", sess.EventID, sess.OrderID)
			c.JSON(http.StatusOK, gin.H{"received": true, "duplicate": true})
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

// paypalWebhookHandler godoc
// @Summary  Confirm a captured PayPal order
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    body  body      order.PayPalConfirmRequest  true  "ids"
// @Success  200   {object}  map[string]any
// @Failure  400   {object}  httpx.ErrorResponse
// @Failure  502   {object}  httpx.ErrorResponse
// @Router   /api/paypal-webhook [post]
func paypalWebhookHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.PayPalConfirmRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		o, err := svc.ConfirmPayPal(c.Request.Context(), in.OrderID, in.PayPalOrderID)
		if errors.Is(err, order.ErrAlreadyConfirmed) {
			httpx.OK(c, http.StatusOK, gin.H{"orderId": in.OrderID, "duplicate": true})
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"orderId": o.ID, "order": o})
	}
}

// listOrdersHandler godoc
// @Summary   List orders
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     status          query  string  false  "awaiting_payment|confirmed"
// @Param     deliveryStatus  query  string  false  "pending|assigned|in_delivery|delivered"
// @Param     limit           query  int     false  "page size, 1-100, default 20"
// @Param     offset          query  int     false  "offset"
// @Success   200  {object}  map[string]any
// @Router    /api/admin-orders [get]
func listOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		q := order.ListQuery{
			Status:         c.Query("status"),
			DeliveryStatus: c.Query("deliveryStatus"),
			Limit:          limit,
			Offset:         offset,
		}.Normalize()
		out, err := svc.List(c.Request.Context(), q)
		if err != nil {
			fail(c, err)
			return
		}
		if out == nil {
			out = []order.Order{}
		}
		httpx.OK(c, http.StatusOK, gin.H{"orders": out, "limit": q.Limit, "offset": q.Offset})
	}
}

func getOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"order": o})
	}
}

// assignRiderHandler godoc
// @Summary   Assign or reassign a rider
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      order.AssignRequest  true  "assignment"
// @Success   200   {object}  map[string]any
// @Failure   404   {object}  httpx.ErrorResponse
// @Failure   409   {object}  httpx.ErrorResponse
// @Router    /api/admin-assign-rider [post]
func assignRiderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.AssignRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		o, err := svc.AdminAssign(c.Request.Context(), in.OrderID, in.RiderID)
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"order": o})
	}
}
