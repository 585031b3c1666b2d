package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pasto-sano/internal/auth"
	"github.com/MikeMC777/pasto-sano/internal/delivery"
	"github.com/MikeMC777/pasto-sano/internal/httpx"
	"github.com/MikeMC777/pasto-sano/internal/order"
	"github.com/MikeMC777/pasto-sano/internal/payout"
	"github.com/MikeMC777/pasto-sano/internal/rider"
)

var errRiderMismatch = errors.New("riderId does not match the token")

type riderIDRequest struct {
	RiderID string `json:"riderId" binding:"required"`
}

// adminLoginHandler godoc
// @Summary  Back-office login
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      rider.LoginRequest  true  "credentials"
// @Success  200   {object}  map[string]any
// @Failure  401   {object}  httpx.ErrorResponse
// @Router   /api/admin-login [post]
func adminLoginHandler(admin *auth.Admin) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in rider.LoginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		tok, err := admin.Login(in.Email, in.Password)
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"token": tok})
	}
}

// riderLoginHandler godoc
// @Summary  Rider login
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      rider.LoginRequest  true  "credentials"
// @Success  200   {object}  map[string]any
// @Failure  401   {object}  httpx.ErrorResponse
// @Failure  403   {object}  httpx.ErrorResponse
// @Router   /api/rider-login [post]
func riderLoginHandler(svc *rider.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in rider.LoginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		tok, r, err := svc.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"token": tok, "rider": r})
	}
}

// createRiderHandler godoc
// @Summary   Create a rider account
// @Tags      admin
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      rider.CreateRiderRequest  true  "rider"
// @Success   201   {object}  map[string]any
// @Failure   409   {object}  httpx.ErrorResponse
// @Router    /api/admin-create-rider [post]
func createRiderHandler(svc *rider.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in rider.CreateRiderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		r, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusCreated, gin.H{"rider": r})
	}
}

func updateRiderHandler(svc *rider.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in rider.UpdateRiderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		r, err := svc.Update(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"rider": r})
	}
}

func toggleRiderHandler(svc *rider.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in riderIDRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		active, err := svc.ToggleStatus(c.Request.Context(), in.RiderID)
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"riderId": in.RiderID, "active": active})
	}
}

func listRidersHandler(svc *rider.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"riders": out})
	}
}

type riderAction func(svc *order.Service, c *gin.Context, orderID, riderID string) (*order.Order, error)

// riderActionHandler binds an OrderIDRequest and runs act for the rider
// in the token. A riderId in the body must name the same rider.
func riderActionHandler(svc *order.Service, act riderAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.OrderIDRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		me := auth.Subject(c)
		if in.RiderID != "" && in.RiderID != me {
			httpx.Fail(c, http.StatusForbidden, errRiderMismatch)
			return
		}
		o, err := act(svc, c, in.OrderID, me)
		if errors.Is(err, delivery.ErrRiderInactive) {
			// the caller is the inactive rider
			httpx.Fail(c, http.StatusForbidden, err)
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"order": o})
	}
}

// takeOrderHandler godoc
// @Summary   Claim a pending order and leave with it
// @Tags      rider
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      order.OrderIDRequest  true  "order"
// @Success   200   {object}  map[string]any
// @Failure   409   {object}  httpx.ErrorResponse
// @Router    /api/rider-take-order [post]
func takeOrderHandler(svc *order.Service) gin.HandlerFunc {
	return riderActionHandler(svc, func(svc *order.Service, c *gin.Context, orderID, riderID string) (*order.Order, error) {
		return svc.Take(c.Request.Context(), orderID, riderID)
	})
}

func startDeliveryHandler(svc *order.Service) gin.HandlerFunc {
	return riderActionHandler(svc, func(svc *order.Service, c *gin.Context, orderID, riderID string) (*order.Order, error) {
		return svc.Start(c.Request.Context(), orderID, riderID)
	})
}

// completeDeliveryHandler godoc
// @Summary   Mark an order as delivered
// @Tags      rider
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      order.OrderIDRequest  true  "order"
// @Success   200   {object}  map[string]any
// @Failure   403   {object}  httpx.ErrorResponse
// @Failure   409   {object}  httpx.ErrorResponse
// @Router    /api/rider-complete-delivery [post]
func completeDeliveryHandler(svc *order.Service) gin.HandlerFunc {
	return riderActionHandler(svc, func(svc *order.Service, c *gin.Context, orderID, riderID string) (*order.Order, error) {
		return svc.Complete(c.Request.Context(), orderID, riderID)
	})
}

// riderOrdersHandler godoc
// @Summary   Orders of the rider and the open pool
// @Tags      rider
// @Produce   json
// @Security  BearerAuth
// @Param     riderId  query     string  false  "must match the token"
// @Success   200      {object}  map[string]any
// @Router    /api/rider-orders [get]
func riderOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		me := auth.Subject(c)
		if q := c.Query("riderId"); q != "" && q != me {
			httpx.Fail(c, http.StatusForbidden, errRiderMismatch)
			return
		}
		mine, available, err := svc.RiderBoard(c.Request.Context(), me)
		if err != nil {
			fail(c, err)
			return
		}
		if mine == nil {
			mine = []order.Order{}
		}
		if available == nil {
			available = []order.Order{}
		}
		httpx.OK(c, http.StatusOK, gin.H{"orders": mine, "available": available})
	}
}

// riderPaymentsHandler godoc
// @Summary   Rider earnings for a period
// @Tags      admin
// @Produce   json
// @Security  BearerAuth
// @Param     period  query     string  false  "week|month|custom"
// @Param     start   query     string  false  "YYYY-MM-DD, custom only"
// @Param     end     query     string  false  "YYYY-MM-DD inclusive, custom only"
// @Success   200     {object}  payout.Report
// @Failure   400     {object}  httpx.ErrorResponse
// @Router    /api/admin-rider-payments [get]
func riderPaymentsHandler(svc *payout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Period(c.Query("period"), c.Query("start"), c.Query("end"))
		if err != nil {
			fail(c, err)
			return
		}
		rep, err := svc.Report(c.Request.Context(), p)
		if err != nil {
			fail(c, err)
			return
		}
		if rep.Riders == nil {
			rep.Riders = []payout.Summary{}
		}
		httpx.OK(c, http.StatusOK, gin.H{
			"period":          rep.Period,
			"riders":          rep.Riders,
			"totalDeliveries": rep.Deliveries,
			"totalEarnings":   rep.Earnings,
		})
	}
}

// markPaidRequest selects the rider and period being paid.
// swagger:model MarkPaidRequest
type markPaidRequest struct {
	RiderID string `json:"riderId" binding:"required"`
	Period  string `json:"period"  binding:"omitempty,oneof=week month custom"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	Note    string `json:"note,omitempty" binding:"max=500"`
}

func markPaidHandler(svc *payout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in markPaidRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.BadRequest(c, err)
			return
		}
		p, err := svc.Period(in.Period, in.Start, in.End)
		if err != nil {
			fail(c, err)
			return
		}
		pay, err := svc.MarkPaid(c.Request.Context(), in.RiderID, p, in.Note)
		if err != nil {
			fail(c, err)
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"payment": pay})
	}
}
