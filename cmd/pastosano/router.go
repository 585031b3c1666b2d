package main

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MikeMC777/pasto-sano/internal/auth"
	"github.com/MikeMC777/pasto-sano/internal/discount"
	"github.com/MikeMC777/pasto-sano/internal/httpx"
	"github.com/MikeMC777/pasto-sano/internal/menu"
	"github.com/MikeMC777/pasto-sano/internal/order"
	"github.com/MikeMC777/pasto-sano/internal/payout"
	"github.com/MikeMC777/pasto-sano/internal/rider"

	_ "github.com/MikeMC777/pasto-sano/docs"
)

// server holds what the handlers need. Optional integrations are nil when
// they are not configured.
type server struct {
	issuer    *auth.Issuer
	admin     *auth.Admin
	orders    *order.Service
	riders    *rider.Service
	discounts *discount.Service
	payouts   *payout.Service
	menu      *menu.Calendar
	loc       *time.Location
	now       func() time.Time

	webhooks webhookParser
	distance distancer
	invoices invoicer
	feed     liveFeed
	health   healthChecker
}

func newRouter(s *server) *gin.Engine {
	httpx.RegisterValidators()
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.UTC
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger("/healthz"), httpx.CORS())

	r.GET("/healthz", healthzHandler(s.health))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/menu", menuHandler(s.menu, s.loc, s.now))
		api.GET("/delivery-zones", deliveryZonesHandler())
		api.POST("/calculate-distance", calculateDistanceHandler(s.distance))
		api.POST("/check-discount", checkDiscountHandler(s.discounts))
		api.POST("/use-discount", useDiscountHandler(s.discounts))

		api.POST("/cash-order", cashOrderHandler(s.orders))
		api.POST("/checkout", checkoutHandler(s.orders))
		api.POST("/stripe-webhook", stripeWebhookHandler(s.orders, s.webhooks))
		api.POST("/paypal-webhook", paypalWebhookHandler(s.orders))

		api.POST("/admin-login", adminLoginHandler(s.admin))
		api.POST("/rider-login", riderLoginHandler(s.riders))
	}

	admin := api.Group("", auth.Require(s.issuer, auth.RoleAdmin))
	{
		admin.GET("/admin-orders", listOrdersHandler(s.orders))
		admin.GET("/orders/:id", getOrderHandler(s.orders))
		admin.POST("/admin-assign-rider", assignRiderHandler(s.orders))
		admin.POST("/admin-create-rider", createRiderHandler(s.riders))
		admin.POST("/admin-update-rider", updateRiderHandler(s.riders))
		admin.POST("/admin-toggle-rider-status", toggleRiderHandler(s.riders))
		admin.GET("/admin-riders", listRidersHandler(s.riders))
		admin.GET("/admin-rider-payments", riderPaymentsHandler(s.payouts))
		admin.POST("/admin-mark-rider-paid", markPaidHandler(s.payouts))
		admin.POST("/create-invoice", createInvoiceHandler(s.orders, s.invoices))
	}

	riders := api.Group("", auth.Require(s.issuer, auth.RoleRider))
	{
		riders.GET("/rider-orders", riderOrdersHandler(s.orders))
		riders.POST("/rider-take-order", takeOrderHandler(s.orders))
		riders.POST("/rider-start-delivery", startDeliveryHandler(s.orders))
		riders.POST("/rider-complete-delivery", completeDeliveryHandler(s.orders))
	}

	if s.feed != nil {
		r.GET("/ws/rider", auth.Require(s.issuer, auth.RoleRider), riderFeedHandler(s.feed))
	}
	return r
}
