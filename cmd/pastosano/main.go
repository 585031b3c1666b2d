package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pasto-sano/internal/auth"
	"github.com/MikeMC777/pasto-sano/internal/config"
	"github.com/MikeMC777/pasto-sano/internal/db"
	"github.com/MikeMC777/pasto-sano/internal/discount"
	"github.com/MikeMC777/pasto-sano/internal/events"
	"github.com/MikeMC777/pasto-sano/internal/geo"
	"github.com/MikeMC777/pasto-sano/internal/invoice"
	"github.com/MikeMC777/pasto-sano/internal/menu"
	"github.com/MikeMC777/pasto-sano/internal/notify"
	"github.com/MikeMC777/pasto-sano/internal/order"
	"github.com/MikeMC777/pasto-sano/internal/payment"
	"github.com/MikeMC777/pasto-sano/internal/payout"
	"github.com/MikeMC777/pasto-sano/internal/probe"
	"github.com/MikeMC777/pasto-sano/internal/rider"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := db.Migrate(cfg.PostgresDSN); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}
	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	cal, err := menu.Load()
	if err != nil {
		log.Fatalf("menu: %v", err)
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	riders := rider.NewService(rider.NewPGRepo(pool), issuer)
	discounts := discount.NewService(discount.NewPGRepo(pool))

	hub := events.NewHub()
	pub := events.Fanout{hub}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.DialAMQP(cfg.AMQPURL)
		if err != nil {
			log.Printf("[events] amqp disabled: %v", err)
		} else {
			defer amqpPub.Close()
			pub = append(pub, amqpPub)
		}
	}

	var senders notify.Multi
	if cfg.EmailJSServiceID != "" {
		senders = append(senders, notify.NewEmailJS(cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSPublicKey, cfg.EmailJSPrivateKey))
	}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("[notify] telegram disabled: %v", err)
		} else {
			senders = append(senders, tg)
		}
	}

	ext := order.Ext{Riders: riders, Discounts: discounts, Notifier: senders, Events: pub}
	srv := &server{
		issuer:    issuer,
		admin:     auth.NewAdmin(cfg.AdminEmail, cfg.AdminPasswordHash, issuer),
		riders:    riders,
		discounts: discounts,
		payouts:   payout.NewService(payout.NewPGRepo(pool), cfg.TimeZone),
		menu:      cal,
		loc:       cfg.TimeZone,
		invoices:  invoice.NewClient(cfg.InvoiceAPIURL, cfg.InvoiceAPIToken),
		feed:      hub,
	}
	if cfg.StripeSecretKey != "" {
		st := payment.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
		ext.Card = st
		srv.webhooks = st
	}
	if cfg.PayPalClientID != "" {
		ext.PayPal = payment.NewPayPal(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalSecret)
	}
	if cfg.MapsAPIKey != "" {
		srv.distance = geo.NewClient(cfg.MapsBaseURL, cfg.MapsAPIKey, cfg.RestaurantAddress)
	}
	srv.orders = order.NewService(order.NewPGRepo(pool), ext)

	hc := probe.New(pool, 10*time.Second)
	srv.health = hc
	go hc.Run(ctx)
	lis, err := net.Listen("tcp", cfg.GRPCHealthAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", cfg.GRPCHealthAddr, err)
	}
	go func() {
		if err := hc.Serve(lis); err != nil {
			log.Printf("[probe] serve: %v", err)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("pastosano listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	hc.Stop()
}
