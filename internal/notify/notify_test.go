package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/pasto-sano/internal/order"
)

func init() { log.SetOutput(io.Discard) }

func sampleOrder() *order.Order {
	return &order.Order{
		ID:       "o-1",
		Customer: order.Customer{Name: "Mario", Phone: "+39 333 1234567", Email: "mario@example.com"},
		Items: []order.Item{{
			Name: "Combo pranzo", Quantity: 1, UnitPrice: decimal.RequireFromString("9.90"),
			Combo: &order.Combo{Primo: "Pasta al pomodoro", Contorno: "Insalata"},
		}},
		DeliveryCost:  decimal.RequireFromString("3.50"),
		Total:         decimal.RequireFromString("13.40"),
		PaymentMethod: order.MethodCash,
		Fulfillment:   order.FulfillmentDelivery,
		Delivery:      &order.Delivery{Address: "Via Roma 1", Zone: "1-3km", TimeSlot: "12:30-13:00", Cost: decimal.RequireFromString("3.50")},
	}
}

func TestSummary(t *testing.T) {
	s := summary(sampleOrder())
	assert.Contains(t, s, "Nuovo ordine o-1")
	assert.Contains(t, s, "(Pasta al pomodoro, Insalata)")
	assert.Contains(t, s, "Consegna Via Roma 1, 1-3km, fascia 12:30-13:00")
	assert.True(t, strings.HasSuffix(s, "Totale: 13.40 EUR (cash)"))
}

type failing struct{ calls int }

func (f *failing) OrderConfirmed(context.Context, *order.Order) error {
	f.calls++
	return errors.New("down")
}

func TestMulti_ContinuesAfterFailure(t *testing.T) {
	a, b := &failing{}, &failing{}
	err := Multi{a, nil, b}.OrderConfirmed(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
}

func TestEmailJS(t *testing.T) {
	var got emailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got.ServiceID != "svc" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	e := NewEmailJS("svc", "tpl", "pub", "priv")
	e.URL = srv.URL
	require.NoError(t, e.OrderConfirmed(context.Background(), sampleOrder()))
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, "mario@example.com", got.Params["to_email"])
	assert.Equal(t, "13.40", got.Params["total"])
	assert.Equal(t, "12:30-13:00", got.Params["time_slot"])

	e.ServiceID = "other"
	assert.Error(t, e.OrderConfirmed(context.Background(), sampleOrder()))
}

func TestTelegram(t *testing.T) {
	var (
		mu   sync.Mutex
		sent []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Pasto","username":"pasto_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			mu.Lock()
			sent = append(sent, r.PostForm.Get("chat_id")+"|"+r.PostForm.Get("text"))
			mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":-100,"type":"group"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	tg, err := NewTelegramWithEndpoint("tok", srv.URL+"/bot%s/%s", -100)
	require.NoError(t, err)
	require.NoError(t, tg.OrderConfirmed(context.Background(), sampleOrder()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sent, 1)
	assert.True(t, strings.HasPrefix(sent[0], "-100|Nuovo ordine o-1"))
}
