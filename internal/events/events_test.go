package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []Event
	err error
}

func (r *recorder) Publish(_ context.Context, ev Event) error {
	r.got = append(r.got, ev)
	return r.err
}

func TestFanout_PublishesToAllAndJoinsErrors(t *testing.T) {
	a := &recorder{}
	b := &recorder{err: errors.New("boom")}
	err := Fanout{a, nil, b}.Publish(context.Background(), Event{Type: TypeOrderAvailable, OrderID: "o1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	require.Len(t, a.got, 1)
	require.Len(t, b.got, 1)
	assert.False(t, a.got[0].At.IsZero())
}

func dialRider(t *testing.T, srv *httptest.Server, rider string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?rider=" + rider
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	return ev
}

func TestHub_RoutesEvents(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("rider"))
	}))
	defer srv.Close()

	r1 := dialRider(t, srv, "r1")
	r2 := dialRider(t, srv, "r2")
	require.Eventually(t, func() bool { return hub.Connected() == 2 }, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	require.NoError(t, hub.Publish(ctx, Event{Type: TypeOrderConfirmed, OrderID: "skip"}))
	require.NoError(t, hub.Publish(ctx, Event{Type: TypeDeliveryAssigned, OrderID: "o1", RiderID: "r2"}))
	require.NoError(t, hub.Publish(ctx, Event{Type: TypeOrderAvailable, OrderID: "o2"}))

	ev := readEvent(t, r1)
	assert.Equal(t, TypeOrderAvailable, ev.Type)
	assert.Equal(t, "o2", ev.OrderID)

	ev = readEvent(t, r2)
	assert.Equal(t, TypeDeliveryAssigned, ev.Type)
	assert.Equal(t, "o1", ev.OrderID)
	ev = readEvent(t, r2)
	assert.Equal(t, TypeOrderAvailable, ev.Type)

	_ = r1.Close()
	require.Eventually(t, func() bool { return hub.Connected() == 1 }, 2*time.Second, 10*time.Millisecond)
}
