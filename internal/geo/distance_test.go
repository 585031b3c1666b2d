package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/pasto-sano/internal/delivery"
)

func TestDistanceKm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/maps/api/distancematrix/json", r.URL.Path)
		assert.Equal(t, "Via Torino 10, Milano", q.Get("origins"))
		assert.Equal(t, "k", q.Get("key"))
		switch q.Get("destinations") {
		case "Via Roma 1":
			_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":4249}}]}]}`))
		case "Nowhere":
			_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"NOT_FOUND"}]}]}`))
		default:
			_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "Via Torino 10, Milano")
	ctx := context.Background()

	km, err := c.DistanceKm(ctx, "Via Roma 1")
	require.NoError(t, err)
	assert.Equal(t, 4.3, km)

	_, err = c.DistanceKm(ctx, "Nowhere")
	assert.ErrorIs(t, err, ErrAddressNotFound)

	_, err = c.DistanceKm(ctx, "Denied")
	assert.ErrorContains(t, err, "REQUEST_DENIED")

	_, err = c.DistanceKm(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestDistanceKm_RoundsUpIntoBands(t *testing.T) {
	// the destination is the distance in meters
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":%s}}]}]}`, r.URL.Query().Get("destinations"))
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "k", "Via Torino 10, Milano")

	cases := []struct {
		meters int
		km     float64
		zone   string
	}{
		{0, 0.1, "1-3km"},
		{40, 0.1, "1-3km"},
		{3000, 3.0, "1-3km"},
		{3040, 3.1, "3-6km"},
		{6001, 6.1, "6-10km"},
		{10000, 10.0, "6-10km"},
		{10040, 10.1, ""},
	}
	for _, tc := range cases {
		km, err := c.DistanceKm(context.Background(), strconv.Itoa(tc.meters))
		require.NoError(t, err)
		assert.Equal(t, tc.km, km, "meters=%d", tc.meters)

		z, err := delivery.ZoneFor(km)
		if tc.zone == "" {
			assert.ErrorIs(t, err, delivery.ErrOutOfRange, "meters=%d", tc.meters)
			continue
		}
		require.NoError(t, err, "meters=%d", tc.meters)
		assert.Equal(t, tc.zone, z.Name, "meters=%d", tc.meters)
	}
}
