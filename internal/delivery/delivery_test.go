package delivery

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneFor_Bands(t *testing.T) {
	cases := []struct {
		km   float64
		zone string
		cost string
	}{
		{0.1, "1-3km", "3.50"},
		{3, "1-3km", "3.50"},
		{3.01, "3-6km", "4.90"},
		{6, "3-6km", "4.90"},
		{6.5, "6-10km", "6.90"},
		{10, "6-10km", "6.90"},
	}
	for _, tc := range cases {
		z, err := ZoneFor(tc.km)
		require.NoError(t, err, "km=%v", tc.km)
		assert.Equal(t, tc.zone, z.Name, "km=%v", tc.km)
		assert.True(t, z.Cost.Equal(decimal.RequireFromString(tc.cost)), "km=%v cost=%s", tc.km, z.Cost)
	}
}

func TestZoneFor_Refused(t *testing.T) {
	_, err := ZoneFor(10.01)
	assert.ErrorIs(t, err, ErrOutOfRange)

	for _, km := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		_, err := ZoneFor(km)
		assert.ErrorIs(t, err, ErrInvalidDistance, "km=%v", km)
	}
}

func TestZones_SeventyThirtySplit(t *testing.T) {
	want := map[string][2]string{
		"1-3km":  {"2.45", "1.05"},
		"3-6km":  {"3.43", "1.47"},
		"6-10km": {"4.83", "2.07"},
	}
	for _, z := range Zones() {
		w := want[z.Name]
		assert.True(t, z.RiderShare.Equal(decimal.RequireFromString(w[0])), "%s rider=%s", z.Name, z.RiderShare)
		assert.True(t, z.PlatformShare.Equal(decimal.RequireFromString(w[1])), "%s platform=%s", z.Name, z.PlatformShare)
		assert.True(t, z.RiderShare.Add(z.PlatformShare).Equal(z.Cost))
		assert.True(t, z.Cost.Mul(decimal.RequireFromString("0.7")).Equal(z.RiderShare))
	}
}

func TestCheck_Transitions(t *testing.T) {
	_, err := Check(ActionTake, StatusPending, "", "r1")
	require.NoError(t, err)

	_, err = Check(ActionTake, StatusInDelivery, "r1", "r2")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = Check(ActionAssign, StatusAssigned, "r1", "r2")
	require.NoError(t, err, "admin may reassign")

	_, err = Check(ActionAssign, StatusDelivered, "r1", "r2")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = Check(ActionComplete, StatusInDelivery, "r1", "r2")
	assert.ErrorIs(t, err, ErrNotYourOrder)

	_, err = Check(ActionComplete, StatusAssigned, "r1", "r1")
	assert.ErrorIs(t, err, ErrConflict)

	r, err := Check(ActionComplete, StatusInDelivery, "r1", "r1")
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, r.To)

	r, err = Check(ActionStart, StatusAssigned, "r1", "r1")
	require.NoError(t, err)
	assert.Equal(t, StatusInDelivery, r.To)

	_, err = Check(Action("teleport"), StatusPending, "", "")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestPickRider(t *testing.T) {
	now := time.Now()
	id, ok := PickRider(nil)
	assert.False(t, ok)
	assert.Empty(t, id)

	_, ok = PickRider([]Candidate{{RiderID: "off", Active: false}})
	assert.False(t, ok)

	id, ok = PickRider([]Candidate{
		{RiderID: "busy", Active: true, OpenDeliveries: 2, CreatedAt: now.Add(-time.Hour)},
		{RiderID: "new", Active: true, OpenDeliveries: 0, CreatedAt: now},
		{RiderID: "old", Active: true, OpenDeliveries: 0, CreatedAt: now.Add(-2 * time.Hour)},
		{RiderID: "off", Active: false},
	})
	require.True(t, ok)
	assert.Equal(t, "old", id)
}
