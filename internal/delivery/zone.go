// Package delivery holds the delivery pricing table, the delivery state
// machine and the rider auto-assignment policy.
package delivery

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrOutOfRange      = errors.New("delivery not available beyond 10 km")
	ErrInvalidDistance = errors.New("invalid distance")
)

// MaxDistanceKm is the farthest distance served.
const MaxDistanceKm = 10.0

// Zone is one distance band with its price split.
type Zone struct {
	Name          string          `json:"zone"`
	MaxKm         float64         `json:"max_km"`
	Cost          decimal.Decimal `json:"cost"`
	RiderShare    decimal.Decimal `json:"rider_share"`
	PlatformShare decimal.Decimal `json:"platform_share"`
}

var riderPercent = decimal.NewFromInt(70)

func newZone(name string, maxKm float64, cost string) Zone {
	c := decimal.RequireFromString(cost)
	rider := c.Mul(riderPercent).Div(decimal.NewFromInt(100)).Round(2)
	return Zone{
		Name:          name,
		MaxKm:         maxKm,
		Cost:          c,
		RiderShare:    rider,
		PlatformShare: c.Sub(rider),
	}
}

// ordered by MaxKm
var zones = []Zone{
	newZone("1-3km", 3, "3.50"),
	newZone("3-6km", 6, "4.90"),
	newZone("6-10km", MaxDistanceKm, "6.90"),
}

// Zones returns a copy of the pricing table.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// ZoneFor maps a distance in kilometers to its band.
func ZoneFor(km float64) (Zone, error) {
	if math.IsNaN(km) || math.IsInf(km, 0) || km <= 0 {
		return Zone{}, ErrInvalidDistance
	}
	for _, z := range zones {
		if km <= z.MaxKm {
			return z, nil
		}
	}
	return Zone{}, ErrOutOfRange
}
