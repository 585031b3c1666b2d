package payout

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Delivered is one completed delivery as the aggregation sees it.
type Delivered struct {
	OrderID     string          `db:"order_id"`
	RiderID     string          `db:"rider_id"`
	DistanceKm  float64         `db:"distance_km"`
	RiderShare  decimal.Decimal `db:"rider_share"`
	DeliveredAt time.Time       `db:"delivered_at"`
}

type RiderRef struct {
	ID    string `db:"id"    json:"id"`
	Name  string `db:"name"  json:"name"`
	Email string `db:"email" json:"email"`
}

// Summary is a rider's earnings over one period.
type Summary struct {
	RiderID    string          `json:"riderId"`
	RiderName  string          `json:"riderName"`
	RiderEmail string          `json:"riderEmail"`
	Deliveries int             `json:"deliveries"`
	TotalKm    float64         `json:"totalKm"`
	Earnings   decimal.Decimal `json:"earnings"`
	Status     string          `json:"status"`
	PaidAt     *time.Time      `json:"paidAt,omitempty"`
}

// Aggregate groups the deliveries inside p by rider. Riders without
// deliveries are left out; the result is ordered by rider name and every
// summary starts as pending.
func Aggregate(orders []Delivered, riders []RiderRef, p Period) []Summary {
	byID := make(map[string]RiderRef, len(riders))
	for _, r := range riders {
		byID[r.ID] = r
	}

	acc := map[string]*Summary{}
	for _, o := range orders {
		if o.RiderID == "" || !p.Contains(o.DeliveredAt) {
			continue
		}
		s, ok := acc[o.RiderID]
		if !ok {
			ref := byID[o.RiderID]
			s = &Summary{RiderID: o.RiderID, RiderName: ref.Name, RiderEmail: ref.Email, Status: StatusPending}
			acc[o.RiderID] = s
		}
		s.Deliveries++
		s.TotalKm += o.DistanceKm
		s.Earnings = s.Earnings.Add(o.RiderShare)
	}

	out := make([]Summary, 0, len(acc))
	for _, s := range acc {
		s.TotalKm = math.Round(s.TotalKm*100) / 100
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RiderName != out[j].RiderName {
			return out[i].RiderName < out[j].RiderName
		}
		return out[i].RiderID < out[j].RiderID
	})
	return out
}

// ApplyPayments marks the summaries that have a payment record for the same
// rider. Records must already be filtered to the period.
func ApplyPayments(sums []Summary, paid []Payment) {
	byRider := make(map[string]Payment, len(paid))
	for _, p := range paid {
		byRider[p.RiderID] = p
	}
	for i := range sums {
		if p, ok := byRider[sums[i].RiderID]; ok {
			at := p.PaidAt
			sums[i].Status = StatusPaid
			sums[i].PaidAt = &at
		}
	}
}
