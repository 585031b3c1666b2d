package delivery

import (
	"sort"
	"time"
)

// Candidate is a rider considered for auto-assignment.
type Candidate struct {
	RiderID        string
	Active         bool
	OpenDeliveries int
	CreatedAt      time.Time
}

// PickRider chooses the active rider with the fewest open deliveries, oldest
// account first on ties. ok is false when no rider is active.
func PickRider(cands []Candidate) (riderID string, ok bool) {
	active := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Active {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return "", false
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].OpenDeliveries != active[j].OpenDeliveries {
			return active[i].OpenDeliveries < active[j].OpenDeliveries
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	return active[0].RiderID, true
}
