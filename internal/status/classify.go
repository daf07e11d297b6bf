package status

import (
	"time"

	"epiroom-backend/internal/model"
)

// SoonHorizon is how far ahead of a reservation's start a room is
// reported as "soon" occupied. Domain constant, not configuration.
const SoonHorizon = time.Hour

// Classify derives a room's occupancy state from its reservation list at
// the reference instant now. Intervals are half-open: a reservation
// covers [start, end), so a room is free again exactly at its end time.
//
// The second return value is the next upcoming reservation — the one
// with the earliest start strictly after now. Ties on equal starts go to
// the first occurrence in the input order. Nil when nothing is upcoming.
func Classify(reservations []model.Activity, now time.Time) (model.Status, *model.Activity) {
	next := nextReservation(reservations, now)

	if len(reservations) == 0 {
		return model.StatusFree, nil
	}

	for _, r := range reservations {
		if !now.Before(r.StartDate) && now.Before(r.EndDate) {
			return model.StatusOccupied, next
		}
	}

	horizon := now.Add(SoonHorizon)
	for _, r := range reservations {
		if r.StartDate.After(now) && !r.StartDate.After(horizon) {
			return model.StatusSoon, next
		}
	}

	return model.StatusFree, next
}

func nextReservation(reservations []model.Activity, now time.Time) *model.Activity {
	var next *model.Activity
	for i := range reservations {
		r := &reservations[i]
		if !r.StartDate.After(now) {
			continue
		}
		if next == nil || r.StartDate.Before(next.StartDate) {
			next = r
		}
	}
	if next == nil {
		return nil
	}
	n := *next
	return &n
}
