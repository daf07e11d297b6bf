package floorplan

import (
	"sort"
	"time"

	"epiroom-backend/internal/model"
	"epiroom-backend/internal/status"
)

// Aggregate groups a flat activity list into per-floor room listings.
//
// Each activity is attributed to the name of its first associated room;
// activities with no room reference cannot be placed and are dropped.
// Every room in the registry is emitted, reservations or not, in the
// registry's declared floor and room order regardless of input order.
// Pure function of its inputs.
func Aggregate(activities []model.Activity, reg *Registry, now time.Time) []model.FloorListing {
	byRoom := make(map[string][]model.Activity)
	for _, a := range activities {
		if len(a.Rooms) == 0 {
			continue
		}
		name := a.Rooms[0].Name
		byRoom[name] = append(byRoom[name], a)
	}

	for _, reservations := range byRoom {
		sort.SliceStable(reservations, func(i, j int) bool {
			return reservations[i].StartDate.Before(reservations[j].StartDate)
		})
	}

	listings := make([]model.FloorListing, 0, len(reg.Floors))
	for _, floor := range reg.Floors {
		rooms := make([]model.RoomEntry, 0, len(floor.Rooms))
		for _, desc := range floor.Rooms {
			reservations := byRoom[desc.Name]
			st, next := status.Classify(reservations, now)
			rooms = append(rooms, model.RoomEntry{
				RoomDescriptor:  desc,
				Status:          st,
				Reservations:    reservations,
				NextReservation: next,
			})
		}
		listings = append(listings, model.FloorListing{
			Floor: floor.Floor,
			Rooms: rooms,
		})
	}
	return listings
}

// Reclassify re-derives status and next reservation in place from the
// reservations each entry already holds. This is the fast-timer path: it
// keeps the free/soon/occupied boundary current between upstream fetches
// without rebuilding the listings, going through the same Classify call
// as Aggregate so the two paths cannot drift.
func Reclassify(listings []model.FloorListing, now time.Time) {
	for fi := range listings {
		for ri := range listings[fi].Rooms {
			entry := &listings[fi].Rooms[ri]
			entry.Status, entry.NextReservation = status.Classify(entry.Reservations, now)
		}
	}
}
