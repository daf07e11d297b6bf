package model

import "time"

// ServiceManager identifies which upstream scheduling system produced an
// activity. The planning feed only ever emits these two values.
const (
	ServiceManagerIntra = "intra"
	ServiceManagerMy    = "my"
)

// RoomRef is an upstream room reference attached to an activity.
type RoomRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Activity is a single reservation record from the upstream planning feed.
// Timestamps are ISO-8601; start <= end is trusted upstream input.
type Activity struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	SecondTitle    string    `json:"second_title"`
	UnitName       string    `json:"unit_name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Rooms          []RoomRef `json:"room,omitempty"`
	ServiceManager string    `json:"service_manager"`
}

// PlanningResponse models the top-level structure of the upstream
// planning API's response.
type PlanningResponse struct {
	Activities []Activity `json:"activities"`
}
