package model

// Status is a room's derived occupancy state. It is recomputed on every
// refresh tick and never persisted.
type Status string

const (
	StatusFree     Status = "free"
	StatusSoon     Status = "soon"
	StatusOccupied Status = "occupied"
)
