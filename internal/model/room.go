package model

// RoomType distinguishes bookable rooms from offices. Offices are never
// bookable and clients suppress status detail for them.
type RoomType string

const (
	RoomTypeRoom   RoomType = "room"
	RoomTypeOffice RoomType = "office"
)

// RoomDescriptor is one entry of the static room/floor registry. Name is
// the unique key joined against the spatial registry.
type RoomDescriptor struct {
	Name  string   `yaml:"name" json:"name"`
	Type  RoomType `yaml:"type" json:"type"`
	Floor int      `yaml:"-" json:"floor"`
}

// RoomEntry is a room descriptor annotated with its derived occupancy
// state for one refresh tick.
type RoomEntry struct {
	RoomDescriptor
	Status          Status     `json:"status"`
	Reservations    []Activity `json:"reservations"`
	NextReservation *Activity  `json:"nextReservation,omitempty"`
}

// FloorListing is the ordered set of room entries on one floor.
type FloorListing struct {
	Floor int         `json:"floor"`
	Rooms []RoomEntry `json:"rooms"`
}
