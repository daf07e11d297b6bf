package floorplan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"epiroom-backend/internal/model"
)

// Registry is the static room/floor configuration. Floor and room order
// is the declaration order of the file and is significant: aggregation
// output follows it so rendering is deterministic.
type Registry struct {
	Floors []Floor `yaml:"floors" json:"floors"`
}

// Floor is one floor's ordered room list.
type Floor struct {
	Floor int                    `yaml:"floor" json:"floor"`
	Rooms []model.RoomDescriptor `yaml:"rooms" json:"rooms"`
}

// LoadRegistry reads the room/floor registry from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reg Registry
	if err := yaml.NewDecoder(f).Decode(&reg); err != nil {
		return nil, fmt.Errorf("failed to decode room registry: %w", err)
	}

	seen := make(map[string]bool)
	for fi := range reg.Floors {
		floor := &reg.Floors[fi]
		for ri := range floor.Rooms {
			room := &floor.Rooms[ri]
			if room.Name == "" {
				return nil, fmt.Errorf("floor %d: room with empty name", floor.Floor)
			}
			if seen[room.Name] {
				return nil, fmt.Errorf("duplicate room name %q", room.Name)
			}
			seen[room.Name] = true
			switch room.Type {
			case model.RoomTypeRoom, model.RoomTypeOffice:
			default:
				return nil, fmt.Errorf("room %q: unknown type %q", room.Name, room.Type)
			}
			room.Floor = floor.Floor
		}
	}

	return &reg, nil
}

// BookableRooms returns the names of all type=room descriptors, in
// registry order. Offices are excluded.
func (r *Registry) BookableRooms() []string {
	var names []string
	for _, f := range r.Floors {
		for _, room := range f.Rooms {
			if room.Type == model.RoomTypeRoom {
				names = append(names, room.Name)
			}
		}
	}
	return names
}
