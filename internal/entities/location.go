package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeLocation is the core.Entity type of a location
const EntityTypeLocation = "location"

// ResourceType is what a location yields to GATHER
type ResourceType string

// Resource types
const (
	ResourceWood  ResourceType = "wood"
	ResourceMetal ResourceType = "metal"
	ResourceFood  ResourceType = "food"
	ResourceNone  ResourceType = "none"
)

// Produces reports whether gathering here can yield anything
func (r ResourceType) Produces() bool {
	return r != "" && r != ResourceNone
}

// Location is static reference data; turns never modify it.
type Location struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	ResourceType ResourceType `json:"resource_type" yaml:"resource_type"`
	// DangerLevel is a small integer; each point adds 10% gather failure chance.
	DangerLevel int `json:"danger_level" yaml:"danger_level"`
}

// GetID implements core.Entity
func (l *Location) GetID() string {
	return l.ID
}

// GetType implements core.Entity
func (l *Location) GetType() string {
	return EntityTypeLocation
}

var _ core.Entity = (*Location)(nil)
