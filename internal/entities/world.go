package entities

// WorldState is the singleton clock and progress record.
type WorldState struct {
	Turn                 int    `json:"turn_count" yaml:"turn"`
	Weather              string `json:"weather" yaml:"weather"`
	ConstructionProgress int    `json:"construction_progress" yaml:"construction_progress"`
}
