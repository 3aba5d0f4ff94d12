// Package decision turns raw model output into a complete, typed NPC
// decision. Nothing in here fails: bad input degrades to defaults.
package decision

// Default field values
const (
	DefaultThought = "..."
	DefaultTarget  = "Self"
	DefaultSpeech  = "..."
	DefaultAction  = ActionRest
)

// Decision is one NPC's choice for a turn. Every field is always set.
type Decision struct {
	Thought string     `json:"thought"`
	MoveTo  string     `json:"move_to"`
	Action  ActionType `json:"action_type"`
	Target  string     `json:"target"`
	Speech  string     `json:"speech"`

	// Fallback is set when the text could not be parsed as an object
	Fallback bool `json:"-"`
	// Violations lists schema problems found in otherwise usable output
	Violations []string `json:"-"`
}

// Defaults returns the decision used when the model says nothing useful:
// stay put and rest.
func Defaults(currentLocationID string) Decision {
	return Decision{
		Thought: DefaultThought,
		MoveTo:  currentLocationID,
		Action:  DefaultAction,
		Target:  DefaultTarget,
		Speech:  DefaultSpeech,
	}
}
