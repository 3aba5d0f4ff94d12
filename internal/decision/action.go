package decision

import "strings"

// ActionType is the normalized (trimmed, upper-case) action label of a decision
type ActionType string

// The action vocabulary offered to NPCs
const (
	ActionGather ActionType = "GATHER"
	ActionCraft  ActionType = "CRAFT"
	ActionBuild  ActionType = "BUILD"
	ActionSteal  ActionType = "STEAL"
	ActionAttack ActionType = "ATTACK"
	ActionRest   ActionType = "REST"
	ActionSocial ActionType = "SOCIAL"
)

// ActionInfo describes one action for prompts
type ActionInfo struct {
	Type ActionType
	// Effect is the one-line semantics shown to the model
	Effect string
	// NeedsTarget marks actions that are aimed at someone or something
	NeedsTarget bool
}

// Vocabulary lists every known action in prompt order
var Vocabulary = []ActionInfo{
	{Type: ActionGather, Effect: "collect the local resource; risky in dangerous places, makes you hungrier"},
	{Type: ActionCraft, Effect: "work on turning materials into something useful (no effect yet)"},
	{Type: ActionBuild, Effect: "spend one wood or metal at camp to advance the shelter"},
	{Type: ActionSteal, Effect: "try to take an item from someone nearby (no effect yet)", NeedsTarget: true},
	{Type: ActionAttack, Effect: "threaten or strike someone nearby (no effect yet)", NeedsTarget: true},
	{Type: ActionRest, Effect: "recover health and sanity"},
	{Type: ActionSocial, Effect: "talk with someone nearby (no effect yet)", NeedsTarget: true},
}

// NormalizeAction trims and upper-cases a raw label
func NormalizeAction(raw string) ActionType {
	return ActionType(strings.ToUpper(strings.TrimSpace(raw)))
}

// Known reports whether the action is part of the vocabulary
func (a ActionType) Known() bool {
	for _, info := range Vocabulary {
		if info.Type == a {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer
func (a ActionType) String() string {
	return string(a)
}
