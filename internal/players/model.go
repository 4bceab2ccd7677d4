package players

import "ramudu/internal/characters"

// Player is one connection seated in a room. ID is the connection id and the
// only identity key; names may repeat.
type Player struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Character  *characters.Character `json:"character,omitempty"`
	TotalScore int                   `json:"totalScore"`
}
