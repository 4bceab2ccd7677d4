package engine

import "ramudu/internal/players"

// Winner returns the player with the highest total score, the earliest joiner
// on ties, or nil for an empty roster.
func Winner(roster *players.Roster) *players.Player {
	var best *players.Player
	for _, p := range roster.All() {
		if best == nil || p.TotalScore > best.TotalScore {
			best = p
		}
	}
	return best
}
