package engine

import (
	"ramudu/internal/characters"
	"ramudu/internal/players"
)

// RoundResult is the outcome of one public guess.
type RoundResult struct {
	RoundScores map[string]int `json:"roundScores"`
	IsCorrect   bool           `json:"isCorrect"`
}

// Resolve scores a guess by guesserID naming guessedName and adds the round
// scores to every player's total. ok is false when no one holds the hidden
// role, in which case the roster is left untouched.
func Resolve(roster *players.Roster, guesserID, guessedName string) (result RoundResult, ok bool) {
	sita := roster.HiddenHolder()
	if sita == nil {
		return RoundResult{}, false
	}

	guessed := roster.FindByName(guessedName)
	result.IsCorrect = guessed != nil && guessed.ID == sita.ID

	result.RoundScores = make(map[string]int, roster.Len())
	for _, p := range roster.All() {
		if p.Character != nil {
			result.RoundScores[p.ID] = p.Character.Score
		} else {
			result.RoundScores[p.ID] = 0
		}
	}

	// Guesser first, so a guesser holding Sita ends on Sita's entry.
	if result.IsCorrect {
		result.RoundScores[guesserID] = characters.FullScore
		result.RoundScores[sita.ID] = 0
	} else {
		result.RoundScores[guesserID] = 0
		result.RoundScores[sita.ID] = characters.FullScore
	}

	for _, p := range roster.All() {
		p.TotalScore += result.RoundScores[p.ID]
	}
	return result, true
}
