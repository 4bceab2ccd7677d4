package analytics

import "time"

// Players are keyed by display name: connection ids do not outlive a session.
type LeaderboardEntry struct {
	PlayerName  string `json:"playerName"`
	Value       int    `json:"value"`
	GamesPlayed int    `json:"gamesPlayed"`
	Rank        int    `json:"rank"`
}

type GameRecap struct {
	GameID      string     `json:"gameId"`
	RoomCode    string     `json:"roomCode"`
	Rounds      int        `json:"rounds"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	WinnerName  string     `json:"winnerName,omitempty"`
	WinnerScore int        `json:"winnerScore"`
}

// GameDetail is one recorded game with its final standings, best first.
type GameDetail struct {
	GameID    string     `json:"gameId"`
	RoomCode  string     `json:"roomCode"`
	Rounds    int        `json:"rounds"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	WinnerID  string     `json:"winnerId,omitempty"`
	Standings []Standing `json:"standings"`
}

type Standing struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Character  string `json:"character,omitempty"`
	FinalScore int    `json:"finalScore"`
	Rank       int    `json:"rank"`
}
