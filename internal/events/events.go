package events

import (
	"time"

	"ramudu/internal/players"
)

// Actions sent by clients.
const (
	CreateGame  = "create_game"
	JoinGame    = "join_game"
	StartGame   = "start_game"
	SubmitGuess = "submit_guess"
	NextRound   = "next_round"
	ExitGame    = "exit_game"
)

// Events sent to clients.
const (
	GameCreated  = "game_created"
	PlayerJoined = "player_joined"
	JoinError    = "join_error"
	GameStarted  = "game_started"
	RoundResults = "round_results"
	RoundStarted = "round_started"
	GameEnded    = "game_ended"
	Error        = "error"
)

// Event is a named outbound message. Data is marshalled to JSON as is.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

type JoinPayload struct {
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
}

type GuessPayload struct {
	GameID            string `json:"gameId"`
	GuesserID         string `json:"guesserId"`
	GuessedPlayerName string `json:"guessedPlayerName"`
}

// GameFinished describes a session the host has ended.
type GameFinished struct {
	RoomCode  string
	HostID    string
	StartedAt time.Time
	EndedAt   time.Time
	Rounds    int
	Players   []players.Player
	Winner    *players.Player
}

type Bus struct {
	GamesFinished chan GameFinished
}

func NewBus() *Bus {
	return &Bus{
		GamesFinished: make(chan GameFinished, 64),
	}
}

// PublishFinished queues ev without blocking and reports whether it fit.
func (b *Bus) PublishFinished(ev GameFinished) bool {
	select {
	case b.GamesFinished <- ev:
		return true
	default:
		return false
	}
}
