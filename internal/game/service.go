// Package game runs room lifecycles: it resolves a room, serialises the action
// under the room's lock, applies the engine rules and publishes the outcome.
package game

import (
	"fmt"
	"time"

	"ramudu/internal/characters"
	"ramudu/internal/engine"
	"ramudu/internal/events"
	"ramudu/internal/logger"
	"ramudu/internal/metrics"
	"ramudu/internal/players"
	"ramudu/internal/rooms"
)

// Publisher delivers events to connections. Implementations must not block;
// Service calls them while holding a room lock so members observe a room's
// events in the order its state changed.
type Publisher interface {
	Subscribe(roomCode, connID string)
	Send(connID string, ev events.Event)
	Broadcast(roomCode string, ev events.Event)
	CloseRoom(roomCode string)
}

type Service struct {
	Rooms   *rooms.Store
	Catalog characters.Catalog
	Pub     Publisher
	Bus     *events.Bus      // nil if finished games are not recorded
	Metrics *metrics.Metrics // nil if metrics are disabled
	Shuffle engine.Shuffler  // nil uses math/rand/v2

	now func() time.Time
}

func NewService(store *rooms.Store, pub Publisher) *Service {
	return &Service{
		Rooms:   store,
		Catalog: characters.Default(),
		Pub:     pub,
		now:     time.Now,
	}
}

// maxPlayers is bounded by both the room cap and the catalog.
func (s *Service) maxPlayers() int {
	return min(rooms.MaxPlayers, s.Catalog.Size())
}

// lockRoom resolves code and returns the room locked, or nil if it is gone.
func (s *Service) lockRoom(code string) *rooms.Room {
	room := s.Rooms.Get(code)
	if room == nil {
		return nil
	}
	room.Mu.Lock()
	if room.Closed {
		room.Mu.Unlock()
		return nil
	}
	return room
}

// Create opens a room hosted by connID and sends game_created to it alone.
func (s *Service) Create(connID, hostName string) (rooms.Snapshot, error) {
	room, err := s.Rooms.Create(connID, hostName)
	if err != nil {
		return rooms.Snapshot{}, fmt.Errorf("creating room: %w", err)
	}

	// Create hands the room back locked: the host is subscribed before any
	// joiner can broadcast to the group.
	snap := room.Snapshot()
	s.Pub.Subscribe(room.Code, connID)
	s.Pub.Send(connID, events.Event{Name: events.GameCreated, Data: snap})
	room.Mu.Unlock()

	s.Metrics.SetActiveRooms(s.Rooms.Len())
	logger.Log.Infow("[Game] room created", "room", room.Code, "host", hostName)
	return snap, nil
}

// Join seats connID in the room. On failure the requester alone gets a
// join_error and the room is unchanged.
func (s *Service) Join(code, connID, name string) ([]players.Player, error) {
	roster, err := s.join(code, connID, name)
	if err != nil {
		s.Metrics.IncJoinRejected(joinRejectReason(err))
		s.Pub.Send(connID, events.Event{Name: events.JoinError, Data: JoinErrorMessage(err)})
		logger.Log.Debugw("[Game] join rejected", "room", code, "conn", connID, "error", err)
		return nil, err
	}
	return roster, nil
}

func (s *Service) join(code, connID, name string) ([]players.Player, error) {
	room := s.lockRoom(code)
	if room == nil {
		return nil, fmt.Errorf("joining %q: %w", code, ErrRoomNotFound)
	}
	defer room.Mu.Unlock()

	switch {
	case room.Started:
		return nil, fmt.Errorf("joining %s: %w", room.Code, ErrRoomAlreadyStarted)
	case room.Players.Has(connID):
		return nil, fmt.Errorf("joining %s: %w", room.Code, ErrAlreadyJoined)
	case room.Players.Len() >= s.maxPlayers():
		return nil, fmt.Errorf("joining %s: %w", room.Code, ErrRoomFull)
	}

	room.Players.Add(connID, name)
	room.Touch(s.now())
	roster := room.Players.GetList()

	s.Pub.Subscribe(room.Code, connID)
	s.Pub.Broadcast(room.Code, events.Event{Name: events.PlayerJoined, Data: roster})
	logger.Log.Infow("[Game] player joined", "room", room.Code, "player", name, "players", len(roster))
	return roster, nil
}

// Start deals characters and opens the first round. Requests from anyone but
// the host, or for a started room, are ignored without a reply.
func (s *Service) Start(code, connID string) bool {
	room := s.lockRoom(code)
	if room == nil {
		return false
	}
	defer room.Mu.Unlock()

	if !room.IsHost(connID) || room.Started {
		logger.Log.Debugw("[Game] start ignored", "room", room.Code, "conn", connID)
		return false
	}
	if err := engine.Deal(room.Players, s.Catalog, s.Shuffle); err != nil {
		logger.Log.Errorw("[Game] dealing characters", "room", room.Code, "error", err)
		return false
	}

	now := s.now()
	room.Started = true
	room.Round = 1
	room.StartedAt = now
	room.Touch(now)

	s.Pub.Broadcast(room.Code, events.Event{Name: events.GameStarted, Data: room.Snapshot()})
	logger.Log.Infow("[Game] game started", "room", room.Code, "players", room.Players.Len())
	return true
}

// Guess resolves guesserID's public guess of guessedName and broadcasts the
// round scores. An empty guesserID means the sender. Guesses against unknown
// or undealt rooms, or from connections outside the roster, do nothing.
func (s *Service) Guess(code, connID, guesserID, guessedName string) (engine.RoundResult, bool) {
	if guesserID == "" {
		guesserID = connID
	}

	room := s.lockRoom(code)
	if room == nil {
		return engine.RoundResult{}, false
	}
	defer room.Mu.Unlock()

	if !room.Started || !room.Players.Has(connID) || !room.Players.Has(guesserID) {
		return engine.RoundResult{}, false
	}

	result, ok := engine.Resolve(room.Players, guesserID, guessedName)
	if !ok {
		return engine.RoundResult{}, false
	}
	room.Touch(s.now())

	s.Pub.Broadcast(room.Code, events.Event{Name: events.RoundResults, Data: result})
	s.Metrics.IncGuess(result.IsCorrect)
	logger.Log.Infow("[Game] guess resolved", "room", room.Code, "round", room.Round, "correct", result.IsCorrect)
	return result, true
}

// NextRound re-deals characters for another round, keeping total scores.
// Host only, and only once the game has started.
func (s *Service) NextRound(code, connID string) bool {
	room := s.lockRoom(code)
	if room == nil {
		return false
	}
	defer room.Mu.Unlock()

	if !room.IsHost(connID) || !room.Started {
		return false
	}
	if err := engine.Deal(room.Players, s.Catalog, s.Shuffle); err != nil {
		logger.Log.Errorw("[Game] dealing characters", "room", room.Code, "error", err)
		return false
	}
	room.Round++
	room.Touch(s.now())

	s.Pub.Broadcast(room.Code, events.Event{Name: events.RoundStarted, Data: room.Snapshot()})
	logger.Log.Infow("[Game] round started", "room", room.Code, "round", room.Round)
	return true
}

// End announces the winner and removes the room. Host only. The returned
// winner is nil when the roster is empty.
func (s *Service) End(code, connID string) (*players.Player, bool) {
	room := s.lockRoom(code)
	if room == nil {
		return nil, false
	}

	if !room.IsHost(connID) {
		room.Mu.Unlock()
		logger.Log.Debugw("[Game] end ignored", "room", room.Code, "conn", connID)
		return nil, false
	}

	var winner *players.Player
	if w := engine.Winner(room.Players); w != nil {
		cp := *w
		winner = &cp
		s.Pub.Broadcast(room.Code, events.Event{Name: events.GameEnded, Data: winner})
	}
	room.Closed = true
	s.Pub.CloseRoom(room.Code)

	finished := events.GameFinished{
		RoomCode:  room.Code,
		HostID:    room.HostID,
		StartedAt: room.StartedAt,
		EndedAt:   s.now(),
		Rounds:    room.Round,
		Players:   room.Players.GetList(),
		Winner:    winner,
	}
	started := room.Started
	room.Mu.Unlock()

	s.Rooms.Delete(room.Code)
	s.Metrics.IncGamesFinished()
	s.Metrics.SetActiveRooms(s.Rooms.Len())

	if started && s.Bus != nil && !s.Bus.PublishFinished(finished) {
		logger.Log.Warnw("[Game] results bus full, dropping finished game", "room", room.Code)
	}

	if winner != nil {
		logger.Log.Infow("[Game] game ended", "room", room.Code, "winner", winner.Name, "score", winner.TotalScore)
	} else {
		logger.Log.Infow("[Game] game ended", "room", room.Code)
	}
	return winner, true
}

// Evict drops the broadcast group of a room the store has already swept.
func (s *Service) Evict(code string) {
	s.Pub.CloseRoom(code)
	s.Metrics.AddRoomsSwept(1)
	s.Metrics.SetActiveRooms(s.Rooms.Len())
	logger.Log.Infow("[Game] idle room swept", "room", code)
}
