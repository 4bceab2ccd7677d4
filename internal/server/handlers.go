package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"ramudu/internal/analytics"
	"ramudu/internal/broadcast"
	"ramudu/internal/db"
	"ramudu/internal/events"
	"ramudu/internal/game"
	"ramudu/internal/logger"
	"ramudu/internal/metrics"
	"ramudu/internal/wshub"
)

const maxMessageBytes = 4096

var errMissingName = errors.New("a player name is required")

type Server struct {
	Game        *game.Service
	Hub         *wshub.Hub
	Broadcaster *broadcast.Broadcaster
	DB          *db.DB // nil if no database configured
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry
	Origins     []string
	RateLimit   rate.Limit
	RateBurst   int
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<h1>Server is running</h1>")
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.Origins,
	})
	if err != nil {
		logger.Log.Warnw("[WSHub] accept failed", "error", err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(maxMessageBytes)

	connID := uuid.New().String()
	var limiter *rate.Limiter
	if s.RateLimit > 0 {
		limiter = rate.NewLimiter(s.RateLimit, s.RateBurst)
	}
	client := wshub.NewClient(connID, conn, limiter)
	s.Hub.Register(client)
	s.Metrics.IncClients()
	logger.Log.Debugw("[WSHub] connected", "conn", connID)

	defer func() {
		s.Broadcaster.Forget(connID)
		s.Hub.Unregister(connID)
		s.Metrics.DecClients()
		logger.Log.Debugw("[WSHub] disconnected", "conn", connID)
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go client.WritePump(ctx)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if !client.Allow() {
			s.sendError(connID, "too many actions, slow down")
			continue
		}
		s.dispatch(connID, data)
	}
}

// dispatch decodes one client frame and runs the named action.
func (s *Server) dispatch(connID string, data []byte) {
	var msg wshub.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(connID, "malformed message")
		return
	}

	switch msg.Event {
	case events.CreateGame:
		var name string
		if err := decodeName(msg.Data, &name); err != nil {
			s.sendError(connID, err.Error())
			return
		}
		if _, err := s.Game.Create(connID, name); err != nil {
			logger.Log.Errorw("[Game] create failed", "conn", connID, "error", err)
			s.sendError(connID, "unable to create a game, please retry")
		}

	case events.JoinGame:
		var p events.JoinPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			s.sendError(connID, "malformed join_game payload")
			return
		}
		if p.PlayerName = strings.TrimSpace(p.PlayerName); p.PlayerName == "" {
			s.sendError(connID, errMissingName.Error())
			return
		}
		s.Game.Join(p.GameID, connID, p.PlayerName)

	case events.StartGame, events.NextRound, events.ExitGame:
		var code string
		if err := json.Unmarshal(msg.Data, &code); err != nil {
			s.sendError(connID, "malformed "+msg.Event+" payload")
			return
		}
		switch msg.Event {
		case events.StartGame:
			s.Game.Start(code, connID)
		case events.NextRound:
			s.Game.NextRound(code, connID)
		default:
			s.Game.End(code, connID)
		}

	case events.SubmitGuess:
		var p events.GuessPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			s.sendError(connID, "malformed submit_guess payload")
			return
		}
		s.Game.Guess(p.GameID, connID, p.GuesserID, p.GuessedPlayerName)

	default:
		s.sendError(connID, "unknown event")
		return
	}
	s.Metrics.IncAction(msg.Event)
}

func decodeName(raw json.RawMessage, name *string) error {
	if err := json.Unmarshal(raw, name); err != nil {
		return errMissingName
	}
	if *name = strings.TrimSpace(*name); *name == "" {
		return errMissingName
	}
	return nil
}

func (s *Server) sendError(connID, message string) {
	s.Broadcaster.Send(connID, events.Event{Name: events.Error, Data: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(r.Context()); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": status, "error": err.Error()})
			return
		}
	}
	json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"rooms":   s.Game.Rooms.Len(),
		"clients": s.Hub.Len(),
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Leaderboard requires a database connection", http.StatusServiceUnavailable)
		return
	}

	category := r.URL.Query().Get("cat")
	if category == "" {
		category = analytics.CategoryWins
	}

	entries, err := analytics.NewQueries(s.DB).GetLeaderboard(category, queryLimit(r, 10))
	if err != nil {
		logger.Log.Errorw("[Analytics] leaderboard error", "error", err)
		http.Error(w, "Error loading leaderboard", http.StatusBadRequest)
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleRecentGames(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "Game history requires a database connection", http.StatusServiceUnavailable)
		return
	}

	recaps, err := analytics.NewQueries(s.DB).GetRecentGames(queryLimit(r, 20))
	if err != nil {
		logger.Log.Errorw("[Analytics] recent games error", "error", err)
		http.Error(w, "Error loading games", http.StatusInternalServerError)
		return
	}
	writeJSON(w, recaps)
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		http.NotFound(w, r)
		return
	}
	if s.DB == nil {
		http.Error(w, "Game history requires a database connection", http.StatusServiceUnavailable)
		return
	}

	detail, err := analytics.NewQueries(s.DB).GetGameDetail(id)
	if errors.Is(err, db.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logger.Log.Errorw("[Analytics] game detail error", "game", id, "error", err)
		http.Error(w, "Error loading game", http.StatusInternalServerError)
		return
	}
	writeJSON(w, detail)
}

func queryLimit(r *http.Request, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 || n > 100 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("[Server] encode error", "error", err)
	}
}
