package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type GameRecord struct {
	ID        string
	RoomCode  string
	HostID    string
	Rounds    int
	WinnerID  string
	StartedAt time.Time
	EndedAt   time.Time
	CreatedAt time.Time
}

type GamePlayerRecord struct {
	PlayerID   string
	Name       string
	Character  string
	FinalScore int
	Rank       int
}

// RecordGame stores a finished game and its final standings in one
// transaction and returns the new game id.
func (d *DB) RecordGame(g GameRecord, standings []GamePlayerRecord) (string, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRow(`
		INSERT INTO games (room_code, host_id, rounds, winner_id, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, g.RoomCode, g.HostID, g.Rounds, nullString(g.WinnerID), nullTime(g.StartedAt), nullTime(g.EndedAt)).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("creating game: %w", err)
	}

	for _, p := range standings {
		_, err := tx.Exec(`
			INSERT INTO game_players (game_id, player_id, name, character, final_score, rank)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (game_id, player_id) DO UPDATE SET final_score = $5, rank = $6
		`, id, p.PlayerID, p.Name, nullString(p.Character), p.FinalScore, p.Rank)
		if err != nil {
			return "", fmt.Errorf("adding game player: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing game: %w", err)
	}
	return id, nil
}

// GetGame returns the game with the given id, or an error wrapping
// ErrNotFound.
func (d *DB) GetGame(id string) (*GameRecord, error) {
	var g GameRecord
	var winner sql.NullString
	var started, ended sql.NullTime
	err := d.conn.QueryRow(`
		SELECT id, room_code, host_id, rounds, winner_id, started_at, ended_at, created_at
		FROM games WHERE id = $1
	`, id).Scan(&g.ID, &g.RoomCode, &g.HostID, &g.Rounds, &winner, &started, &ended, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting game: %w", err)
	}
	g.WinnerID = winner.String
	g.StartedAt = started.Time
	g.EndedAt = ended.Time
	return &g, nil
}

func (d *DB) GetGamePlayers(gameID string) ([]GamePlayerRecord, error) {
	rows, err := d.conn.Query(`
		SELECT player_id, name, COALESCE(character, ''), final_score, rank
		FROM game_players WHERE game_id = $1
		ORDER BY rank
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("getting game players: %w", err)
	}
	defer rows.Close()

	var list []GamePlayerRecord
	for rows.Next() {
		var p GamePlayerRecord
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.Character, &p.FinalScore, &p.Rank); err != nil {
			return nil, fmt.Errorf("scanning game player: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
