package analytics

import (
	"database/sql"
	"fmt"
	"time"

	"ramudu/internal/db"
)

const (
	CategoryWins  = "wins"
	CategoryScore = "score"
)

type Queries struct {
	DB *db.DB
}

func NewQueries(database *db.DB) *Queries {
	return &Queries{DB: database}
}

func (q *Queries) GetLeaderboard(category string, limit int) ([]LeaderboardEntry, error) {
	var query string
	switch category {
	case CategoryWins:
		query = `
			SELECT name, COUNT(*) FILTER (WHERE rank = 1) AS value, COUNT(*) AS games
			FROM game_players
			GROUP BY name
			ORDER BY value DESC, games ASC, name ASC
			LIMIT $1`
	case CategoryScore:
		query = `
			SELECT name, COALESCE(SUM(final_score), 0) AS value, COUNT(*) AS games
			FROM game_players
			GROUP BY name
			ORDER BY value DESC, games ASC, name ASC
			LIMIT $1`
	default:
		return nil, fmt.Errorf("unknown leaderboard category: %s", category)
	}

	rows, err := q.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("getting leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerName, &e.Value, &e.GamesPlayed); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (q *Queries) GetRecentGames(limit int) ([]GameRecap, error) {
	rows, err := q.DB.Query(`
		SELECT g.id, g.room_code, g.rounds, g.started_at, g.ended_at, gp.name, gp.final_score
		FROM games g
		LEFT JOIN game_players gp ON gp.game_id = g.id AND gp.player_id = g.winner_id
		ORDER BY g.ended_at DESC NULLS LAST
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("getting recent games: %w", err)
	}
	defer rows.Close()

	var recaps []GameRecap
	for rows.Next() {
		var r GameRecap
		var winner sql.NullString
		var score sql.NullInt64
		if err := rows.Scan(&r.GameID, &r.RoomCode, &r.Rounds, &r.StartedAt, &r.EndedAt, &winner, &score); err != nil {
			return nil, err
		}
		r.WinnerName = winner.String
		r.WinnerScore = int(score.Int64)
		recaps = append(recaps, r)
	}
	return recaps, rows.Err()
}

// GetGameDetail loads a recorded game. A missing id yields an error wrapping
// db.ErrNotFound.
func (q *Queries) GetGameDetail(id string) (*GameDetail, error) {
	g, err := q.DB.GetGame(id)
	if err != nil {
		return nil, err
	}
	records, err := q.DB.GetGamePlayers(id)
	if err != nil {
		return nil, err
	}

	detail := &GameDetail{
		GameID:    g.ID,
		RoomCode:  g.RoomCode,
		Rounds:    g.Rounds,
		StartedAt: optionalTime(g.StartedAt),
		EndedAt:   optionalTime(g.EndedAt),
		WinnerID:  g.WinnerID,
		Standings: make([]Standing, 0, len(records)),
	}
	for _, p := range records {
		detail.Standings = append(detail.Standings, Standing{
			PlayerID:   p.PlayerID,
			PlayerName: p.Name,
			Character:  p.Character,
			FinalScore: p.FinalScore,
			Rank:       p.Rank,
		})
	}
	return detail, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
