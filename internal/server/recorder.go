package server

import (
	"context"
	"sort"

	"ramudu/internal/db"
	"ramudu/internal/events"
	"ramudu/internal/logger"
)

// recordFinishedGames persists every game the host ends until ctx is done.
func recordFinishedGames(ctx context.Context, database *db.DB, finished <-chan events.GameFinished) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-finished:
			record, standings := gameRecord(ev)
			id, err := database.RecordGame(record, standings)
			if err != nil {
				logger.Log.Errorw("[DB] RecordGame error", "room", ev.RoomCode, "error", err)
				continue
			}
			logger.Log.Debugw("[DB] game recorded", "room", ev.RoomCode, "game", id)
		}
	}
}

// gameRecord ranks players by total score, earliest joiner first on ties.
func gameRecord(ev events.GameFinished) (db.GameRecord, []db.GamePlayerRecord) {
	record := db.GameRecord{
		RoomCode:  ev.RoomCode,
		HostID:    ev.HostID,
		Rounds:    ev.Rounds,
		StartedAt: ev.StartedAt,
		EndedAt:   ev.EndedAt,
	}
	if ev.Winner != nil {
		record.WinnerID = ev.Winner.ID
	}

	ranked := make([]int, len(ev.Players))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ev.Players[ranked[a]].TotalScore > ev.Players[ranked[b]].TotalScore
	})

	standings := make([]db.GamePlayerRecord, 0, len(ranked))
	for rank, idx := range ranked {
		p := ev.Players[idx]
		row := db.GamePlayerRecord{
			PlayerID:   p.ID,
			Name:       p.Name,
			FinalScore: p.TotalScore,
			Rank:       rank + 1,
		}
		if p.Character != nil {
			row.Character = p.Character.Name
		}
		standings = append(standings, row)
	}
	return record, standings
}
