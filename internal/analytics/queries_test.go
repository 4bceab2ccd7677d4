package analytics

import (
	"errors"
	"os"
	"testing"
	"time"

	"ramudu/internal/db"
)

func getTestQueries(t *testing.T) (*Queries, *db.DB) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	database, err := db.Connect(dsn)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	t.Cleanup(func() {
		database.Exec("DELETE FROM game_players")
		database.Exec("DELETE FROM games")
		database.Close()
	})
	return NewQueries(database), database
}

func seed(t *testing.T, database *db.DB, code, winnerID string, standings []db.GamePlayerRecord) {
	t.Helper()
	now := time.Now()
	_, err := database.RecordGame(db.GameRecord{
		RoomCode:  code,
		HostID:    standings[0].PlayerID,
		Rounds:    1,
		WinnerID:  winnerID,
		StartedAt: now.Add(-time.Minute),
		EndedAt:   now,
	}, standings)
	if err != nil {
		t.Fatalf("RecordGame() error: %v", err)
	}
}

func TestGetLeaderboard_Wins(t *testing.T) {
	q, database := getTestQueries(t)
	seed(t, database, "ABCD", "a1", []db.GamePlayerRecord{
		{PlayerID: "a1", Name: "Alice", FinalScore: 1000, Rank: 1},
		{PlayerID: "b1", Name: "Bob", FinalScore: 0, Rank: 2},
	})
	seed(t, database, "EFGH", "a2", []db.GamePlayerRecord{
		{PlayerID: "a2", Name: "Alice", FinalScore: 1900, Rank: 1},
		{PlayerID: "b2", Name: "Bob", FinalScore: 900, Rank: 2},
	})

	entries, err := q.GetLeaderboard(CategoryWins, 10)
	if err != nil {
		t.Fatalf("GetLeaderboard() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].PlayerName != "Alice" || entries[0].Value != 2 || entries[0].Rank != 1 {
		t.Errorf("first = %+v, want Alice with 2 wins", entries[0])
	}
	if entries[1].GamesPlayed != 2 {
		t.Errorf("Bob games = %d, want 2", entries[1].GamesPlayed)
	}
}

func TestGetLeaderboard_Score(t *testing.T) {
	q, database := getTestQueries(t)
	seed(t, database, "ABCD", "b1", []db.GamePlayerRecord{
		{PlayerID: "a1", Name: "Alice", FinalScore: 500, Rank: 2},
		{PlayerID: "b1", Name: "Bob", FinalScore: 1500, Rank: 1},
	})

	entries, err := q.GetLeaderboard(CategoryScore, 1)
	if err != nil {
		t.Fatalf("GetLeaderboard() error: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerName != "Bob" || entries[0].Value != 1500 {
		t.Errorf("entries = %+v, want only Bob with 1500", entries)
	}
}

func TestGetLeaderboard_UnknownCategory(t *testing.T) {
	q := NewQueries(nil)
	if _, err := q.GetLeaderboard("reaction", 10); err == nil {
		t.Error("GetLeaderboard() should reject unknown categories")
	}
}

func TestGetRecentGames(t *testing.T) {
	q, database := getTestQueries(t)
	seed(t, database, "ABCD", "a1", []db.GamePlayerRecord{
		{PlayerID: "a1", Name: "Alice", FinalScore: 1000, Rank: 1},
	})

	recaps, err := q.GetRecentGames(5)
	if err != nil {
		t.Fatalf("GetRecentGames() error: %v", err)
	}
	if len(recaps) != 1 {
		t.Fatalf("recaps = %d, want 1", len(recaps))
	}
	if recaps[0].RoomCode != "ABCD" || recaps[0].WinnerName != "Alice" || recaps[0].WinnerScore != 1000 {
		t.Errorf("recap = %+v", recaps[0])
	}
}

func TestGetGameDetail(t *testing.T) {
	q, database := getTestQueries(t)
	now := time.Now()
	id, err := database.RecordGame(db.GameRecord{
		RoomCode:  "WXYZ",
		HostID:    "a1",
		Rounds:    2,
		WinnerID:  "b1",
		StartedAt: now.Add(-time.Minute),
		EndedAt:   now,
	}, []db.GamePlayerRecord{
		{PlayerID: "b1", Name: "Bob", Character: "Ramudu", FinalScore: 2000, Rank: 1},
		{PlayerID: "a1", Name: "Alice", Character: "Sita", FinalScore: 1000, Rank: 2},
	})
	if err != nil {
		t.Fatalf("RecordGame() error: %v", err)
	}

	detail, err := q.GetGameDetail(id)
	if err != nil {
		t.Fatalf("GetGameDetail() error: %v", err)
	}
	if detail.RoomCode != "WXYZ" || detail.Rounds != 2 || detail.WinnerID != "b1" {
		t.Errorf("detail = %+v", detail)
	}
	if detail.StartedAt == nil || detail.EndedAt == nil {
		t.Error("recorded times should be present")
	}
	if len(detail.Standings) != 2 || detail.Standings[0].PlayerName != "Bob" || detail.Standings[1].Character != "Sita" {
		t.Errorf("standings = %+v", detail.Standings)
	}
}

func TestGetGameDetail_NotFound(t *testing.T) {
	q, _ := getTestQueries(t)
	_, err := q.GetGameDetail("00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("GetGameDetail() error = %v, want db.ErrNotFound", err)
	}
}

func TestOptionalTime(t *testing.T) {
	if optionalTime(time.Time{}) != nil {
		t.Error("zero time should be omitted")
	}
	now := time.Now()
	if got := optionalTime(now); got == nil || !got.Equal(now) {
		t.Errorf("optionalTime(now) = %v", got)
	}
}
