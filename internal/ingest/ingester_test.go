package ingest

import (
	"context"
	"testing"

	"github.com/fortuna/gridiron/internal/store"
)

type fakeStatStore struct {
	rows   []store.StatRow
	season int
	week   int
	ok     bool
}

func (f *fakeStatStore) Upsert(ctx context.Context, row store.StatRow) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeStatStore) LatestWeek(ctx context.Context) (int, int, bool, error) {
	return f.season, f.week, f.ok, nil
}

type fakeGameStore struct {
	upserts        []store.Game
	finalSeason    int
	finalWeek      int
	finalizeCalled bool
}

func (f *fakeGameStore) Upsert(ctx context.Context, game store.Game) error {
	f.upserts = append(f.upserts, game)
	return nil
}

func (f *fakeGameStore) MarkFinalThrough(ctx context.Context, season, week int) (int64, error) {
	f.finalizeCalled = true
	f.finalSeason = season
	f.finalWeek = week
	return 2, nil
}

func scheduleGames(season int, weeks ...int) []store.Game {
	games := make([]store.Game, 0, len(weeks))
	for _, w := range weeks {
		games = append(games, store.Game{
			Season:   season,
			Week:     w,
			HomeTeam: "DET",
			AwayTeam: "CHI",
		})
	}
	return games
}

func TestStoreScheduleFinalizesPlayedWeeks(t *testing.T) {
	stats := &fakeStatStore{season: 2024, week: 5, ok: true}
	games := &fakeGameStore{}
	ingester := &Ingester{stats: stats, games: games}

	stored, err := ingester.storeSchedule(context.Background(), 2024, scheduleGames(2024, 4, 5, 6))
	if err != nil {
		t.Fatalf("storeSchedule: %v", err)
	}
	if stored != 3 {
		t.Errorf("stored = %d, want 3", stored)
	}
	if !games.finalizeCalled {
		t.Fatal("weeks with stat lines were not marked final")
	}
	if games.finalSeason != 2024 || games.finalWeek != 5 {
		t.Errorf("finalized through %d week %d, want 2024 week 5", games.finalSeason, games.finalWeek)
	}
}

func TestStoreScheduleSkipsFinalizeForOtherSeason(t *testing.T) {
	// Last season's stat lines say nothing about this season's games.
	stats := &fakeStatStore{season: 2023, week: 18, ok: true}
	games := &fakeGameStore{}
	ingester := &Ingester{stats: stats, games: games}

	if _, err := ingester.storeSchedule(context.Background(), 2024, scheduleGames(2024, 1)); err != nil {
		t.Fatalf("storeSchedule: %v", err)
	}
	if games.finalizeCalled {
		t.Error("games were finalized from another season's stats")
	}
}

func TestStoreScheduleSkipsFinalizeWhenNoStats(t *testing.T) {
	stats := &fakeStatStore{}
	games := &fakeGameStore{}
	ingester := &Ingester{stats: stats, games: games}

	if _, err := ingester.storeSchedule(context.Background(), 2024, scheduleGames(2024, 1)); err != nil {
		t.Fatalf("storeSchedule: %v", err)
	}
	if games.finalizeCalled {
		t.Error("games were finalized with an empty stat table")
	}
}
