package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/gameday"
	"github.com/pfrederiksen/gameday/internal/gid"
	"github.com/pfrederiksen/gameday/internal/logger"
)

// Walks the live feeds for the last day of the 2012 regular season:
// Nationals at Phillies, Ross Detwiler starting for Washington.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := gameday.New(feed.New(feed.Options{}), feed.DefaultLayout(), logger.Default())
	date := gid.Date{Year: 2012, Month: time.September, Day: 30}

	game, err := client.Game(ctx, date, 11)
	if err != nil {
		fail("schedule", err)
	}
	fmt.Printf("✅ Game 11 on %s: %s @ %s (%s)\n", date, game.Away.Name, game.Home.Name, game.ID)

	pitchers, err := client.ListPitchers(ctx, game.ID)
	if err != nil {
		fail("roster", err)
	}
	var pitcherID, team string
	for id, p := range pitchers {
		if p.Name == "Ross Detwiler" {
			pitcherID, team = id, p.Team
		}
	}
	if pitcherID == "" {
		fail("roster", fmt.Errorf("Ross Detwiler not among %d pitchers", len(pitchers)))
	}
	fmt.Printf("✅ Ross Detwiler is pitcher %s for %s\n", pitcherID, team)

	history, err := client.GetPitcherHistory(ctx, game.ID, pitcherID)
	if err != nil {
		fail("history", err)
	}
	if len(history.Records) == 0 {
		fail("history", fmt.Errorf("no records"))
	}
	if got := history.Records[0].PitcherTeam; got != team {
		fail("history", fmt.Errorf("first record team %q, roster says %q", got, team))
	}
	fmt.Printf("✅ History: %d records, %d skipped\n", len(history.Records), len(history.Skipped))

	bundle, err := client.GameBundle(ctx, game.ID)
	if err != nil {
		fail("plays", err)
	}
	fmt.Printf("✅ Plays: %d events, %d pitches, %d hits\n", len(bundle.Events), len(bundle.Pitches), len(bundle.Hits))
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", step, err)
	os.Exit(1)
}
