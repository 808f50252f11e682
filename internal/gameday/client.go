package gameday

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/gid"
	"github.com/pfrederiksen/gameday/internal/logger"
	"github.com/pfrederiksen/gameday/internal/plays"
	"github.com/pfrederiksen/gameday/internal/roster"
	"github.com/pfrederiksen/gameday/internal/schedule"
	"github.com/pfrederiksen/gameday/internal/tendency"
	"golang.org/x/sync/errgroup"
)

// Client reads every Gameday feed for a caller.
type Client struct {
	schedule *schedule.Resolver
	roster   *roster.Lister
	tendency *tendency.Aggregator
	plays    *plays.Parser
}

// New creates a Client. log receives warnings about skipped tendency rows and
// may be nil to use the default logger.
func New(getter feed.Getter, layout feed.Layout, log *logger.Logger) *Client {
	return &Client{
		schedule: schedule.NewResolver(getter, layout),
		roster:   roster.NewLister(getter, layout),
		tendency: tendency.NewAggregator(getter, layout, log),
		plays:    plays.NewParser(getter, layout),
	}
}

// ListGames returns date's games in feed order.
func (c *Client) ListGames(ctx context.Context, date gid.Date) ([]schedule.GameSummary, error) {
	return c.schedule.ListGames(ctx, date)
}

// Game returns game number n (zero-based) of date.
func (c *Client) Game(ctx context.Context, date gid.Date, n int) (schedule.GameSummary, error) {
	games, err := c.schedule.ListGames(ctx, date)
	if err != nil {
		return schedule.GameSummary{}, err
	}
	return schedule.Pick(games, n)
}

// ListPitchers returns every pitcher on either roster of game id.
func (c *Client) ListPitchers(ctx context.Context, id gid.ID) (map[string]roster.PitcherInfo, error) {
	return c.roster.ListPitchers(ctx, id)
}

// GetPitcher returns one pitcher from game id's roster.
func (c *Client) GetPitcher(ctx context.Context, id gid.ID, pitcherID string) (roster.PitcherInfo, error) {
	return c.roster.GetPitcher(ctx, id, pitcherID)
}

// GetPitcherHistory returns pitcherID's appearances through game id.
func (c *Client) GetPitcherHistory(ctx context.Context, id gid.ID, pitcherID string) (*tendency.History, error) {
	return c.tendency.History(ctx, id, pitcherID)
}

// ListEvents returns game id's play-by-play log.
func (c *Client) ListEvents(ctx context.Context, id gid.ID) ([]plays.Event, error) {
	return c.plays.Events(ctx, id)
}

// ListPitches returns every tracked pitch of game id.
func (c *Client) ListPitches(ctx context.Context, id gid.ID) ([]plays.Pitch, error) {
	return c.plays.Pitches(ctx, id)
}

// ListHits returns game id's hit chart.
func (c *Client) ListHits(ctx context.Context, id gid.ID) ([]plays.Hit, error) {
	return c.plays.Hits(ctx, id)
}

// Bundle holds the three play feeds of one game.
type Bundle struct {
	ID      gid.ID        `json:"gameday_id"`
	Events  []plays.Event `json:"events"`
	Pitches []plays.Pitch `json:"pitches"`
	Hits    []plays.Hit   `json:"hits"`
}

// GameBundle fetches events, pitches and hits concurrently. The first failure
// cancels the other fetches and no partial bundle is returned.
func (c *Client) GameBundle(ctx context.Context, id gid.ID) (*Bundle, error) {
	var (
		events  []plays.Event
		pitches []plays.Pitch
		hits    []plays.Hit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = c.plays.Events(gctx, id)
		if err != nil {
			return fmt.Errorf("fetching events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pitches, err = c.plays.Pitches(gctx, id)
		if err != nil {
			return fmt.Errorf("fetching pitches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		hits, err = c.plays.Hits(gctx, id)
		if err != nil {
			return fmt.Errorf("fetching hits: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Bundle{ID: id, Events: events, Pitches: pitches, Hits: hits}, nil
}
