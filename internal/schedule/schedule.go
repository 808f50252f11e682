package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/gid"
	"github.com/pfrederiksen/gameday/internal/xmlfeed"
)

var (
	// ErrScheduleParse is returned when the scoreboard does not have the
	// expected shape.
	ErrScheduleParse = errors.New("schedule parse error")

	// ErrGameIndexOutOfRange is returned by Pick for a game number the day
	// doesn't have.
	ErrGameIndexOutOfRange = errors.New("game index out of range")
)

// TeamRecord is a team's standing as of the fetch.
type TeamRecord struct {
	Name   string `json:"name"`
	City   string `json:"city,omitempty"`
	Abbrev string `json:"abbrev,omitempty"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Score is the current run total. Posted is false until the feed publishes a
// linescore, so a 0-0 game in progress differs from one not yet started.
type Score struct {
	Away   int  `json:"away"`
	Home   int  `json:"home"`
	Posted bool `json:"posted"`
}

// GameSummary is one row of the day's schedule.
type GameSummary struct {
	ID        gid.ID     `json:"gameday_id"`
	Away      TeamRecord `json:"away"`
	Home      TeamRecord `json:"home"`
	StartTime string     `json:"start_time"`
	TimeZone  string     `json:"time_zone,omitempty"`
	Venue     string     `json:"venue,omitempty"`
	Status    Status     `json:"status"`
	Score     Score      `json:"score"`
}

// Resolver lists games by date.
type Resolver struct {
	getter feed.Getter
	layout feed.Layout
}

// NewResolver creates a Resolver reading through getter.
func NewResolver(getter feed.Getter, layout feed.Layout) *Resolver {
	return &Resolver{getter: getter, layout: layout}
}

// ListGames returns the games scheduled on date in feed order.
// Fetch failures are returned as-is.
func (r *Resolver) ListGames(ctx context.Context, date gid.Date) ([]GameSummary, error) {
	data, err := r.getter.Fetch(ctx, r.layout.ScheduleURL(date))
	if err != nil {
		return nil, err
	}
	return Parse(data, date)
}

// Pick returns game number n (zero-based) of games.
func Pick(games []GameSummary, n int) (GameSummary, error) {
	if n < 0 || n >= len(games) {
		return GameSummary{}, fmt.Errorf("%w: game %d of %d", ErrGameIndexOutOfRange, n, len(games))
	}
	return games[n], nil
}

// Parse decodes a master scoreboard document for date.
func Parse(data []byte, date gid.Date) ([]GameSummary, error) {
	root, err := xmlfeed.Parse(data, "games")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScheduleParse, err)
	}

	nodes := xmlfeed.Children(root, "game")
	games := make([]GameSummary, 0, len(nodes))
	for i, n := range nodes {
		game, err := parseGame(n, date)
		if err != nil {
			return nil, fmt.Errorf("%w: game %d: %v", ErrScheduleParse, i, err)
		}
		games = append(games, game)
	}

	return games, nil
}

func parseGame(n *xmlquery.Node, date gid.Date) (GameSummary, error) {
	id, err := gameID(n, date)
	if err != nil {
		return GameSummary{}, err
	}

	away, err := teamRecord(n, "away")
	if err != nil {
		return GameSummary{}, err
	}
	home, err := teamRecord(n, "home")
	if err != nil {
		return GameSummary{}, err
	}

	score, err := parseScore(n)
	if err != nil {
		return GameSummary{}, err
	}

	startTime := xmlfeed.String(n, "time")
	if ampm := xmlfeed.String(n, "ampm"); startTime != "" && ampm != "" {
		startTime += " " + ampm
	}

	return GameSummary{
		ID:        id,
		Away:      away,
		Home:      home,
		StartTime: startTime,
		TimeZone:  xmlfeed.String(n, "time_zone"),
		Venue:     xmlfeed.String(n, "venue"),
		Status:    ParseStatus(statusText(n)),
		Score:     score,
	}, nil
}

// gameID prefers the published gameday attribute and falls back to deriving
// the ID from the team codes and game number. A published ID keeps its own
// date: a suspended game resumed later is listed under its original ID.
func gameID(n *xmlquery.Node, date gid.Date) (gid.ID, error) {
	if raw := xmlfeed.String(n, "gameday"); raw != "" {
		return gid.Decode(raw)
	}

	awayCode, err := xmlfeed.Required(n, "away_code")
	if err != nil {
		return gid.ID{}, err
	}
	homeCode, err := xmlfeed.Required(n, "home_code")
	if err != nil {
		return gid.ID{}, err
	}
	game, err := xmlfeed.IntOr(n, "game_nbr", 1)
	if err != nil {
		return gid.ID{}, err
	}
	return gid.Encode(date, awayCode+"mlb", homeCode+"mlb", game)
}

func teamRecord(n *xmlquery.Node, side string) (TeamRecord, error) {
	name, err := xmlfeed.Required(n, side+"_team_name")
	if err != nil {
		return TeamRecord{}, err
	}
	wins, err := xmlfeed.Int(n, side+"_win")
	if err != nil {
		return TeamRecord{}, err
	}
	losses, err := xmlfeed.Int(n, side+"_loss")
	if err != nil {
		return TeamRecord{}, err
	}

	return TeamRecord{
		Name:   name,
		City:   xmlfeed.String(n, side+"_team_city"),
		Abbrev: xmlfeed.String(n, side+"_name_abbrev"),
		Wins:   wins,
		Losses: losses,
	}, nil
}

// statusText reads <status status="..."/>, falling back to a status attribute
// on the game element itself.
func statusText(n *xmlquery.Node) string {
	if s := xmlfeed.Child(n, "status"); s != nil {
		if raw := xmlfeed.String(s, "status"); raw != "" {
			return raw
		}
	}
	return xmlfeed.String(n, "status")
}

func parseScore(n *xmlquery.Node) (Score, error) {
	line := xmlfeed.Child(n, "linescore")
	if line == nil {
		return Score{}, nil
	}
	runs := xmlfeed.Child(line, "r")
	if runs == nil {
		return Score{}, nil
	}

	awayRaw, _ := xmlfeed.Attr(runs, "away")
	homeRaw, _ := xmlfeed.Attr(runs, "home")
	if awayRaw == "" && homeRaw == "" {
		return Score{}, nil
	}

	away, err := xmlfeed.Int(runs, "away")
	if err != nil {
		return Score{}, err
	}
	home, err := xmlfeed.Int(runs, "home")
	if err != nil {
		return Score{}, err
	}
	return Score{Away: away, Home: home, Posted: true}, nil
}
