package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/gid"
	"github.com/pfrederiksen/gameday/internal/xmlfeed"
)

const pitcherPosition = "P"

var (
	// ErrRosterParse is returned when players.xml does not have the expected shape.
	ErrRosterParse = errors.New("roster parse error")

	// ErrPitcherNotFound is returned by GetPitcher for an id absent from the roster.
	ErrPitcherNotFound = errors.New("pitcher not found")
)

// PitcherInfo identifies one pitcher within a game.
type PitcherInfo struct {
	ID     string `json:"id"`
	Team   string `json:"team"`
	Name   string `json:"name"`
	Throws string `json:"throws,omitempty"`
}

// Lister reads game rosters.
type Lister struct {
	getter feed.Getter
	layout feed.Layout
}

// NewLister creates a Lister reading through getter.
func NewLister(getter feed.Getter, layout feed.Layout) *Lister {
	return &Lister{getter: getter, layout: layout}
}

// ListPitchers returns every pitcher on either roster, keyed by player id.
func (l *Lister) ListPitchers(ctx context.Context, id gid.ID) (map[string]PitcherInfo, error) {
	data, err := l.getter.Fetch(ctx, l.layout.RosterURL(id))
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// GetPitcher returns one pitcher from the game's roster.
func (l *Lister) GetPitcher(ctx context.Context, id gid.ID, pitcherID string) (PitcherInfo, error) {
	pitchers, err := l.ListPitchers(ctx, id)
	if err != nil {
		return PitcherInfo{}, err
	}
	return Lookup(pitchers, pitcherID)
}

// Lookup finds pitcherID in an already fetched roster.
func Lookup(pitchers map[string]PitcherInfo, pitcherID string) (PitcherInfo, error) {
	p, ok := pitchers[strings.TrimSpace(pitcherID)]
	if !ok {
		return PitcherInfo{}, fmt.Errorf("%w: %q", ErrPitcherNotFound, pitcherID)
	}
	return p, nil
}

// Parse decodes a players.xml document.
//
// When the same id appears more than once the later entry replaces the
// earlier one. The feed has never been seen to do this on purpose, so the
// rule is kept simple rather than merging.
func Parse(data []byte) (map[string]PitcherInfo, error) {
	root, err := xmlfeed.Parse(data, "game")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRosterParse, err)
	}

	teams := xmlfeed.Children(root, "team")
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: no <team> elements", ErrRosterParse)
	}

	pitchers := make(map[string]PitcherInfo)
	for _, team := range teams {
		code, err := xmlfeed.Required(team, "id")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRosterParse, err)
		}

		for _, player := range xmlfeed.Children(team, "player") {
			if !strings.EqualFold(xmlfeed.String(player, "position"), pitcherPosition) {
				continue
			}
			p, err := parsePitcher(player, code)
			if err != nil {
				return nil, fmt.Errorf("%w: team %s: %v", ErrRosterParse, code, err)
			}
			pitchers[p.ID] = p
		}
	}

	return pitchers, nil
}

func parsePitcher(n *xmlquery.Node, team string) (PitcherInfo, error) {
	id, err := xmlfeed.Required(n, "id")
	if err != nil {
		return PitcherInfo{}, err
	}

	name := strings.TrimSpace(xmlfeed.String(n, "first") + " " + xmlfeed.String(n, "last"))
	if name == "" {
		name = xmlfeed.String(n, "boxname")
	}
	if name == "" {
		return PitcherInfo{}, fmt.Errorf("player %s has no name", id)
	}

	return PitcherInfo{
		ID:     id,
		Team:   team,
		Name:   name,
		Throws: xmlfeed.String(n, "rl"),
	}, nil
}
