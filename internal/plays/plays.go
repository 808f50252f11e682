package plays

import (
	"context"
	"errors"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/gid"
	"github.com/pfrederiksen/gameday/internal/xmlfeed"
)

// ErrEventParse is returned when a play, pitch or hit feed does not have the
// expected shape.
var ErrEventParse = errors.New("event parse error")

// Half is the half of an inning.
type Half string

const (
	Top    Half = "top"
	Bottom Half = "bottom"
)

// Parser reads a game's play feeds.
type Parser struct {
	getter feed.Getter
	layout feed.Layout
}

// NewParser creates a Parser reading through getter.
func NewParser(getter feed.Getter, layout feed.Layout) *Parser {
	return &Parser{getter: getter, layout: layout}
}

// Events returns the game's play-by-play log.
func (p *Parser) Events(ctx context.Context, id gid.ID) ([]Event, error) {
	data, err := p.getter.Fetch(ctx, p.layout.EventsURL(id))
	if err != nil {
		return nil, err
	}
	return ParseEvents(data)
}

// Pitches returns every tracked pitch of the game.
func (p *Parser) Pitches(ctx context.Context, id gid.ID) ([]Pitch, error) {
	data, err := p.getter.Fetch(ctx, p.layout.PitchesURL(id))
	if err != nil {
		return nil, err
	}
	return ParsePitches(data)
}

// Hits returns the game's hit chart.
func (p *Parser) Hits(ctx context.Context, id gid.ID) ([]Hit, error) {
	data, err := p.getter.Fetch(ctx, p.layout.HitsURL(id))
	if err != nil {
		return nil, err
	}
	return ParseHits(data)
}

type halfInning struct {
	inning int
	half   Half
	node   *xmlquery.Node
}

// halfInnings lists <inning><top/><bottom/></inning> in play order. A half
// that was not played is simply absent.
func halfInnings(root *xmlquery.Node) ([]halfInning, error) {
	var halves []halfInning
	for _, inning := range xmlfeed.Children(root, "inning") {
		num, err := xmlfeed.Int(inning, "num")
		if err != nil {
			return nil, err
		}
		for _, half := range []Half{Top, Bottom} {
			if n := xmlfeed.Child(inning, string(half)); n != nil {
				halves = append(halves, halfInning{inning: num, half: half, node: n})
			}
		}
	}
	return halves, nil
}

func parseError(feedName string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrEventParse, feedName, err)
}
