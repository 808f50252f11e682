package plays

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/pfrederiksen/gameday/internal/xmlfeed"
)

// EventKind tells an at-bat result from an in-play action such as a
// substitution or stolen base.
type EventKind string

const (
	KindAtBat  EventKind = "atbat"
	KindAction EventKind = "action"
)

// Event is one entry of the play-by-play log.
type Event struct {
	Time        string    `json:"time,omitempty"`
	Inning      int       `json:"inning"`
	Half        Half      `json:"half"`
	Number      int       `json:"number"`
	Balls       int       `json:"balls"`
	Strikes     int       `json:"strikes"`
	Outs        int       `json:"outs"`
	Kind        EventKind `json:"kind"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description"`
}

// ParseEvents decodes a game_events.xml document.
func ParseEvents(data []byte) ([]Event, error) {
	root, err := xmlfeed.Parse(data, "game")
	if err != nil {
		return nil, parseError("game_events", err)
	}

	halves, err := halfInnings(root)
	if err != nil {
		return nil, parseError("game_events", err)
	}

	events := []Event{}
	for _, h := range halves {
		for _, n := range xmlfeed.Elements(h.node) {
			var kind EventKind
			switch n.Data {
			case "atbat":
				kind = KindAtBat
			case "action":
				kind = KindAction
			default:
				continue
			}
			evt, err := parseEvent(n, h, kind)
			if err != nil {
				return nil, parseError("game_events", fmt.Errorf("inning %d %s: %w", h.inning, h.half, err))
			}
			events = append(events, evt)
		}
	}
	return events, nil
}

func parseEvent(n *xmlquery.Node, h halfInning, kind EventKind) (Event, error) {
	evt := Event{
		Inning:      h.inning,
		Half:        h.half,
		Kind:        kind,
		Name:        xmlfeed.String(n, "event"),
		Description: xmlfeed.String(n, "des"),
		Time:        xmlfeed.String(n, "tfs_zulu"),
	}
	if evt.Time == "" {
		evt.Time = xmlfeed.String(n, "start_tfs_zulu")
	}

	var err error
	if evt.Number, err = eventNumber(n); err != nil {
		return Event{}, err
	}
	if evt.Balls, err = xmlfeed.Int(n, "b"); err != nil {
		return Event{}, err
	}
	if evt.Strikes, err = xmlfeed.Int(n, "s"); err != nil {
		return Event{}, err
	}
	if evt.Outs, err = xmlfeed.Int(n, "o"); err != nil {
		return Event{}, err
	}
	return evt, nil
}

// eventNumber prefers the game-wide event_num and falls back to num.
func eventNumber(n *xmlquery.Node) (int, error) {
	if v, ok := xmlfeed.Attr(n, "event_num"); ok && v != "" {
		return xmlfeed.Int(n, "event_num")
	}
	return xmlfeed.Int(n, "num")
}
