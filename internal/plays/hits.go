package plays

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/pfrederiksen/gameday/internal/xmlfeed"
)

// FieldSize is the width and height of the hit-chart diagram in pixels.
const FieldSize = 250

// Outcome is the coarse result of a batted ball. The feed's codes are not a
// closed set, so anything unrecognized is Unclassified rather than an error.
type Outcome string

const (
	OutcomeOut          Outcome = "out"
	OutcomeError        Outcome = "error"
	OutcomeHit          Outcome = "hit"
	OutcomeUnclassified Outcome = "unclassified"
)

// Classify maps a hit-chart type code to an Outcome. Markers are checked in
// the order O, E, H against the upper-cased code.
func Classify(code string) Outcome {
	c := strings.ToUpper(code)
	switch {
	case strings.Contains(c, "O"):
		return OutcomeOut
	case strings.Contains(c, "E"):
		return OutcomeError
	case strings.Contains(c, "H"):
		return OutcomeHit
	default:
		return OutcomeUnclassified
	}
}

// Hit is one batted ball on the hit chart.
type Hit struct {
	Inning      int     `json:"inning"`
	Half        Half    `json:"half"`
	Pitcher     string  `json:"pitcher"`
	Batter      string  `json:"batter"`
	Outcome     Outcome `json:"outcome"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// ParseHits decodes an inning_hit.xml document.
func ParseHits(data []byte) ([]Hit, error) {
	root, err := xmlfeed.Parse(data, "hitchart")
	if err != nil {
		return nil, parseError("inning_hit", err)
	}

	hits := []Hit{}
	for i, n := range xmlfeed.Children(root, "hip") {
		h, err := parseHit(n)
		if err != nil {
			return nil, parseError("inning_hit", fmt.Errorf("hip %d: %w", i+1, err))
		}
		hits = append(hits, h)
	}
	return hits, nil
}

func parseHit(n *xmlquery.Node) (Hit, error) {
	inning, err := xmlfeed.Int(n, "inning")
	if err != nil {
		return Hit{}, err
	}
	x, err := xmlfeed.Float(n, "x")
	if err != nil {
		return Hit{}, err
	}
	y, err := xmlfeed.Float(n, "y")
	if err != nil {
		return Hit{}, err
	}

	var half Half
	switch team := xmlfeed.String(n, "team"); team {
	case "A":
		half = Top
	case "H":
		half = Bottom
	default:
		return Hit{}, fmt.Errorf("<hip> team %q is neither A nor H", team)
	}

	code := xmlfeed.String(n, "type")
	return Hit{
		Inning:      inning,
		Half:        half,
		Pitcher:     xmlfeed.String(n, "pitcher"),
		Batter:      xmlfeed.String(n, "batter"),
		Outcome:     Classify(code),
		Code:        code,
		Description: xmlfeed.String(n, "des"),
		X:           x,
		Y:           y,
	}, nil
}
