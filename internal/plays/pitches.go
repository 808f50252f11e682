package plays

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/pfrederiksen/gameday/internal/xmlfeed"
)

// Pitch is one tracked pitch. Units are the feed's: mph, feet, inches for
// pfx and break, degrees and rpm for spin.
type Pitch struct {
	Time        string `json:"time,omitempty"`
	Inning      int    `json:"inning"`
	Half        Half   `json:"half"`
	AtBat       int    `json:"at_bat"`
	ID          int    `json:"id"`
	Pitcher     string `json:"pitcher"`
	Batter      string `json:"batter"`
	Description string `json:"description"`
	Result      string `json:"result"`

	PitchType      string  `json:"pitch_type,omitempty"`
	TypeConfidence Measure `json:"type_confidence"`

	StartSpeed Measure `json:"start_speed"`
	EndSpeed   Measure `json:"end_speed"`
	SzTop      Measure `json:"sz_top"`
	SzBot      Measure `json:"sz_bot"`
	PfxX       Measure `json:"pfx_x"`
	PfxZ       Measure `json:"pfx_z"`
	Px         Measure `json:"px"`
	Pz         Measure `json:"pz"`
	X0         Measure `json:"x0"`
	Y0         Measure `json:"y0"`
	Z0         Measure `json:"z0"`
	VX0        Measure `json:"vx0"`
	VY0        Measure `json:"vy0"`
	VZ0        Measure `json:"vz0"`
	AX         Measure `json:"ax"`
	AY         Measure `json:"ay"`
	AZ         Measure `json:"az"`

	BreakY      Measure `json:"break_y"`
	BreakAngle  Measure `json:"break_angle"`
	BreakLength Measure `json:"break_length"`
	SpinDir     Measure `json:"spin_dir"`
	SpinRate    Measure `json:"spin_rate"`
	Zone        Measure `json:"zone"`
	Nasty       Measure `json:"nasty"`

	// X and Y locate the pitch on the broadcast strike-zone plot.
	X Measure `json:"x"`
	Y Measure `json:"y"`

	CC string `json:"cc,omitempty"`
	MT string `json:"mt,omitempty"`
}

// ParsePitches decodes an inning_all.xml document.
func ParsePitches(data []byte) ([]Pitch, error) {
	root, err := xmlfeed.Parse(data, "game")
	if err != nil {
		return nil, parseError("inning_all", err)
	}

	halves, err := halfInnings(root)
	if err != nil {
		return nil, parseError("inning_all", err)
	}

	pitches := []Pitch{}
	for _, h := range halves {
		for _, ab := range xmlfeed.Children(h.node, "atbat") {
			num, err := xmlfeed.Int(ab, "num")
			if err != nil {
				return nil, parseError("inning_all", fmt.Errorf("inning %d %s: %w", h.inning, h.half, err))
			}
			pitcher := xmlfeed.String(ab, "pitcher")
			batter := xmlfeed.String(ab, "batter")

			for _, n := range xmlfeed.Children(ab, "pitch") {
				p, err := parsePitch(n)
				if err != nil {
					return nil, parseError("inning_all", fmt.Errorf("at-bat %d: %w", num, err))
				}
				p.Inning, p.Half, p.AtBat = h.inning, h.half, num
				p.Pitcher, p.Batter = pitcher, batter
				pitches = append(pitches, p)
			}
		}
	}
	return pitches, nil
}

func parsePitch(n *xmlquery.Node) (Pitch, error) {
	id, err := xmlfeed.Int(n, "id")
	if err != nil {
		return Pitch{}, err
	}

	return Pitch{
		Time:           xmlfeed.String(n, "tfs_zulu"),
		ID:             id,
		Description:    xmlfeed.String(n, "des"),
		Result:         xmlfeed.String(n, "type"),
		PitchType:      xmlfeed.String(n, "pitch_type"),
		TypeConfidence: measure(n, "type_confidence"),
		StartSpeed:     measure(n, "start_speed"),
		EndSpeed:       measure(n, "end_speed"),
		SzTop:          measure(n, "sz_top"),
		SzBot:          measure(n, "sz_bot"),
		PfxX:           measure(n, "pfx_x"),
		PfxZ:           measure(n, "pfx_z"),
		Px:             measure(n, "px"),
		Pz:             measure(n, "pz"),
		X0:             measure(n, "x0"),
		Y0:             measure(n, "y0"),
		Z0:             measure(n, "z0"),
		VX0:            measure(n, "vx0"),
		VY0:            measure(n, "vy0"),
		VZ0:            measure(n, "vz0"),
		AX:             measure(n, "ax"),
		AY:             measure(n, "ay"),
		AZ:             measure(n, "az"),
		BreakY:         measure(n, "break_y"),
		BreakAngle:     measure(n, "break_angle"),
		BreakLength:    measure(n, "break_length"),
		SpinDir:        measure(n, "spin_dir"),
		SpinRate:       measure(n, "spin_rate"),
		Zone:           measure(n, "zone"),
		Nasty:          measure(n, "nasty"),
		X:              measure(n, "x"),
		Y:              measure(n, "y"),
		CC:             xmlfeed.String(n, "cc"),
		MT:             xmlfeed.String(n, "mt"),
	}, nil
}
