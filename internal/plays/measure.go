package plays

import (
	"encoding/json"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/pfrederiksen/gameday/internal/xmlfeed"
)

// Measure is a feed-reported number that may be missing.
type Measure struct {
	Value float64
	Valid bool
}

// Some returns a present Measure.
func Some(v float64) Measure {
	return Measure{Value: v, Valid: true}
}

// Or returns the value, or def when absent.
func (m Measure) Or(def float64) float64 {
	if !m.Valid {
		return def
	}
	return m.Value
}

func (m Measure) String() string {
	if !m.Valid {
		return "-"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// MarshalJSON encodes an absent value as null.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON reads null as absent.
func (m *Measure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Measure{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Some(v)
	return nil
}

// measure reads an optional numeric attribute. Blank and unparseable values
// count as absent.
func measure(n *xmlquery.Node, name string) Measure {
	v, ok := xmlfeed.OptionalFloat(n, name)
	return Measure{Value: v, Valid: ok}
}
