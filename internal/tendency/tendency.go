package tendency

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/gid"
	"github.com/pfrederiksen/gameday/internal/logger"
)

var (
	// ErrTendencyParse is returned when the page has no table with the
	// expected columns.
	ErrTendencyParse = errors.New("tendency parse error")

	// ErrTendencyFieldParse is matched by every *FieldError.
	ErrTendencyFieldParse = errors.New("tendency field parse error")
)

// Columns is the header set a history table must carry, in the order the
// feed prints them.
var Columns = []string{
	"pitcher", "team", "game", "away", "home", "pitches", "type", "count",
	"velo", "h_mov", "v_mov", "pfx_x", "pfx_z", "vx0", "vy0", "vz0", "x0", "z0",
}

// Record is one pitch type thrown in one appearance.
type Record struct {
	PitcherName string   `json:"pitcher_name"`
	PitcherTeam string   `json:"pitcher_team"`
	Game        gid.ID   `json:"game"`
	Date        gid.Date `json:"date"`
	Away        string   `json:"away"`
	Home        string   `json:"home"`
	Pitches     int      `json:"pitches"`
	PitchType   string   `json:"pitch_type"`
	TypeCount   int      `json:"type_count"`
	AvgSpeed    float64  `json:"avg_speed"`
	HMov        float64  `json:"h_mov"`
	VMov        float64  `json:"v_mov"`
	PfxX        float64  `json:"pfx_x"`
	PfxZ        float64  `json:"pfx_z"`
	VX0         float64  `json:"vx0"`
	VY0         float64  `json:"vy0"`
	VZ0         float64  `json:"vz0"`
	X0          float64  `json:"x0"`
	Z0          float64  `json:"z0"`
}

// History is the parsed page. Skipped holds the rows that could not be read.
type History struct {
	Records []Record      `json:"records"`
	Skipped []*FieldError `json:"skipped,omitempty"`
}

// FieldError reports one unreadable row. Row counts data rows from 1.
type FieldError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
	Err   error  `json:"-"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("tendency row %d: field %s: %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrTendencyFieldParse, e.Err}
}

// MarshalJSON adds the cause as a string.
func (e *FieldError) MarshalJSON() ([]byte, error) {
	type alias FieldError
	out := struct {
		alias
		Error string `json:"error,omitempty"`
	}{alias: alias(*e)}
	if e.Err != nil {
		out.Error = e.Err.Error()
	}
	return json.Marshal(out)
}

// Aggregator reads pitcher histories.
type Aggregator struct {
	getter feed.Getter
	layout feed.Layout
	log    *logger.Logger
}

// NewAggregator creates an Aggregator reading through getter. Skipped rows are
// logged to log, or to the default logger when log is nil.
func NewAggregator(getter feed.Getter, layout feed.Layout, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Default()
	}
	return &Aggregator{getter: getter, layout: layout, log: log}
}

// History returns pitcherID's appearances up to and including game id.
func (a *Aggregator) History(ctx context.Context, id gid.ID, pitcherID string) (*History, error) {
	data, err := a.getter.Fetch(ctx, a.layout.TendencyURL(id, pitcherID))
	if err != nil {
		return nil, err
	}

	h, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("pitcher %s: %w", pitcherID, err)
	}

	for _, fe := range h.Skipped {
		a.log.Warn("Skipped tendency row", logger.Fields{
			"game":    id.String(),
			"pitcher": pitcherID,
			"row":     fe.Row,
			"field":   fe.Field,
			"value":   fe.Value,
		})
	}
	return h, nil
}

// Parse reads a tabs.php page. A qualifying table with no data rows is an
// empty history, not an error.
func Parse(data []byte) (*History, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %v", ErrTendencyParse, err)
	}

	var (
		rows    *goquery.Selection
		columns map[string]int
	)
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		r := ownRows(t)
		if cols, ok := headerColumns(r.First()); ok {
			rows, columns = r, cols
			return false
		}
		return true
	})
	if rows == nil {
		return nil, fmt.Errorf("%w: no table with columns %s", ErrTendencyParse, strings.Join(Columns, ","))
	}

	h := &History{Records: []Record{}}
	row := 0
	// The first row is the header, whether it uses th or td cells.
	rows.Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() == 0 {
			// spacer
			return
		}
		row++

		values := make([]string, cells.Length())
		cells.Each(func(i int, td *goquery.Selection) {
			values[i] = strings.TrimSpace(td.Text())
		})

		rec, fe := parseRow(row, values, columns)
		if fe != nil {
			h.Skipped = append(h.Skipped, fe)
			return
		}
		h.Records = append(h.Records, rec)
	})

	return h, nil
}

// ownRows returns the rows of t in document order, leaving out rows of any
// table nested inside it.
func ownRows(t *goquery.Selection) *goquery.Selection {
	table := t.Get(0)
	return t.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").Get(0) == table
	})
}

// headerColumns maps each required column to its cell index if header names
// them all.
func headerColumns(header *goquery.Selection) (map[string]int, bool) {
	if header.Length() == 0 {
		return nil, false
	}

	index := make(map[string]int)
	header.ChildrenFiltered("th, td").Each(func(i int, cell *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(cell.Text()))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	})

	for _, c := range Columns {
		if _, ok := index[c]; !ok {
			return nil, false
		}
	}
	return index, true
}

// rowReader pulls typed cells out of one row, stopping at the first failure.
type rowReader struct {
	row     int
	values  []string
	columns map[string]int
	err     *FieldError
}

func (r *rowReader) text(field string) string {
	if r.err != nil {
		return ""
	}
	i := r.columns[field]
	if i >= len(r.values) {
		r.err = &FieldError{Row: r.row, Field: field, Err: errors.New("missing cell")}
		return ""
	}
	return r.values[i]
}

func (r *rowReader) integer(field string) int {
	s := r.text(field)
	if r.err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		r.err = &FieldError{Row: r.row, Field: field, Value: s, Err: numError(err)}
	}
	return n
}

func (r *rowReader) float(field string) float64 {
	s := r.text(field)
	if r.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = &FieldError{Row: r.row, Field: field, Value: s, Err: numError(err)}
	} else if math.IsNaN(f) || math.IsInf(f, 0) {
		r.err = &FieldError{Row: r.row, Field: field, Value: s, Err: errors.New("not a finite number")}
	}
	return f
}

func (r *rowReader) game(field string) gid.ID {
	s := r.text(field)
	if r.err != nil {
		return gid.ID{}
	}
	id, err := gid.Decode(strings.TrimSuffix(s, "/"))
	if err != nil {
		r.err = &FieldError{Row: r.row, Field: field, Value: s, Err: err}
	}
	return id
}

func parseRow(row int, values []string, columns map[string]int) (Record, *FieldError) {
	r := &rowReader{row: row, values: values, columns: columns}

	rec := Record{
		PitcherName: r.text("pitcher"),
		PitcherTeam: r.text("team"),
		Game:        r.game("game"),
		Away:        r.text("away"),
		Home:        r.text("home"),
		Pitches:     r.integer("pitches"),
		PitchType:   r.text("type"),
		TypeCount:   r.integer("count"),
		AvgSpeed:    r.float("velo"),
		HMov:        r.float("h_mov"),
		VMov:        r.float("v_mov"),
		PfxX:        r.float("pfx_x"),
		PfxZ:        r.float("pfx_z"),
		VX0:         r.float("vx0"),
		VY0:         r.float("vy0"),
		VZ0:         r.float("vz0"),
		X0:          r.float("x0"),
		Z0:          r.float("z0"),
	}
	if r.err != nil {
		return Record{}, r.err
	}
	rec.Date = rec.Game.Date
	return rec, nil
}

// numError drops strconv's own quoting of the input, which FieldError
// already carries.
func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
