package feed

import (
	"fmt"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/pfrederiksen/gameday/internal/gid"
)

const (
	DefaultGamedayBase  = "http://gd2.mlb.com/components/game/mlb"
	DefaultTendencyBase = "http://www.brooksbaseball.net"
)

// Layout maps dates and game IDs to feed URLs.
//
//	{GamedayBase}/year_2012/month_09/day_30/master_scoreboard.xml
//	{GamedayBase}/year_2012/month_09/day_30/gid_2012_09_30_wasmlb_phimlb_1/players.xml
//	{TendencyBase}/tabs.php?player=467100&game=gid_2012_09_30_wasmlb_phimlb_1/...
type Layout struct {
	GamedayBase  string
	TendencyBase string
}

// DefaultLayout points at the public feed hosts.
func DefaultLayout() Layout {
	return Layout{GamedayBase: DefaultGamedayBase, TendencyBase: DefaultTendencyBase}
}

// DayURL is the directory holding every game of date.
func (l Layout) DayURL(date gid.Date) string {
	return fmt.Sprintf("%s/year_%04d/month_%02d/day_%02d/",
		strings.TrimRight(l.GamedayBase, "/"), date.Year, int(date.Month), date.Day)
}

// GameURL is the directory of one game.
func (l Layout) GameURL(id gid.ID) string {
	return l.DayURL(id.Date) + id.Dir() + "/"
}

// ScheduleURL is the day's master scoreboard.
func (l Layout) ScheduleURL(date gid.Date) string {
	return l.DayURL(date) + "master_scoreboard.xml"
}

// RosterURL lists every player dressed for the game.
func (l Layout) RosterURL(id gid.ID) string {
	return l.GameURL(id) + "players.xml"
}

// EventsURL is the play-by-play event log.
func (l Layout) EventsURL(id gid.ID) string {
	return l.GameURL(id) + "game_events.xml"
}

// PitchesURL holds every at-bat with its pitches.
func (l Layout) PitchesURL(id gid.ID) string {
	return l.GameURL(id) + "inning/inning_all.xml"
}

// HitsURL is the hit chart.
func (l Layout) HitsURL(id gid.ID) string {
	return l.GameURL(id) + "inning/inning_hit.xml"
}

// tabsQuery is the tabs.php query for a per-game summary table.
type tabsQuery struct {
	Player string `url:"player"`
	Game   string `url:"game"`
	Time   string `url:"time"`
	Var    string `url:"var"`
}

// TendencyURL is the pitcher's per-game pitch-type summary through id.
func (l Layout) TendencyURL(id gid.ID, pitcherID string) string {
	// query.Values only fails for non-struct input.
	q, _ := query.Values(tabsQuery{
		Player: pitcherID,
		Game:   id.Dir() + "/",
		Time:   "game",
		Var:    "summary",
	})
	return strings.TrimRight(l.TendencyBase, "/") + "/tabs.php?" + q.Encode()
}
