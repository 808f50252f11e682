package schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/gid"
)

var sep30 = gid.Date{Year: 2012, Month: time.September, Day: 30}

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/master_scoreboard.xml")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return data
}

// stubGetter serves canned bodies by URL and records requests.
type stubGetter struct {
	bodies   map[string][]byte
	err      error
	requests []string
}

func (s *stubGetter) Fetch(_ context.Context, url string) ([]byte, error) {
	s.requests = append(s.requests, url)
	if s.err != nil {
		return nil, s.err
	}
	body, ok := s.bodies[url]
	if !ok {
		return nil, &feed.Error{Kind: feed.ErrFeedNotFound, URL: url, StatusCode: 404}
	}
	return body, nil
}

func TestParse_Fixture(t *testing.T) {
	games, err := Parse(loadFixture(t), sep30)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(games) != 15 {
		t.Fatalf("Parse() returned %d games, want 15", len(games))
	}

	nats := games[11]
	if nats.ID.String() != "2012_09_30_wasmlb_phimlb_1" {
		t.Errorf("games[11].ID = %s", nats.ID)
	}
	if nats.ID.Date != sep30 {
		t.Errorf("games[11].ID.Date = %s, want %s", nats.ID.Date, sep30)
	}
	if nats.Away.Name != "Nationals" || nats.Away.Wins != 96 || nats.Away.Losses != 62 {
		t.Errorf("games[11].Away = %+v", nats.Away)
	}
	if nats.Home.Name != "Phillies" || nats.Home.City != "Philadelphia" || nats.Home.Abbrev != "PHI" {
		t.Errorf("games[11].Home = %+v", nats.Home)
	}
	if nats.StartTime != "1:35 PM" || nats.TimeZone != "ET" {
		t.Errorf("games[11] start = %q %q", nats.StartTime, nats.TimeZone)
	}
	if nats.Status.Kind != StatusFinal {
		t.Errorf("games[11].Status = %+v", nats.Status)
	}
	if nats.Score != (Score{Away: 2, Home: 0, Posted: true}) {
		t.Errorf("games[11].Score = %+v", nats.Score)
	}

	postponed := games[13]
	if postponed.Status.Kind != StatusPostponed {
		t.Errorf("games[13].Status = %+v, postponed games must be kept", postponed.Status)
	}
	if postponed.Score.Posted {
		t.Errorf("games[13].Score = %+v, want unposted", postponed.Score)
	}

	if games[12].Status.Kind != StatusInProgress || games[14].Status.Kind != StatusScheduled {
		t.Errorf("status kinds = %q, %q", games[12].Status.Kind, games[14].Status.Kind)
	}
}

func TestParse_OrderStable(t *testing.T) {
	data := loadFixture(t)

	first, err := Parse(data, sep30)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse(data, sep30)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantOrder := []string{"tormlb", "clemlb", "minmlb", "bosmlb", "chamlb", "miamlb", "cinmlb",
		"houmlb", "milmlb", "lanmlb", "colmlb", "wasmlb", "oakmlb", "anamlb", "slnmlb"}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("game %d differs between calls: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if first[i].ID.Away != wantOrder[i] {
			t.Errorf("game %d away = %s, want %s (feed order)", i, first[i].ID.Away, wantOrder[i])
		}
	}
}

func TestParse_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		xml       string
		wantGames int
		wantErr   bool
		check     func(*testing.T, []GameSummary)
	}{
		{
			name:      "no games",
			xml:       `<games year="2012" month="12" day="25"></games>`,
			wantGames: 0,
		},
		{
			name:      "self-closing empty day",
			xml:       `<?xml version="1.0"?><games/>`,
			wantGames: 0,
		},
		{
			name: "derived id without gameday attribute",
			xml: `<games><game game_nbr="2" away_code="nya" home_code="bos" away_team_name="Yankees" away_win="1" away_loss="0"
				home_team_name="Red Sox" home_win="0" home_loss="1"><status status="Preview"/></game></games>`,
			wantGames: 1,
			check: func(t *testing.T, games []GameSummary) {
				if games[0].ID.String() != "2012_09_30_nyamlb_bosmlb_2" {
					t.Errorf("derived ID = %s", games[0].ID)
				}
			},
		},
		{
			name: "status on game element",
			xml: `<games><game gameday="2012_09_30_nyamlb_bosmlb_1" status="Suspended: Rain" away_team_name="Yankees" away_win="1" away_loss="0"
				home_team_name="Red Sox" home_win="0" home_loss="1"/></games>`,
			wantGames: 1,
			check: func(t *testing.T, games []GameSummary) {
				if games[0].Status.Kind != StatusSuspended || games[0].Status.Raw != "Suspended: Rain" {
					t.Errorf("Status = %+v", games[0].Status)
				}
			},
		},
		{
			name: "unknown status passes through",
			xml: `<games><game gameday="2012_09_30_nyamlb_bosmlb_1" away_team_name="Yankees" away_win="1" away_loss="0"
				home_team_name="Red Sox" home_win="0" home_loss="1"><status status="Umpire Review"/></game></games>`,
			wantGames: 1,
			check: func(t *testing.T, games []GameSummary) {
				if games[0].Status.Kind != StatusOther || games[0].Status.Raw != "Umpire Review" {
					t.Errorf("Status = %+v", games[0].Status)
				}
			},
		},
		{
			name: "zero-zero linescore is posted",
			xml: `<games><game gameday="2012_09_30_nyamlb_bosmlb_1" away_team_name="Yankees" away_win="1" away_loss="0"
				home_team_name="Red Sox" home_win="0" home_loss="1"><linescore><r away="0" home="0"/></linescore></game></games>`,
			wantGames: 1,
			check: func(t *testing.T, games []GameSummary) {
				if games[0].Score != (Score{Posted: true}) {
					t.Errorf("Score = %+v", games[0].Score)
				}
			},
		},
		{name: "not xml", xml: `<html><body>Oops</body></html>`, wantErr: true},
		{name: "garbage", xml: `{"games": []}`, wantErr: true},
		{name: "empty payload", xml: ``, wantErr: true},
		{
			name: "malformed gameday attribute",
			xml: `<games><game gameday="2012-09-30-nya-bos" away_team_name="Yankees" away_win="1" away_loss="0"
				home_team_name="Red Sox" home_win="0" home_loss="1"/></games>`,
			wantErr: true,
		},
		{
			name: "resumed game keeps its original id",
			xml: `<games><game gameday="2012_09_30_tormlb_balmlb_1" away_team_name="Blue Jays" away_win="1" away_loss="0"
				home_team_name="Orioles" home_win="0" home_loss="1"/>
				<game gameday="2012_09_29_nyamlb_bosmlb_1" away_team_name="Yankees" away_win="1" away_loss="0"
				home_team_name="Red Sox" home_win="0" home_loss="1"><status status="Suspended"/></game></games>`,
			wantGames: 2,
			check: func(t *testing.T, games []GameSummary) {
				if games[1].ID.String() != "2012_09_29_nyamlb_bosmlb_1" {
					t.Errorf("resumed game ID = %s", games[1].ID)
				}
				if games[1].Status.Kind != StatusSuspended {
					t.Errorf("Status = %+v", games[1].Status)
				}
			},
		},
		{
			name:    "missing team name",
			xml:     `<games><game gameday="2012_09_30_nyamlb_bosmlb_1" away_win="1" away_loss="0" home_team_name="Red Sox" home_win="0" home_loss="1"/></games>`,
			wantErr: true,
		},
		{
			name: "non-numeric wins",
			xml: `<games><game gameday="2012_09_30_nyamlb_bosmlb_1" away_team_name="Yankees" away_win="many" away_loss="0"
				home_team_name="Red Sox" home_win="0" home_loss="1"/></games>`,
			wantErr: true,
		},
		{
			name:    "no codes and no gameday",
			xml:     `<games><game away_team_name="Yankees" away_win="1" away_loss="0" home_team_name="Red Sox" home_win="0" home_loss="1"/></games>`,
			wantErr: true,
		},
		{
			name: "non-numeric runs",
			xml: `<games><game gameday="2012_09_30_nyamlb_bosmlb_1" away_team_name="Yankees" away_win="1" away_loss="0"
				home_team_name="Red Sox" home_win="0" home_loss="1"><linescore><r away="x" home="1"/></linescore></game></games>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games, err := Parse([]byte(tt.xml), sep30)
			if tt.wantErr {
				if !errors.Is(err, ErrScheduleParse) {
					t.Errorf("Parse() error = %v, want ErrScheduleParse", err)
				}
				if games != nil {
					t.Errorf("Parse() returned %d games alongside an error", len(games))
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if games == nil {
				t.Fatal("Parse() returned nil slice, want empty non-nil")
			}
			if len(games) != tt.wantGames {
				t.Fatalf("Parse() returned %d games, want %d", len(games), tt.wantGames)
			}
			if tt.check != nil {
				tt.check(t, games)
			}
		})
	}
}

func TestResolver_ListGames(t *testing.T) {
	layout := feed.Layout{GamedayBase: "http://feeds.test/mlb"}
	getter := &stubGetter{bodies: map[string][]byte{
		layout.ScheduleURL(sep30): loadFixture(t),
	}}

	games, err := NewResolver(getter, layout).ListGames(context.Background(), sep30)
	if err != nil {
		t.Fatalf("ListGames() error = %v", err)
	}
	if len(games) != 15 {
		t.Errorf("ListGames() returned %d games, want 15", len(games))
	}
	if len(getter.requests) != 1 || !strings.HasSuffix(getter.requests[0], "/year_2012/month_09/day_30/master_scoreboard.xml") {
		t.Errorf("requests = %v", getter.requests)
	}
}

func TestResolver_FetchErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name string
		kind error
	}{
		{"unavailable", feed.ErrFeedUnavailable},
		{"not found", feed.ErrFeedNotFound},
		{"server error", feed.ErrFeedServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetchErr := &feed.Error{Kind: tt.kind, URL: "u"}
			getter := &stubGetter{err: fetchErr}

			_, err := NewResolver(getter, feed.DefaultLayout()).ListGames(context.Background(), sep30)
			if err != fetchErr {
				t.Errorf("ListGames() error = %v, want the fetch error unchanged", err)
			}
			if errors.Is(err, ErrScheduleParse) {
				t.Error("fetch failure reported as parse error")
			}
		})
	}
}

func TestResolver_HTTP(t *testing.T) {
	data := loadFixture(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mlb/year_2012/month_09/day_30/master_scoreboard.xml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer server.Close()

	layout := feed.Layout{GamedayBase: server.URL + "/mlb"}
	resolver := NewResolver(feed.New(feed.Options{}), layout)

	games, err := resolver.ListGames(context.Background(), sep30)
	if err != nil {
		t.Fatalf("ListGames() error = %v", err)
	}
	if len(games) != 15 {
		t.Errorf("ListGames() returned %d games", len(games))
	}

	_, err = resolver.ListGames(context.Background(), gid.Date{Year: 2012, Month: time.December, Day: 25})
	if !errors.Is(err, feed.ErrFeedNotFound) {
		t.Errorf("ListGames(no feed) error = %v, want ErrFeedNotFound", err)
	}
}

func TestPick(t *testing.T) {
	games, err := Parse(loadFixture(t), sep30)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got, err := Pick(games, 11)
	if err != nil {
		t.Fatalf("Pick(11) error = %v", err)
	}
	if got.Away.Name != "Nationals" {
		t.Errorf("Pick(11).Away = %q, want Nationals", got.Away.Name)
	}

	for _, n := range []int{-1, 15, 100} {
		if _, err := Pick(games, n); !errors.Is(err, ErrGameIndexOutOfRange) {
			t.Errorf("Pick(%d) error = %v, want ErrGameIndexOutOfRange", n, err)
		}
	}
	if _, err := Pick(nil, 0); !errors.Is(err, ErrGameIndexOutOfRange) {
		t.Errorf("Pick(empty, 0) error = %v, want ErrGameIndexOutOfRange", err)
	}
}
