package roster

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/gid"
)

var nationalsAtPhillies = gid.ID{
	Date: gid.Date{Year: 2012, Month: time.September, Day: 30},
	Away: "wasmlb",
	Home: "phimlb",
	Game: 1,
}

type stubGetter struct {
	body []byte
	err  error
	urls []string
}

func (s *stubGetter) Fetch(_ context.Context, url string) ([]byte, error) {
	s.urls = append(s.urls, url)
	return s.body, s.err
}

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/players.xml")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return data
}

func TestParse_Fixture(t *testing.T) {
	pitchers, err := Parse(loadFixture(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(pitchers) != 6 {
		t.Errorf("Parse() returned %d pitchers, want 6", len(pitchers))
	}

	want := map[string]PitcherInfo{
		"467100": {ID: "467100", Team: "WAS", Name: "Ross Detwiler", Throws: "L"},
		"453343": {ID: "453343", Team: "WAS", Name: "Drew Storen", Throws: "R"},
		"430935": {ID: "430935", Team: "PHI", Name: "Cole Hamels", Throws: "L"},
		"501957": {ID: "501957", Team: "PHI", Name: "Aumont", Throws: "R"},
	}
	for id, w := range want {
		if got := pitchers[id]; got != w {
			t.Errorf("pitchers[%s] = %+v, want %+v", id, got, w)
		}
	}

	for _, nonPitcher := range []string{"407812", "475582", "408234", "116735", "427520"} {
		if _, ok := pitchers[nonPitcher]; ok {
			t.Errorf("non-pitcher %s included", nonPitcher)
		}
	}
}

func TestParse_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		want    map[string]PitcherInfo
		wantErr bool
	}{
		{
			name: "duplicate id last wins",
			xml: `<game><team id="WAS"><player id="1" first="Old" last="Name" position="P"/></team>
				<team id="PHI"><player id="1" first="New" last="Name" position="P"/></team></game>`,
			want: map[string]PitcherInfo{"1": {ID: "1", Team: "PHI", Name: "New Name"}},
		},
		{
			name: "lowercase position",
			xml:  `<game><team id="WAS"><player id="7" first="A" last="B" position="p"/></team></game>`,
			want: map[string]PitcherInfo{"7": {ID: "7", Team: "WAS", Name: "A B"}},
		},
		{
			name: "team with no pitchers",
			xml:  `<game><team id="WAS"><player id="7" first="A" last="B" position="C"/></team></game>`,
			want: map[string]PitcherInfo{},
		},
		{name: "no teams", xml: `<game venue="x"></game>`, wantErr: true},
		{name: "wrong root", xml: `<games><team id="WAS"/></games>`, wantErr: true},
		{name: "html error page", xml: `<!DOCTYPE html><html><body>404</body></html>`, wantErr: true},
		{name: "empty", xml: ``, wantErr: true},
		{name: "team without id", xml: `<game><team name="Nats"><player id="1" first="A" last="B" position="P"/></team></game>`, wantErr: true},
		{name: "pitcher without id", xml: `<game><team id="WAS"><player first="A" last="B" position="P"/></team></game>`, wantErr: true},
		{name: "pitcher without any name", xml: `<game><team id="WAS"><player id="9" position="P"/></team></game>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.xml))
			if tt.wantErr {
				if !errors.Is(err, ErrRosterParse) {
					t.Errorf("Parse() error = %v, want ErrRosterParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() returned %d pitchers, want %d", len(got), len(tt.want))
			}
			for id, w := range tt.want {
				if got[id] != w {
					t.Errorf("pitchers[%s] = %+v, want %+v", id, got[id], w)
				}
			}
		})
	}
}

func TestLister(t *testing.T) {
	layout := feed.Layout{GamedayBase: "http://feeds.test/mlb"}
	getter := &stubGetter{body: loadFixture(t)}
	lister := NewLister(getter, layout)

	pitchers, err := lister.ListPitchers(context.Background(), nationalsAtPhillies)
	if err != nil {
		t.Fatalf("ListPitchers() error = %v", err)
	}
	if pitchers["467100"].Name != "Ross Detwiler" {
		t.Errorf("ListPitchers()[467100] = %+v", pitchers["467100"])
	}
	if getter.urls[0] != layout.RosterURL(nationalsAtPhillies) {
		t.Errorf("fetched %q, want %q", getter.urls[0], layout.RosterURL(nationalsAtPhillies))
	}

	p, err := lister.GetPitcher(context.Background(), nationalsAtPhillies, "467100")
	if err != nil {
		t.Fatalf("GetPitcher() error = %v", err)
	}
	if p.Team != "WAS" {
		t.Errorf("GetPitcher().Team = %q, want WAS", p.Team)
	}

	_, err = lister.GetPitcher(context.Background(), nationalsAtPhillies, "999999")
	if !errors.Is(err, ErrPitcherNotFound) {
		t.Errorf("GetPitcher(unknown) error = %v, want ErrPitcherNotFound", err)
	}

	// Non-pitchers are not found either.
	_, err = lister.GetPitcher(context.Background(), nationalsAtPhillies, "407812")
	if !errors.Is(err, ErrPitcherNotFound) {
		t.Errorf("GetPitcher(first baseman) error = %v, want ErrPitcherNotFound", err)
	}
}

func TestLister_FetchError(t *testing.T) {
	fetchErr := &feed.Error{Kind: feed.ErrFeedServerError, URL: "u", StatusCode: 502}
	lister := NewLister(&stubGetter{err: fetchErr}, feed.DefaultLayout())

	_, err := lister.GetPitcher(context.Background(), nationalsAtPhillies, "467100")
	if !errors.Is(err, feed.ErrFeedServerError) {
		t.Errorf("GetPitcher() error = %v, want ErrFeedServerError", err)
	}
	if errors.Is(err, ErrPitcherNotFound) || errors.Is(err, ErrRosterParse) {
		t.Error("transport failure misreported as lookup/parse failure")
	}
}
