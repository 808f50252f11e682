package plays

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
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

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return data
}

// newFeedServer serves the plays fixtures under the game directory layout.
func newFeedServer(t *testing.T) (*httptest.Server, feed.Layout) {
	t.Helper()
	files := map[string]string{
		"game_events.xml":        "game_events.xml",
		"inning/inning_all.xml": "inning_all.xml",
		"inning/inning_hit.xml": "inning_hit.xml",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for suffix, name := range files {
			if strings.HasSuffix(r.URL.Path, "/gid_2012_09_30_wasmlb_phimlb_1/"+suffix) {
				w.Write(loadFixture(t, name))
				return
			}
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server, feed.Layout{GamedayBase: server.URL + "/components/game/mlb"}
}

func TestParser(t *testing.T) {
	_, layout := newFeedServer(t)
	p := NewParser(feed.New(feed.Options{}), layout)
	ctx := context.Background()

	events, err := p.Events(ctx, nationalsAtPhillies)
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 7 {
		t.Errorf("Events() returned %d, want 7", len(events))
	}

	pitches, err := p.Pitches(ctx, nationalsAtPhillies)
	if err != nil {
		t.Fatalf("Pitches() error = %v", err)
	}
	if len(pitches) != 6 {
		t.Errorf("Pitches() returned %d, want 6", len(pitches))
	}

	hits, err := p.Hits(ctx, nationalsAtPhillies)
	if err != nil {
		t.Fatalf("Hits() error = %v", err)
	}
	if len(hits) != 6 {
		t.Errorf("Hits() returned %d, want 6", len(hits))
	}
}

func TestParser_FetchError(t *testing.T) {
	_, layout := newFeedServer(t)
	p := NewParser(feed.New(feed.Options{}), layout)

	other := nationalsAtPhillies
	other.Game = 2

	if _, err := p.Events(context.Background(), other); !errors.Is(err, feed.ErrFeedNotFound) {
		t.Errorf("Events() error = %v, want ErrFeedNotFound", err)
	}
	if _, err := p.Pitches(context.Background(), other); !errors.Is(err, feed.ErrFeedNotFound) {
		t.Errorf("Pitches() error = %v, want ErrFeedNotFound", err)
	}
	if _, err := p.Hits(context.Background(), other); !errors.Is(err, feed.ErrFeedNotFound) {
		t.Errorf("Hits() error = %v, want ErrFeedNotFound", err)
	}
}

func TestParser_Cancelled(t *testing.T) {
	_, layout := newFeedServer(t)
	p := NewParser(feed.New(feed.Options{}), layout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pitches, err := p.Pitches(ctx, nationalsAtPhillies)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Pitches() error = %v, want context.Canceled", err)
	}
	if pitches != nil {
		t.Error("cancelled call returned records")
	}
}
