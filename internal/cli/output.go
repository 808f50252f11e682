package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/pfrederiksen/gameday/internal/gameday"
	"github.com/pfrederiksen/gameday/internal/plays"
	"github.com/pfrederiksen/gameday/internal/roster"
	"github.com/pfrederiksen/gameday/internal/schedule"
	"github.com/pfrederiksen/gameday/internal/tendency"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// WriteOutput writes v as indented JSON or hands it to text.
func WriteOutput(w io.Writer, v interface{}, format OutputFormat, text func(io.Writer) error) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatText:
		return text(w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeGamesText(w io.Writer, games []schedule.GameSummary) error {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games found.")
		return nil
	}

	tw := table(w)
	fmt.Fprintln(tw, "#\tAWAY\tHOME\tSTART\tSTATUS\tSCORE\tGAMEDAY ID")
	for i, g := range games {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i, team(g.Away), team(g.Home), start(g), g.Status, score(g.Score), g.ID)
	}
	return tw.Flush()
}

func team(t schedule.TeamRecord) string {
	return fmt.Sprintf("%s (%d-%d)", t.Name, t.Wins, t.Losses)
}

func start(g schedule.GameSummary) string {
	return strings.TrimSpace(g.StartTime + " " + g.TimeZone)
}

func score(s schedule.Score) string {
	if !s.Posted {
		return "-"
	}
	return fmt.Sprintf("%d-%d", s.Away, s.Home)
}

func writePitchersText(w io.Writer, pitchers map[string]roster.PitcherInfo) error {
	if len(pitchers) == 0 {
		fmt.Fprintln(w, "No pitchers found.")
		return nil
	}

	sorted := sortedPitchers(pitchers)
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTEAM\tNAME\tTHROWS")
	for _, p := range sorted {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Team, p.Name, p.Throws)
	}
	return tw.Flush()
}

// sortedPitchers orders a roster by team, then name, for stable output.
func sortedPitchers(pitchers map[string]roster.PitcherInfo) []roster.PitcherInfo {
	out := make([]roster.PitcherInfo, 0, len(pitchers))
	for _, p := range pitchers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func writeHistoryText(w io.Writer, h *tendency.History, verbose bool) error {
	if len(h.Records) == 0 {
		fmt.Fprintln(w, "No appearances found.")
	} else {
		tw := table(w)
		fmt.Fprintln(tw, "DATE\tPITCHER\tTEAM\tMATCHUP\tTYPE\tCOUNT\tVELO\tH_MOV\tV_MOV\tPFX_X\tPFX_Z")
		for _, r := range h.Records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s@%s\t%s\t%d/%d\t%.1f\t%.2f\t%.2f\t%.2f\t%.2f\n",
				r.Date, r.PitcherName, r.PitcherTeam, r.Away, r.Home, r.PitchType,
				r.TypeCount, r.Pitches, r.AvgSpeed, r.HMov, r.VMov, r.PfxX, r.PfxZ)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(h.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped %d malformed row(s)\n", len(h.Skipped))
		if verbose {
			for _, fe := range h.Skipped {
				fmt.Fprintf(w, "  %v\n", fe)
			}
		}
	}
	return nil
}

func writeEventsText(w io.Writer, events []plays.Event) error {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	tw := table(w)
	fmt.Fprintln(tw, "INN\t#\tCOUNT\tOUTS\tEVENT\tDESCRIPTION")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%d\t%d-%d\t%d\t%s\t%s\n",
			inning(e.Inning, e.Half), e.Number, e.Balls, e.Strikes, e.Outs, e.Name, e.Description)
	}
	return tw.Flush()
}

func inning(n int, half plays.Half) string {
	if half == plays.Top {
		return fmt.Sprintf("T%d", n)
	}
	return fmt.Sprintf("B%d", n)
}

func writePitchesText(w io.Writer, pitches []plays.Pitch) error {
	if len(pitches) == 0 {
		fmt.Fprintln(w, "No pitches found.")
		return nil
	}

	tw := table(w)
	fmt.Fprintln(tw, "INN\tAB\tID\tPITCHER\tBATTER\tTYPE\tRESULT\tSPEED\tPFX_X\tPFX_Z\tPX\tPZ\tSPIN\tDESCRIPTION")
	for _, p := range pitches {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			inning(p.Inning, p.Half), p.AtBat, p.ID, p.Pitcher, p.Batter, orDash(p.PitchType), p.Result,
			p.StartSpeed, p.PfxX, p.PfxZ, p.Px, p.Pz, p.SpinRate, p.Description)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeHitsText(w io.Writer, hits []plays.Hit) error {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No hits found.")
		return nil
	}

	tw := table(w)
	fmt.Fprintln(tw, "INN\tOUTCOME\tCODE\tX\tY\tBATTER\tPITCHER\tDESCRIPTION")
	for _, h := range hits {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%.1f\t%s\t%s\t%s\n",
			inning(h.Inning, h.Half), h.Outcome, h.Code, h.X, h.Y, h.Batter, h.Pitcher, h.Description)
	}
	return tw.Flush()
}

func writeBundleText(w io.Writer, b *gameday.Bundle) error {
	fmt.Fprintf(w, "Game %s\n", b.ID)

	sections := []struct {
		title string
		count int
		write func(io.Writer) error
	}{
		{"Events", len(b.Events), func(w io.Writer) error { return writeEventsText(w, b.Events) }},
		{"Pitches", len(b.Pitches), func(w io.Writer) error { return writePitchesText(w, b.Pitches) }},
		{"Hits", len(b.Hits), func(w io.Writer) error { return writeHitsText(w, b.Hits) }},
	}
	for _, s := range sections {
		fmt.Fprintf(w, "\n%s (%d):\n", s.title, s.count)
		if err := s.write(w); err != nil {
			return err
		}
	}
	return nil
}
