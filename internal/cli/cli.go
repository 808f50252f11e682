package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/gameday/internal/config"
	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/gameday"
	"github.com/pfrederiksen/gameday/internal/gid"
	"github.com/pfrederiksen/gameday/internal/logger"
	"github.com/pfrederiksen/gameday/internal/plays"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds the flags and the state built from them before a command runs.
type options struct {
	configPath string
	format     string
	verbose    bool
	date       string
	game       int
	gameID     string
	pitcherID  string
	pitchType  string

	now     func() time.Time
	out     OutputFormat
	log     *logger.Logger
	metrics *logger.Metrics
	client  *gameday.Client
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(time.Now)
}

func newRootCmd(now func() time.Time) *cobra.Command {
	o := &options{now: now}

	cmd := &cobra.Command{
		Use:   "gameday",
		Short: "Browse MLB Gameday feeds",
		Long: `A CLI tool to read MLB Gameday feeds: the day's schedule, a game's
pitchers, play-by-play, pitch tracking and hit chart, and a pitcher's
pitch-type history.

A game is chosen with --date and --game (its position in "gameday games"),
or directly with --gid.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
		PersistentPostRun: o.dumpMetrics,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "Config file (YAML)")
	flags.StringVar(&o.format, "format", "text", "Output format: text or json")
	flags.BoolVar(&o.verbose, "verbose", false, "Enable debug logging and print fetch metrics")
	flags.StringVar(&o.date, "date", "", "Game date as YYYY-MM-DD (default today)")
	flags.IntVar(&o.game, "game", 0, "Game number on --date, as listed by 'games'")
	flags.StringVar(&o.gameID, "gid", "", "Gameday ID, e.g. 2012_09_30_wasmlb_phimlb_1 (overrides --date/--game)")

	cmd.AddCommand(
		o.gamesCmd(),
		o.pitchersCmd(),
		o.historyCmd(),
		o.eventsCmd(),
		o.pitchesCmd(),
		o.hitsCmd(),
		o.gameCmd(),
	)

	return cmd
}

// setup loads configuration and builds the client shared by every subcommand.
func (o *options) setup(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(o.format)
	if err != nil {
		return err
	}
	o.out = format

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, _ := logger.ParseLevel(cfg.Logging.Level)
	if o.verbose {
		level = logger.LevelDebug
	}
	o.log = logger.New(level, cmd.ErrOrStderr()).With(logger.Fields{"run_id": uuid.NewString()})
	logger.SetDefault(o.log)
	o.metrics = logger.NewMetrics()

	fetcher := feed.New(feed.Options{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
		Logger:    o.log,
		Metrics:   o.metrics,
	})
	getter := newRetryGetter(fetcher, cfg.Retry, o.log, o.metrics)
	o.client = gameday.New(getter, cfg.Layout(), o.log)

	o.log.Debug("Configured", logger.Fields{
		"command":       cmd.Name(),
		"gameday_base":  cfg.Feed.GamedayBaseURL,
		"tendency_base": cfg.Feed.TendencyBaseURL,
		"max_attempts":  cfg.Retry.MaxAttempts,
	})
	return nil
}

func (o *options) dumpMetrics(cmd *cobra.Command, args []string) {
	if !o.verbose || o.metrics == nil {
		return
	}
	_ = writeJSON(cmd.ErrOrStderr(), o.metrics.GetSnapshot())
}

// resolveDate returns --date, or today in local time.
func (o *options) resolveDate() (gid.Date, error) {
	if strings.TrimSpace(o.date) == "" {
		return gid.DateOf(o.now()), nil
	}
	return gid.ParseDate(o.date)
}

// resolveGame returns --gid, or looks up game --game on --date.
func (o *options) resolveGame(ctx context.Context) (gid.ID, error) {
	if o.gameID != "" {
		return gid.Decode(o.gameID)
	}

	date, err := o.resolveDate()
	if err != nil {
		return gid.ID{}, err
	}
	game, err := o.client.Game(ctx, date, o.game)
	if err != nil {
		return gid.ID{}, fmt.Errorf("finding game %d on %s: %w", o.game, date, err)
	}
	return game.ID, nil
}

func (o *options) gamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List the games on --date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := o.resolveDate()
			if err != nil {
				return err
			}
			games, err := o.client.ListGames(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("listing games: %w", err)
			}
			o.metrics.SetGauge("schedule.games", float64(len(games)))
			return WriteOutput(cmd.OutOrStdout(), games, o.out, func(w io.Writer) error {
				return writeGamesText(w, games)
			})
		},
	}
}

func (o *options) pitchersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pitchers",
		Short: "List both teams' pitchers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := o.resolveGame(cmd.Context())
			if err != nil {
				return err
			}
			pitchers, err := o.client.ListPitchers(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("listing pitchers: %w", err)
			}
			return WriteOutput(cmd.OutOrStdout(), sortedPitchers(pitchers), o.out, func(w io.Writer) error {
				return writePitchersText(w, pitchers)
			})
		},
	}
}

func (o *options) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a pitcher's pitch-type history through the game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := o.resolveGame(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := o.client.GetPitcher(cmd.Context(), id, o.pitcherID); err != nil {
				return fmt.Errorf("checking pitcher: %w", err)
			}
			h, err := o.client.GetPitcherHistory(cmd.Context(), id, o.pitcherID)
			if err != nil {
				return fmt.Errorf("fetching history: %w", err)
			}
			o.metrics.SetGauge("tendency.records", float64(len(h.Records)))
			o.metrics.SetGauge("tendency.skipped", float64(len(h.Skipped)))
			return WriteOutput(cmd.OutOrStdout(), h, o.out, func(w io.Writer) error {
				return writeHistoryText(w, h, o.verbose)
			})
		},
	}
	cmd.Flags().StringVar(&o.pitcherID, "pitcher", "", "Pitcher ID as listed by 'pitchers' (required)")
	cmd.MarkFlagRequired("pitcher")
	return cmd
}

func (o *options) eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Show the play-by-play log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := o.resolveGame(cmd.Context())
			if err != nil {
				return err
			}
			events, err := o.client.ListEvents(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}
			return WriteOutput(cmd.OutOrStdout(), events, o.out, func(w io.Writer) error {
				return writeEventsText(w, events)
			})
		},
	}
}

func (o *options) pitchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pitches",
		Short: "Show every tracked pitch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := o.resolveGame(cmd.Context())
			if err != nil {
				return err
			}
			pitches, err := o.client.ListPitches(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("listing pitches: %w", err)
			}
			pitches = filterPitches(pitches, o.pitchType, o.pitcherID)
			return WriteOutput(cmd.OutOrStdout(), pitches, o.out, func(w io.Writer) error {
				return writePitchesText(w, pitches)
			})
		},
	}
	cmd.Flags().StringVar(&o.pitchType, "type", "", "Only pitches of this type, e.g. FF")
	cmd.Flags().StringVar(&o.pitcherID, "pitcher", "", "Only pitches thrown by this pitcher ID")
	return cmd
}

// filterPitches keeps pitches matching pitchType (case-insensitive) and
// pitcherID. Empty filters match everything.
func filterPitches(pitches []plays.Pitch, pitchType, pitcherID string) []plays.Pitch {
	if pitchType == "" && pitcherID == "" {
		return pitches
	}
	out := []plays.Pitch{}
	for _, p := range pitches {
		if pitchType != "" && !strings.EqualFold(p.PitchType, pitchType) {
			continue
		}
		if pitcherID != "" && p.Pitcher != pitcherID {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (o *options) hitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hits",
		Short: "Show the hit chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := o.resolveGame(cmd.Context())
			if err != nil {
				return err
			}
			hits, err := o.client.ListHits(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("listing hits: %w", err)
			}
			return WriteOutput(cmd.OutOrStdout(), hits, o.out, func(w io.Writer) error {
				return writeHitsText(w, hits)
			})
		},
	}
}

func (o *options) gameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game",
		Short: "Fetch events, pitches and hits together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := o.resolveGame(cmd.Context())
			if err != nil {
				return err
			}
			b, err := o.client.GameBundle(cmd.Context(), id)
			if err != nil {
				return err
			}
			return WriteOutput(cmd.OutOrStdout(), b, o.out, func(w io.Writer) error {
				return writeBundleText(w, b)
			})
		},
	}
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
