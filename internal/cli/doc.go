// Package cli implements the command-line interface for gameday.
//
// The cli package provides the Cobra-based CLI: one subcommand per feed
// (games, pitchers, history, events, pitches, hits) plus "game" for the
// concurrent play bundle, with text or JSON output. It resolves the date and
// game number into a Gameday ID, loads configuration, wraps the feed fetcher
// in a retry policy and hands everything else to the gameday package.
package cli
