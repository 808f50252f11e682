// Package gameday is the caller-facing entry point to the feeds.
//
// A Client bundles the schedule, roster, tendency and plays readers behind one
// Getter and URL Layout. Every method fetches fresh data; nothing is cached
// between calls, and a failed call returns no records.
//
//	c := gameday.New(fetcher, feed.DefaultLayout(), nil)
//	game, err := c.Game(ctx, date, 11)
//	pitchers, err := c.ListPitchers(ctx, game.ID)
package gameday
