// Package plays parses a game's play-by-play, pitch and hit-chart feeds.
//
// The three feeds are fetched and parsed independently and each result keeps
// feed order. Pitch-tracking numbers are frequently partial, so every optional
// metric is a Measure whose Valid flag separates "not measured" from zero.
package plays
