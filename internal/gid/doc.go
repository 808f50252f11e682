// Package gid encodes and decodes Gameday identifiers.
//
// A Gameday ID names exactly one published game: the calendar date, the away and
// home team codes, and the game number for the day (1 for a single game, 2 for the
// second half of a double-header). The string form is positional,
// "2012_09_30_wasmlb_phimlb_1", and feed directories prefix it with "gid_".
package gid
