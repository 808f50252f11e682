// Package schedule resolves a calendar date into the games played that day.
//
// The Resolver fetches the day's master scoreboard and returns one GameSummary
// per <game> element in feed order, so "game number N" means the same game on
// every call against the same feed snapshot. A day without games yields an
// empty slice, not an error. Postponed and suspended games are kept.
package schedule
