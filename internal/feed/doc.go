// Package feed retrieves raw Gameday feed documents over HTTP.
//
// A Fetcher performs exactly one GET per call and returns the body bytes
// untouched, or a *Error classifying the failure as unavailable, not found or
// server error. It never retries and never looks at the payload; parsing
// belongs to the schedule, roster, tendency and plays packages, which all
// accept the Getter interface so callers can decorate it (see the CLI's retry
// wrapper). Layout maps dates and Gameday IDs to feed URLs.
package feed
