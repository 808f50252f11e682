// Package tendency reads a pitcher's per-game pitch-type history.
//
// The history feed is an HTML page (tabs.php) holding a table with one row per
// pitch type per appearance. Aggregator finds the first table whose header has
// every column it needs and turns each row into a Record. The averages in the
// table are reported by the feed; nothing is recomputed here.
//
// A row with a bad value does not fail the whole call. It is reported in
// History.Skipped as a *FieldError naming the column, and the remaining rows
// are still returned.
package tendency
