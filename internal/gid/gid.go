package gid

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DirPrefix is prepended to an ID in feed directory names.
const DirPrefix = "gid_"

var (
	// ErrMalformedIdentifier is returned by Decode for strings that don't follow
	// the positional layout.
	ErrMalformedIdentifier = errors.New("malformed gameday identifier")

	// ErrInvalidIdentifierComponents is returned by Encode for empty or
	// non-encodable team codes, negative game numbers and invalid dates.
	ErrInvalidIdentifierComponents = errors.New("invalid gameday identifier components")
)

var (
	teamCodePattern = regexp.MustCompile(`^[a-z0-9]+$`)
	idPattern       = regexp.MustCompile(`^(?:gid_)?(\d{4})_(\d{2})_(\d{2})_([a-z0-9]+)_([a-z0-9]+)_(\d+)$`)
)

// ID identifies one published game.
type ID struct {
	Date Date
	Away string
	Home string
	Game int
}

// Encode validates the components and returns the ID they form.
// Team codes must be lowercase letters and digits ("wasmlb"), since any other
// character would make the string form ambiguous.
func Encode(date Date, away, home string, game int) (ID, error) {
	if !date.Valid() {
		return ID{}, fmt.Errorf("%w: date %s", ErrInvalidIdentifierComponents, date)
	}
	if !teamCodePattern.MatchString(away) {
		return ID{}, fmt.Errorf("%w: away team code %q", ErrInvalidIdentifierComponents, away)
	}
	if !teamCodePattern.MatchString(home) {
		return ID{}, fmt.Errorf("%w: home team code %q", ErrInvalidIdentifierComponents, home)
	}
	if game < 0 {
		return ID{}, fmt.Errorf("%w: game number %d", ErrInvalidIdentifierComponents, game)
	}
	return ID{Date: date, Away: away, Home: home, Game: game}, nil
}

// Decode parses "2012_09_30_wasmlb_phimlb_1", with or without the "gid_" prefix.
func Decode(s string) (ID, error) {
	m := idPattern.FindStringSubmatch(s)
	if m == nil {
		return ID{}, fmt.Errorf("%w: %q", ErrMalformedIdentifier, s)
	}

	// The pattern guarantees digits, so Atoi only fails on overflow.
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	game, err := strconv.Atoi(m[6])
	if err != nil {
		return ID{}, fmt.Errorf("%w: game number in %q", ErrMalformedIdentifier, s)
	}

	date := Date{Year: year, Month: time.Month(month), Day: day}
	if !date.Valid() {
		return ID{}, fmt.Errorf("%w: date segment in %q", ErrMalformedIdentifier, s)
	}

	return ID{Date: date, Away: m[4], Home: m[5], Game: game}, nil
}

// String returns the bare positional form, without the directory prefix.
func (id ID) String() string {
	return fmt.Sprintf("%04d_%02d_%02d_%s_%s_%d",
		id.Date.Year, int(id.Date.Month), id.Date.Day, id.Away, id.Home, id.Game)
}

// Dir returns the feed directory name for the game, "gid_2012_09_30_wasmlb_phimlb_1".
func (id ID) Dir() string {
	return DirPrefix + id.String()
}

// MarshalText implements encoding.TextMarshaler so IDs render as their string form.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	decoded, err := Decode(string(b))
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}
