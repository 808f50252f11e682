package gid

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2012-09-30", want: Date{2012, time.September, 30}},
		{input: "2000-02-29", want: Date{2000, time.February, 29}},
		{input: "1999-02-29", wantErr: true},
		{input: "2012-9-30", wantErr: true},
		{input: "09/30/2012", wantErr: true},
		{input: "3 days ago", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestNewDate(t *testing.T) {
	if _, err := NewDate(2012, time.September, 31); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("NewDate(Sep 31) error = %v, want ErrInvalidDate", err)
	}
	d, err := NewDate(2012, time.September, 30)
	if err != nil {
		t.Fatalf("NewDate() error = %v", err)
	}
	if !d.Time().Equal(time.Date(2012, time.September, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time() = %v", d.Time())
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("ET", -4*60*60)
	got := DateOf(time.Date(2012, time.September, 30, 23, 30, 0, 0, loc))
	if got != (Date{2012, time.September, 30}) {
		t.Errorf("DateOf() = %+v", got)
	}
	if !(Date{}).IsZero() || got.IsZero() {
		t.Error("IsZero() mismatch")
	}
}
