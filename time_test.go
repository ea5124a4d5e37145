package bazaar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/bazaar/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    UnixTime
		wantErr *errors.Error
	}{
		"epoch":              {raw: "0"},
		"epoch in a zone":    {raw: `"1970-01-01T02:00:00+02:00"`},
		"seconds":            {raw: "1600000000", want: 1600000000},
		"rfc 3339":           {raw: `"2020-09-13T12:26:40Z"`, want: 1600000000},
		"fraction truncated": {raw: `"2020-09-13T14:26:40.75+02:00"`, want: 1600000000},
		"before epoch":       {raw: "-1", wantErr: errors.ErrInput},
		"date before epoch":  {raw: `"1969-12-31T23:59:59Z"`, wantErr: errors.ErrInput},
		"garbage":            {raw: `"next tuesday"`, wantErr: errors.ErrInput},
		"boolean":            {raw: "true", wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	start := UnixTime(1600000000)
	if got := start.Add(time.Hour + 1500*time.Millisecond); got != start+3601 {
		t.Fatalf("want %d, got %d", start+3601, got)
	}
	if !start.Time().Equal(time.Unix(1600000000, 0)) || AsUnixTime(start.Time()) != start {
		t.Fatal("conversion to time.Time must round trip")
	}
	if err := UnixTime(-5).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("want invalid state, got %v", err)
	}
}
