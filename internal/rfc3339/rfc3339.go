// Package rfc3339 checks timestamp strings against RFC 3339 section 5.6.
package rfc3339

import (
	"fmt"
	"strings"
	"time"
)

// Parse parses an RFC 3339 date-time. Unlike time.Parse it accepts the
// lowercase 't' and 'z' separators the RFC allows, and a leap second (":60"),
// which is folded into the following second.
func Parse(s string) (time.Time, error) {
	// time.Parse also takes ',' as the fractional-second separator.
	if strings.IndexByte(s, ',') >= 0 {
		return time.Time{}, fmt.Errorf("rfc3339: %q: fractional seconds must be separated by '.'", s)
	}
	norm := strings.ToUpper(s)
	leap := false
	// hh:mm:60 sits at a fixed offset after the 'T'.
	if i := strings.IndexByte(norm, 'T'); i >= 0 && len(norm) >= i+9 && norm[i+6:i+9] == ":60" {
		norm = norm[:i+7] + "59" + norm[i+9:]
		leap = true
	}
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, norm)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339, norm)
		if err2 != nil {
			return time.Time{}, err
		}
		t = t2
	}
	if leap {
		t = t.Add(time.Second)
	}
	return t, nil
}

// Valid reports whether s is an RFC 3339 date-time.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
