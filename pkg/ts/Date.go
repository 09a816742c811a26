// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package ts

import (
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// DateLayouts are the layouts tried by ParseDate, in order.
var DateLayouts = []Layout{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseDate parses an absolute date in one of the DateLayouts or a named layout,
// or a duration relative to now such as "-24h".
// Dates without a time zone are in the given location.
func ParseDate(value string, now time.Time, location *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("cannot parse date from empty string")
	}
	if value == "now" {
		return now, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return now.Add(d), nil
	}
	if location == nil {
		location = time.UTC
	}
	for _, layout := range DateLayouts {
		if t, err := layout.Parse(value, location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("cannot parse date %q", value)
}
