// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package ts

import (
	"strconv"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ParseLocation returns the named time zone.
// "Local" is the local time zone and an integer is a fixed offset in hours from UTC.
func ParseLocation(location string) (*time.Location, error) {
	if location == "" {
		return nil, errors.New("cannot parse location from empty string")
	}
	if location == "Local" {
		return time.Local, nil
	}
	hours, err := strconv.Atoi(location)
	if err == nil {
		return time.FixedZone("UTC"+location, hours*60*60), nil
	}
	loc, err := time.LoadLocation(location)
	if err != nil {
		return nil, errors.Errorf("error loading location %q: %w", location, err)
	}
	return loc, nil
}
