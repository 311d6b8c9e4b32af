package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidHour = errors.New("invalid hour")

// ParseHour interprets free-form text as an hour of day (0..23).
// The offered keyboard only contains valid hours, but text arrives
// unchecked, so out-of-range and non-numeric input is rejected here
// instead of silently stored.
func ParseHour(s string) (int, error) {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, s)
	}
	return h, nil
}
