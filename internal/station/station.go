// Package station defines the radio station record and its entry-time validation.
package station

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned when a stream address does not look like a URL.
var ErrInvalidURL = errors.New("invalid stream url")

// schemePattern matches a scheme-like prefix such as "http://" or "mms://".
var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://\S+$`)

// Station is a named stream endpoint. URL is opaque to the program and is
// handed to the external player as is.
type Station struct {
	Name string
	URL  string
}

func (s Station) String() string {
	return s.Name
}

// ValidateURL checks the minimal shape of a stream address typed by the user.
func ValidateURL(url string) error {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if !schemePattern.MatchString(trimmed) {
		return fmt.Errorf("%w: %q has no scheme prefix", ErrInvalidURL, trimmed)
	}
	return nil
}
