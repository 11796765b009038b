package page

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidID is wrapped by every ValidateID failure.
var ErrInvalidID = errors.New("invalid id")

// invalidCharacters cannot appear in an id because the id is a file name.
var invalidCharacters = []string{`\`, "/", ":", ",", ";", "*", "?", `"`, "<", ">", "|"}

// ValidateID checks that id can name a page file.
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty id is unavailable", ErrInvalidID)
	case id == NullID:
		return fmt.Errorf("%w: %q is unavailable", ErrInvalidID, NullID)
	case strings.TrimSpace(id) != id:
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidID, id)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q is unavailable", ErrInvalidID, id)
	}
	for _, c := range invalidCharacters {
		if strings.Contains(id, c) {
			return fmt.Errorf("%w: invalid character (%s)", ErrInvalidID, strings.Join(invalidCharacters, " "))
		}
	}
	return nil
}
