package spotify

import (
	"fmt"
	"regexp"
)

// IDLength is the length of a base62 Spotify identifier.
const IDLength = 22

var idPattern = regexp.MustCompile(`^[0-9A-Za-z]{22}$`)

// ID is a base62 encoded Spotify entity identifier.
type ID string

// ParseID checks that s has the shape of a Spotify ID.
func ParseID(s string) (ID, error) {
	if !idPattern.MatchString(s) {
		return "", fmt.Errorf("invalid spotify id %q", s)
	}
	return ID(s), nil
}

// String returns the base62 form.
func (id ID) String() string {
	return string(id)
}

// URI returns the spotify:<kind>:<id> form of the identifier.
func (id ID) URI(kind Kind) string {
	return "spotify:" + kind.String() + ":" + string(id)
}

// FileID is the hex encoded identifier of one encoded audio or image file.
type FileID string
