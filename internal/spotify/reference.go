package spotify

import (
	"errors"
	"regexp"
	"strings"
)

// ErrUnrecognized is returned when a line holds no track, album or playlist reference.
var ErrUnrecognized = errors.New("unrecognized spotify reference")

// Kind is the type of entity a reference points at.
type Kind int

const (
	KindTrack Kind = iota
	KindAlbum
	KindPlaylist
)

// String returns the name used in URIs and URLs.
func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindAlbum:
		return "album"
	case KindPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

func parseKind(s string) (Kind, bool) {
	switch s {
	case "track":
		return KindTrack, true
	case "album":
		return KindAlbum, true
	case "playlist":
		return KindPlaylist, true
	}
	return 0, false
}

// Reference is a classified input line.
type Reference struct {
	Kind Kind
	ID   ID
}

// String returns the URI form of the reference.
func (r Reference) String() string {
	return r.ID.URI(r.Kind)
}

// Patterns are tried in order; each captures the kind and the ID.
var referencePatterns = []*regexp.Regexp{
	// spotify:track:ID, spotify:album:ID, spotify:playlist:ID
	regexp.MustCompile(`spotify:(track|album|playlist):([0-9A-Za-z]{22})\b`),
	// spotify:user:NAME:playlist:ID
	regexp.MustCompile(`spotify:user:[^:\s]+:(playlist):([0-9A-Za-z]{22})\b`),
	// open.spotify.com/[intl-xx/][user/NAME/](track|album|playlist)/ID
	regexp.MustCompile(`open\.spotify\.com/(?:intl-[A-Za-z-]+/)?(?:user/[^/\s]+/)?(track|album|playlist)/([0-9A-Za-z]{22})\b`),
}

// ParseReference extracts the first track, album or playlist reference from line.
//
// Both URI ("spotify:track:<id>") and URL ("https://open.spotify.com/track/<id>")
// forms are accepted, with surrounding text and query strings ignored.
// It returns ErrUnrecognized when nothing matches.
func ParseReference(line string) (Reference, error) {
	line = strings.TrimSpace(line)
	for _, re := range referencePatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		kind, ok := parseKind(m[1])
		if !ok {
			continue
		}
		return Reference{Kind: kind, ID: ID(m[2])}, nil
	}
	return Reference{}, ErrUnrecognized
}

// IsComment reports whether an input line carries no reference by intent:
// blank lines and lines starting with '#'.
func IsComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}
