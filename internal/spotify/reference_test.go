package spotify

import (
	"errors"
	"testing"
)

func TestParseReference(t *testing.T) {
	const id = "4uLU6hMCjMI75M1A2tKUQC"

	tests := []struct {
		name     string
		line     string
		wantKind Kind
		wantErr  bool
	}{
		{"track uri", "spotify:track:" + id, KindTrack, false},
		{"album uri", "spotify:album:" + id, KindAlbum, false},
		{"playlist uri", "spotify:playlist:" + id, KindPlaylist, false},
		{"legacy user playlist uri", "spotify:user:someone:playlist:" + id, KindPlaylist, false},
		{"track url", "https://open.spotify.com/track/" + id, KindTrack, false},
		{"track url with query", "https://open.spotify.com/track/" + id + "?si=abcdef", KindTrack, false},
		{"album url", "http://open.spotify.com/album/" + id, KindAlbum, false},
		{"playlist url", "open.spotify.com/playlist/" + id, KindPlaylist, false},
		{"localized url", "https://open.spotify.com/intl-de/track/" + id, KindTrack, false},
		{"user playlist url", "https://open.spotify.com/user/someone/playlist/" + id, KindPlaylist, false},
		{"surrounding text", "  listen: spotify:track:" + id + " (live)  ", KindTrack, false},
		{"artist uri", "spotify:artist:" + id, 0, true},
		{"short id", "spotify:track:4uLU6hMC", 0, true},
		{"long id", "spotify:track:" + id + "X", 0, true},
		{"other host", "https://example.com/track/" + id, 0, true},
		{"garbage", "not a reference", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseReference(tt.line)
			if tt.wantErr {
				if !errors.Is(err, ErrUnrecognized) {
					t.Fatalf("ParseReference(%q) error = %v, want ErrUnrecognized", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReference(%q) unexpected error: %v", tt.line, err)
			}
			if ref.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", ref.Kind, tt.wantKind)
			}
			if ref.ID != id {
				t.Errorf("ID = %q, want %q", ref.ID, id)
			}
		})
	}
}

func TestReference_String(t *testing.T) {
	ref := Reference{Kind: KindAlbum, ID: "1DFixLWuPkv3KT3TnV35m3"}
	if got := ref.String(); got != "spotify:album:1DFixLWuPkv3KT3TnV35m3" {
		t.Errorf("String() = %q", got)
	}
}

func TestIsComment(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"# my favourites", true},
		{"  #indented", true},
		{"spotify:track:4uLU6hMCjMI75M1A2tKUQC", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		if got := IsComment(tt.line); got != tt.want {
			t.Errorf("IsComment(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if _, err := ParseID("4uLU6hMCjMI75M1A2tKUQC"); err != nil {
		t.Errorf("valid id rejected: %v", err)
	}
	for _, bad := range []string{"", "short", "4uLU6hMCjMI75M1A2tKUQ!", "4uLU6hMCjMI75M1A2tKUQCC"} {
		if _, err := ParseID(bad); err == nil {
			t.Errorf("ParseID(%q) should fail", bad)
		}
	}
}
