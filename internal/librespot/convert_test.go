package librespot

import (
	"testing"
	"time"

	"github.com/librespot-org/librespot-golang/Spotify"

	"github.com/handiism/spotify-downloader/internal/spotify"
)

func ptr[T any](v T) *T {
	return &v
}

func gid(b byte) []byte {
	g := make([]byte, 16)
	g[15] = b
	return g
}

func TestConvertTrack(t *testing.T) {
	src := &Spotify.Track{
		Gid:      gid(1),
		Name:     ptr("Song"),
		Duration: ptr(int32(215000)),
		Album:    &Spotify.Album{Gid: gid(2)},
		Artist:   []*Spotify.Artist{{Gid: gid(3)}, {Gid: gid(4)}},
		File: []*Spotify.AudioFile{
			{FileId: []byte{0xab, 0xcd}, Format: ptr(Spotify.AudioFile_OGG_VORBIS_320)},
			{FileId: []byte{0x01, 0x02}, Format: ptr(Spotify.AudioFile_MP3_160)},
		},
		Alternative: []*Spotify.Track{{Gid: gid(5)}},
	}

	got := convertTrack(src, "SE")

	if got.ID != gidToID(gid(1)) || got.Name != "Song" {
		t.Errorf("ID/Name = %s/%q", got.ID, got.Name)
	}
	if got.Duration != 215*time.Second {
		t.Errorf("Duration = %v, want 3m35s", got.Duration)
	}
	if got.Album != gidToID(gid(2)) {
		t.Errorf("Album = %s", got.Album)
	}
	if len(got.Artists) != 2 || got.Artists[1] != gidToID(gid(4)) {
		t.Errorf("Artists = %v", got.Artists)
	}
	if !got.Available {
		t.Error("track with files should be available")
	}
	if len(got.Alternatives) != 1 || got.Alternatives[0] != gidToID(gid(5)) {
		t.Errorf("Alternatives = %v", got.Alternatives)
	}

	file, ok := got.File(spotify.FormatOggVorbis320)
	if !ok || file.ID != "abcd" {
		t.Errorf("File(OGG_VORBIS_320) = %+v, %v", file, ok)
	}
	if got.Files[spotify.FormatMP3_160] != "0102" {
		t.Errorf("Files[MP3_160] = %q", got.Files[spotify.FormatMP3_160])
	}
}

func TestConvertTrack_Restricted(t *testing.T) {
	got := convertTrack(&Spotify.Track{
		Gid:         gid(1),
		Name:        ptr("Gone"),
		Alternative: []*Spotify.Track{{Gid: gid(2)}, {Gid: gid(3)}},
	}, "SE")

	if got.Available {
		t.Error("track without files should be unavailable")
	}
	if len(got.Alternatives) != 2 {
		t.Errorf("Alternatives = %v", got.Alternatives)
	}
}

func TestConvertTrack_Regions(t *testing.T) {
	files := []*Spotify.AudioFile{
		{FileId: []byte{0xab, 0xcd}, Format: ptr(Spotify.AudioFile_OGG_VORBIS_320)},
	}

	tests := []struct {
		name         string
		restrictions []*Spotify.Restriction
		country      string
		want         bool
	}{
		{"no restrictions", nil, "GB", true},
		{"forbidden", []*Spotify.Restriction{{CountriesForbidden: ptr("USGBDE")}}, "GB", false},
		{"not forbidden", []*Spotify.Restriction{{CountriesForbidden: ptr("USGBDE")}}, "SE", true},
		{"code spans two entries", []*Spotify.Restriction{{CountriesForbidden: ptr("USGBDE")}}, "SG", true},
		{"allowed", []*Spotify.Restriction{{CountriesAllowed: ptr("SENOFI")}}, "NO", true},
		{"not allowed", []*Spotify.Restriction{{CountriesAllowed: ptr("SENOFI")}}, "GB", false},
		{"empty allow list", []*Spotify.Restriction{{CountriesAllowed: ptr("")}}, "GB", false},
		{"premium catalogue", []*Spotify.Restriction{{CountriesForbidden: ptr("GB"), CatalogueStr: []string{"free", "premium"}}}, "GB", false},
		{"other catalogue", []*Spotify.Restriction{{CountriesForbidden: ptr("GB"), CatalogueStr: []string{"free"}}}, "GB", true},
		{"unknown country", []*Spotify.Restriction{{CountriesAllowed: ptr("SE")}}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertTrack(&Spotify.Track{
				Gid:         gid(1),
				File:        files,
				Restriction: tt.restrictions,
				Alternative: []*Spotify.Track{{Gid: gid(2)}},
			}, tt.country)

			if got.Available != tt.want {
				t.Errorf("Available = %v, want %v", got.Available, tt.want)
			}
			if len(got.Alternatives) != 1 {
				t.Errorf("Alternatives = %v", got.Alternatives)
			}
		})
	}
}

func TestPlaylistPath(t *testing.T) {
	ref, err := spotify.ParseReference("https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := playlistPath(ref.ID), "v2/playlist/37i9dQZF1DXcBWIGoYBM5M"; got != want {
		t.Errorf("playlistPath = %q, want %q", got, want)
	}

	ref, err = spotify.ParseReference("spotify:user:someone:playlist:37i9dQZF1DXcBWIGoYBM5M")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := playlistPath(ref.ID), "v2/playlist/37i9dQZF1DXcBWIGoYBM5M"; got != want {
		t.Errorf("playlistPath(user playlist) = %q, want %q", got, want)
	}
}

func TestConvertAlbum(t *testing.T) {
	got := convertAlbum(&Spotify.Album{
		Gid:  gid(9),
		Name: ptr("Record"),
		Disc: []*Spotify.Disc{
			{Track: []*Spotify.Track{{Gid: gid(1)}, {Gid: gid(2)}}},
			{Track: []*Spotify.Track{{Gid: gid(3)}}},
		},
		Cover: []*Spotify.Image{
			{FileId: []byte{0x01}},
			{FileId: []byte{0x02}},
		},
	})

	if got.Name != "Record" {
		t.Errorf("Name = %q", got.Name)
	}
	want := []spotify.ID{gidToID(gid(1)), gidToID(gid(2)), gidToID(gid(3))}
	if len(got.Tracks) != len(want) {
		t.Fatalf("Tracks = %v, want %v", got.Tracks, want)
	}
	for i := range want {
		if got.Tracks[i] != want[i] {
			t.Errorf("Tracks[%d] = %s, want %s", i, got.Tracks[i], want[i])
		}
	}
	if len(got.Covers) != 2 || got.Covers[0] != "02" {
		t.Errorf("Covers = %v, want largest first", got.Covers)
	}
}

func TestProtoFormat(t *testing.T) {
	for proto, format := range formats {
		got, ok := protoFormat(format)
		if !ok || got != proto {
			t.Errorf("protoFormat(%s) = %v, %v; want %v", format, got, ok, proto)
		}
	}

	if _, ok := protoFormat(spotify.FormatAAC24); ok {
		t.Error("protoFormat(AAC_24) should not be supported")
	}
}
