package librespot

import (
	"encoding/hex"
	"slices"
	"time"

	"github.com/librespot-org/librespot-golang/Spotify"
	"github.com/librespot-org/librespot-golang/librespot/utils"

	"github.com/handiism/spotify-downloader/internal/spotify"
)

var formats = map[Spotify.AudioFile_Format]spotify.FileFormat{
	Spotify.AudioFile_OGG_VORBIS_96:  spotify.FormatOggVorbis96,
	Spotify.AudioFile_OGG_VORBIS_160: spotify.FormatOggVorbis160,
	Spotify.AudioFile_OGG_VORBIS_320: spotify.FormatOggVorbis320,
	Spotify.AudioFile_MP3_256:        spotify.FormatMP3_256,
	Spotify.AudioFile_MP3_320:        spotify.FormatMP3_320,
	Spotify.AudioFile_MP3_160:        spotify.FormatMP3_160,
	Spotify.AudioFile_MP3_96:         spotify.FormatMP3_96,
	Spotify.AudioFile_MP3_160_ENC:    spotify.FormatMP3_160Encrypted,
}

func protoFormat(f spotify.FileFormat) (Spotify.AudioFile_Format, bool) {
	for pf, sf := range formats {
		if sf == f {
			return pf, true
		}
	}
	return 0, false
}

func msToDuration(ms int32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func gidToID(gid []byte) spotify.ID {
	return spotify.ID(utils.ConvertTo62(gid))
}

func fileID(raw []byte) spotify.FileID {
	return spotify.FileID(hex.EncodeToString(raw))
}

// premiumCatalogue is the catalogue whose restrictions apply to a premium session.
const premiumCatalogue = "premium"

// playlistPath is the metadata address of a playlist, relative to hm://playlist/.
func playlistPath(id spotify.ID) string {
	return "v2/playlist/" + id.String()
}

// countryListed reports whether country is one of the two letter codes
// concatenated in list.
func countryListed(list, country string) bool {
	for i := 0; i+2 <= len(list); i += 2 {
		if list[i:i+2] == country {
			return true
		}
	}
	return false
}

// allowedIn checks the premium catalogue restrictions against country.
// Tracks without such restrictions are allowed everywhere, and an unknown
// country leaves the decision to the service.
func allowedIn(restrictions []*Spotify.Restriction, country string) bool {
	if country == "" {
		return true
	}
	for _, r := range restrictions {
		if cat := r.GetCatalogueStr(); len(cat) > 0 && !slices.Contains(cat, premiumCatalogue) {
			continue
		}
		if r.CountriesForbidden != nil && countryListed(r.GetCountriesForbidden(), country) {
			return false
		}
		if r.CountriesAllowed != nil && !countryListed(r.GetCountriesAllowed(), country) {
			return false
		}
	}
	return true
}

// convertTrack maps track metadata. A track is available in country when it
// lists audio files and no restriction excludes the country.
func convertTrack(t *Spotify.Track, country string) *spotify.Track {
	track := &spotify.Track{
		ID:       gidToID(t.GetGid()),
		Name:     t.GetName(),
		Duration: msToDuration(t.GetDuration()),
		Album:    gidToID(t.GetAlbum().GetGid()),
		Files:    make(map[spotify.FileFormat]spotify.FileID),
	}

	for _, a := range t.GetArtist() {
		track.Artists = append(track.Artists, gidToID(a.GetGid()))
	}
	for _, alt := range t.GetAlternative() {
		track.Alternatives = append(track.Alternatives, gidToID(alt.GetGid()))
	}
	for _, f := range t.GetFile() {
		if format, ok := formats[f.GetFormat()]; ok {
			track.Files[format] = fileID(f.GetFileId())
		}
	}
	track.Available = len(t.GetFile()) > 0 && allowedIn(t.GetRestriction(), country)

	return track
}

func convertAlbum(a *Spotify.Album) *spotify.Album {
	album := &spotify.Album{
		ID:   gidToID(a.GetGid()),
		Name: a.GetName(),
	}
	for _, disc := range a.GetDisc() {
		for _, t := range disc.GetTrack() {
			album.Tracks = append(album.Tracks, gidToID(t.GetGid()))
		}
	}
	// Cover images are listed smallest first.
	covers := a.GetCover()
	for i := len(covers) - 1; i >= 0; i-- {
		album.Covers = append(album.Covers, fileID(covers[i].GetFileId()))
	}
	return album
}

// convertPlaylist keeps the track items of a playlist, in order.
func convertPlaylist(id spotify.ID, list *Spotify.SelectedListContent) *spotify.Playlist {
	playlist := &spotify.Playlist{
		ID:   id,
		Name: list.GetAttributes().GetName(),
	}
	for _, item := range list.GetContents().GetItems() {
		ref, err := spotify.ParseReference(item.GetUri())
		if err != nil || ref.Kind != spotify.KindTrack {
			continue
		}
		playlist.Tracks = append(playlist.Tracks, ref.ID)
	}
	return playlist
}
