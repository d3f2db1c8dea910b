package spotify

import "time"

// FileFormat is the encoding of one audio file offered for a track.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatOggVorbis96
	FormatOggVorbis160
	FormatOggVorbis320
	FormatMP3_256
	FormatMP3_320
	FormatMP3_160
	FormatMP3_96
	FormatMP3_160Encrypted
	FormatAAC24
	FormatAAC48
)

// String returns the service's name for the format.
func (f FileFormat) String() string {
	switch f {
	case FormatOggVorbis96:
		return "OGG_VORBIS_96"
	case FormatOggVorbis160:
		return "OGG_VORBIS_160"
	case FormatOggVorbis320:
		return "OGG_VORBIS_320"
	case FormatMP3_256:
		return "MP3_256"
	case FormatMP3_320:
		return "MP3_320"
	case FormatMP3_160:
		return "MP3_160"
	case FormatMP3_96:
		return "MP3_96"
	case FormatMP3_160Encrypted:
		return "MP3_160_ENC"
	case FormatAAC24:
		return "AAC_24"
	case FormatAAC48:
		return "AAC_48"
	default:
		return "UNKNOWN"
	}
}

// AudioFile identifies one encoded rendition of a track.
type AudioFile struct {
	ID     FileID
	Format FileFormat
}

// Track is the metadata of a single track.
type Track struct {
	ID       ID
	Name     string
	Duration time.Duration

	// Artists in credit order.
	Artists []ID
	Album   ID

	// Available is false when the track is region or license restricted.
	Available bool

	// Alternatives are substitute tracks, tried in order when the track is unavailable.
	Alternatives []ID

	Files map[FileFormat]FileID
}

// File returns the audio file in the given format, if the track offers it.
func (t *Track) File(format FileFormat) (AudioFile, bool) {
	id, ok := t.Files[format]
	if !ok {
		return AudioFile{}, false
	}
	return AudioFile{ID: id, Format: format}, true
}

// Artist is the metadata of an artist.
type Artist struct {
	ID   ID
	Name string
}

// Album is the metadata of an album.
type Album struct {
	ID     ID
	Name   string
	Tracks []ID

	// Covers holds cover image files, largest first.
	Covers []FileID
}

// Playlist is the metadata of a playlist.
type Playlist struct {
	ID     ID
	Name   string
	Tracks []ID
}

// CoverURLBase is where cover images are served from, by hex file ID.
const CoverURLBase = "https://i.scdn.co/image/"

// CoverURL returns the HTTP location of a cover image file.
func CoverURL(id FileID) string {
	return CoverURLBase + string(id)
}
