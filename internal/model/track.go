package model

import (
	"path/filepath"
	"strings"
	"time"

	ioutils "github.com/handiism/spotify-downloader/internal/io"
)

// ArtistSeparator joins multiple artist names in file names and tags.
const ArtistSeparator = ", "

// Track represents one track that is written to disk.
//
// The file path is computed when creating a track via NewTrack, using the
// TrackConfig download directory and file name format.
type Track struct {
	// ID is the base62 identifier of the track actually downloaded. It
	// differs from the requested ID when an alternative was used.
	ID string

	// Title is the track name.
	Title string

	// Artists are the artist names in credit order.
	Artists []string

	// Album is the album name.
	Album string

	// Duration is the track length, used for playlists.
	Duration time.Duration

	// Path is the computed local file path.
	Path string
}

// TrackConfig holds track path formatting settings.
//
// The FileNameFormat supports placeholders:
//   - {artists} - Artist names joined by ", "
//   - {title} - Track title
//   - {album} - Album name
//   - {id} - Track ID
type TrackConfig struct {
	// DownloadsPath is the directory tracks are written to.
	DownloadsPath string

	// FileNameFormat is the template for track file names, including the extension.
	FileNameFormat string
}

// NewTrack creates a new Track with computed path.
func NewTrack(id, title string, artists []string, album string, cfg *TrackConfig) *Track {
	track := &Track{
		ID:      id,
		Title:   title,
		Artists: artists,
		Album:   album,
	}

	track.Path = track.parseFilePath(cfg)

	return track
}

// ArtistNames returns the artist names joined by ArtistSeparator.
func (t *Track) ArtistNames() string {
	return strings.Join(t.Artists, ArtistSeparator)
}

// parseFilePath computes the full file path for this track.
func (t *Track) parseFilePath(cfg *TrackConfig) string {
	return filepath.Join(cfg.DownloadsPath, t.parseFileName(cfg))
}

// parseFileName computes the file name from the config template. Every
// value is sanitized before substitution so none of them can introduce a
// directory.
func (t *Track) parseFileName(cfg *TrackConfig) string {
	return strings.NewReplacer(
		"{artists}", ioutils.SanitizeFileName(t.ArtistNames()),
		"{title}", ioutils.SanitizeFileName(t.Title),
		"{album}", ioutils.SanitizeFileName(t.Album),
		"{id}", ioutils.SanitizeFileName(t.ID),
	).Replace(cfg.FileNameFormat)
}
