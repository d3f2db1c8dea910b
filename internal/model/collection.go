package model

import (
	"path/filepath"

	ioutils "github.com/handiism/spotify-downloader/internal/io"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// PlaylistFormatM3U creates .m3u playlist files (most widely supported).
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS creates .pls playlist files (used by Winamp).
	PlaylistFormatPLS

	// PlaylistFormatWPL creates .wpl playlist files (Windows Media Player).
	PlaylistFormatWPL

	// PlaylistFormatZPL creates .zpl playlist files (Zune Media Player).
	PlaylistFormatZPL
)

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatM3U:
		return ".m3u"
	case PlaylistFormatPLS:
		return ".pls"
	case PlaylistFormatWPL:
		return ".wpl"
	case PlaylistFormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// PathConfig holds path settings for collection level files.
type PathConfig struct {
	// DownloadsPath is the directory playlists and cover art are written to.
	DownloadsPath string

	// PlaylistFormat determines the playlist file type and extension.
	PlaylistFormat PlaylistFormat
}

// Collection is an album or playlist expanded from one input reference.
type Collection struct {
	// Title is the album or playlist name.
	Title string

	// Tracks are the tracks present on disk, in source order.
	Tracks []*Track

	// PlaylistPath is the computed playlist file path.
	PlaylistPath string
}

// NewCollection creates a Collection with its playlist path computed.
func NewCollection(title string, cfg *PathConfig) *Collection {
	c := &Collection{Title: title}
	c.PlaylistPath = filepath.Join(cfg.DownloadsPath, ioutils.SanitizeFileName(title)+cfg.PlaylistFormat.Extension())
	return c
}

// CoverArtPath returns the path for the cover image of album, with ext
// including the dot.
func CoverArtPath(cfg *PathConfig, album, ext string) string {
	return filepath.Join(cfg.DownloadsPath, ioutils.SanitizeFileName(album)+ext)
}
