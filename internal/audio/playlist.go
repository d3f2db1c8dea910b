package audio

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/spotify-downloader/internal/model"
)

// PlaylistCreator renders a collection as a playlist file.
//
// Entries are bare file names, so the playlist must be written to the
// directory holding the tracks.
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(collection)
//
//	// #EXTM3U
//	// #EXTINF:213,Rick Astley - Never Gonna Give You Up
//	// Rick Astley - Never Gonna Give You Up.ogg
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool
}

// NewPlaylistCreator creates a new PlaylistCreator. extended adds EXTINF
// lines to M3U output and is ignored for other formats.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{format: format, extended: extended}
}

// CreatePlaylist generates playlist content for a collection.
func (p *PlaylistCreator) CreatePlaylist(c *model.Collection) string {
	switch p.format {
	case model.PlaylistFormatPLS:
		return createPLS(c)
	case model.PlaylistFormatWPL:
		return createSMIL("wpl", "1.0", c, false)
	case model.PlaylistFormatZPL:
		return createSMIL("zpl", "2.0", c, true)
	default:
		return p.createM3U(c)
	}
}

func entryTitle(t *model.Track) string {
	return t.ArtistNames() + " - " + t.Title
}

func (p *PlaylistCreator) createM3U(c *model.Collection) string {
	var sb strings.Builder
	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}
	for _, track := range c.Tracks {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:%d,%s\n", int(track.Duration.Seconds()), entryTitle(track))
		}
		sb.WriteString(filepath.Base(track.Path) + "\n")
	}
	return sb.String()
}

func createPLS(c *model.Collection) string {
	var sb strings.Builder
	sb.WriteString("[playlist]\n")
	for i, track := range c.Tracks {
		n := i + 1
		fmt.Fprintf(&sb, "File%d=%s\nTitle%d=%s\nLength%d=%d\n",
			n, filepath.Base(track.Path),
			n, entryTitle(track),
			n, int(track.Duration.Seconds()))
	}
	fmt.Fprintf(&sb, "NumberOfEntries=%d\nVersion=2\n", len(c.Tracks))
	return sb.String()
}

type smilMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type smilMedia struct {
	Src         string `xml:"src,attr"`
	AlbumTitle  string `xml:"albumTitle,attr,omitempty"`
	TrackTitle  string `xml:"trackTitle,attr,omitempty"`
	TrackArtist string `xml:"trackArtist,attr,omitempty"`
	Duration    int64  `xml:"duration,attr,omitempty"`
}

type smil struct {
	XMLName xml.Name    `xml:"smil"`
	Title   string      `xml:"head>title"`
	Meta    []smilMeta  `xml:"head>meta"`
	Media   []smilMedia `xml:"body>seq>media"`
}

// createSMIL renders the SMIL based WPL and ZPL formats. ZPL adds album,
// artist and duration (in milliseconds) to every entry.
func createSMIL(kind, version string, c *model.Collection, detailed bool) string {
	doc := smil{Title: c.Title}
	if detailed {
		doc.Meta = []smilMeta{
			{Name: "Generator", Content: "SpotifyDownloader"},
			{Name: "ItemCount", Content: fmt.Sprint(len(c.Tracks))},
		}
	}
	for _, track := range c.Tracks {
		media := smilMedia{Src: filepath.Base(track.Path)}
		if detailed {
			media.AlbumTitle = track.Album
			media.TrackTitle = track.Title
			media.TrackArtist = track.ArtistNames()
			media.Duration = track.Duration.Milliseconds()
		}
		doc.Media = append(doc.Media, media)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		// Only string and integer fields; marshalling cannot fail.
		panic(err)
	}
	return fmt.Sprintf("<?%s version=%q?>\n%s\n", kind, version, body)
}
