package audio

import (
	"strings"
	"testing"
	"time"

	"github.com/handiism/spotify-downloader/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	c := createTestCollection()
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, false)

	content := creator.CreatePlaylist(c)

	if content != "Artist - track1.ogg\nArtist - track2.ogg\n" {
		t.Errorf("unexpected M3U content:\n%s", content)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	c := createTestCollection()
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)

	content := creator.CreatePlaylist(c)

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Artist - track1\n") {
		t.Errorf("Extended M3U should contain EXTINF for track1:\n%s", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	c := createTestCollection()
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false)

	content := creator.CreatePlaylist(c)

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=Artist - track1.ogg") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "Length2=200") {
		t.Error("PLS should contain Length2=200")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	c := createTestCollection()
	creator := NewPlaylistCreator(model.PlaylistFormatWPL, false)

	content := creator.CreatePlaylist(c)

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<title>Test Mix</title>") {
		t.Error("WPL should contain the collection title")
	}
	if !strings.Contains(content, "<media src=") {
		t.Error("WPL should contain media elements")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	c := createTestCollection()
	creator := NewPlaylistCreator(model.PlaylistFormatZPL, false)

	content := creator.CreatePlaylist(c)

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, `duration="180000"`) {
		t.Error("ZPL should contain the duration in milliseconds")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	cfg := &model.PathConfig{DownloadsPath: "/music"}
	trackCfg := &model.TrackConfig{DownloadsPath: "/music", FileNameFormat: "{title}.ogg"}

	c := model.NewCollection("Mix <Special>", cfg)
	c.Tracks = append(c.Tracks, model.NewTrack("id", `Track & "Quote"`, []string{"Artist & Co"}, "Album", trackCfg))

	creator := NewPlaylistCreator(model.PlaylistFormatWPL, false)
	content := creator.CreatePlaylist(c)

	if !strings.Contains(content, "&amp;") {
		t.Error("WPL should escape & as &amp;")
	}
	if strings.Contains(content, "<Special>") {
		t.Error("WPL should escape < and >")
	}
	if !strings.Contains(content, "<title>Mix &lt;Special&gt;</title>") {
		t.Errorf("WPL title not escaped:\n%s", content)
	}
}

func createTestCollection() *model.Collection {
	cfg := &model.PathConfig{DownloadsPath: "/music"}
	trackCfg := &model.TrackConfig{DownloadsPath: "/music", FileNameFormat: "{artists} - {title}.ogg"}

	c := model.NewCollection("Test Mix", cfg)

	track1 := model.NewTrack("aaaaaaaaaaaaaaaaaaaaaa", "track1", []string{"Artist"}, "Album", trackCfg)
	track1.Duration = 180 * time.Second
	track2 := model.NewTrack("bbbbbbbbbbbbbbbbbbbbbb", "track2", []string{"Artist"}, "Album", trackCfg)
	track2.Duration = 200 * time.Second

	c.Tracks = []*model.Track{track1, track2}

	return c
}
