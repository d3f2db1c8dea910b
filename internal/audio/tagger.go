package audio

import (
	"fmt"
	"os/exec"

	"github.com/handiism/spotify-downloader/internal/model"
)

// DefaultTagCommand is the external tool used to write Vorbis comments.
const DefaultTagCommand = "vorbiscomment"

// TagConfig holds tagging configuration.
type TagConfig struct {
	// ModifyTags is a master switch. If false, Tag does nothing.
	ModifyTags bool

	// Command is the vorbiscomment compatible executable to run.
	Command string
}

// DefaultTagConfig returns the default tag configuration.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags: true,
		Command:    DefaultTagCommand,
	}
}

// Tagger writes Vorbis comments to Ogg files by starting an external command.
//
// Tagging is fire-and-forget: Tag returns once the process has started and
// neither waits for it nor inspects its exit status.
type Tagger struct {
	config *TagConfig

	// start launches cmd; replaced in tests.
	start func(cmd *exec.Cmd) error
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	if config.Command == "" {
		config.Command = DefaultTagCommand
	}
	return &Tagger{config: config, start: startDetached}
}

// Tag starts the tag command for track's file.
//
// An error is returned only when the command could not be started.
func (t *Tagger) Tag(track *model.Track) error {
	if !t.config.ModifyTags {
		return nil
	}

	cmd := exec.Command(t.config.Command, TagArgs(track)...)
	if err := t.start(cmd); err != nil {
		return fmt.Errorf("start %s: %w", t.config.Command, err)
	}
	return nil
}

// TagArgs returns the vorbiscomment arguments that append TITLE, ARTIST and
// ALBUM to the track's file.
func TagArgs(track *model.Track) []string {
	return []string{
		"--append",
		"--tag", "TITLE=" + track.Title,
		"--tag", "ARTIST=" + track.ArtistNames(),
		"--tag", "ALBUM=" + track.Album,
		track.Path,
	}
}

// startDetached starts cmd and reaps it in the background so no zombie is
// left behind. The exit status is discarded.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}
