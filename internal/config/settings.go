package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/spotify-downloader/internal/audio"
	"github.com/handiism/spotify-downloader/internal/model"
	"gopkg.in/yaml.v2"
)

// AudioHeaderSize is the size of the service specific header in front of
// the Ogg data of every decrypted file.
const AudioHeaderSize = 0xa7

// Settings holds all configuration options.
type Settings struct {
	// Session settings
	DeviceName string `json:"device_name" yaml:"device_name"`

	// Download settings
	DownloadsPath   string `json:"downloads_path" yaml:"downloads_path"`
	FileNameFormat  string `json:"file_name_format" yaml:"file_name_format"`
	AudioHeaderSize int64  `json:"audio_header_size" yaml:"audio_header_size"`

	// Cover art settings
	SaveCoverArtInFolder    bool `json:"save_cover_art_in_folder" yaml:"save_cover_art_in_folder"`
	CoverArtInFolderResize  bool `json:"cover_art_in_folder_resize" yaml:"cover_art_in_folder_resize"`
	CoverArtInFolderMaxSize int  `json:"cover_art_in_folder_max_size" yaml:"cover_art_in_folder_max_size"`
	ConvertCoverArtToJPG    bool `json:"convert_cover_art_to_jpg" yaml:"convert_cover_art_to_jpg"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist" yaml:"create_playlist"`
	PlaylistFormat string `json:"playlist_format" yaml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended" yaml:"m3u_extended"`

	// Tag settings
	ModifyTags bool   `json:"modify_tags" yaml:"modify_tags"`
	TagCommand string `json:"tag_command" yaml:"tag_command"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DeviceName: "spotify-dl",

		DownloadsPath:   ".",
		FileNameFormat:  "{artists} - {title}.ogg",
		AudioHeaderSize: AudioHeaderSize,

		SaveCoverArtInFolder:    false,
		CoverArtInFolderResize:  false,
		CoverArtInFolderMaxSize: 1000,
		ConvertCoverArtToJPG:    true,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		ModifyTags: true,
		TagCommand: audio.DefaultTagCommand,
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads settings from a JSON or YAML file on top of the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	var pf model.PlaylistFormat
	switch s.PlaylistFormat {
	case "pls":
		pf = model.PlaylistFormatPLS
	case "wpl":
		pf = model.PlaylistFormatWPL
	case "zpl":
		pf = model.PlaylistFormatZPL
	default:
		pf = model.PlaylistFormatM3U
	}

	return &model.PathConfig{
		DownloadsPath:  s.DownloadsPath,
		PlaylistFormat: pf,
	}
}

// ToTrackConfig converts settings to TrackConfig.
func (s *Settings) ToTrackConfig() *model.TrackConfig {
	return &model.TrackConfig{
		DownloadsPath:  s.DownloadsPath,
		FileNameFormat: s.FileNameFormat,
	}
}

// ToTagConfig converts settings to TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	return &audio.TagConfig{
		ModifyTags: s.ModifyTags,
		Command:    s.TagCommand,
	}
}
