package download

import (
	"github.com/handiism/spotify-downloader/internal/model"
	"github.com/handiism/spotify-downloader/internal/spotify"
)

// Status is the outcome of processing one track.
type Status int

const (
	StatusDownloaded Status = iota
	StatusSkipped
	StatusUnavailable
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDownloaded:
		return "downloaded"
	case StatusSkipped:
		return "skipped"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result records what happened to one queued track.
type Result struct {
	// Requested is the queued ID; Track.ID differs when an alternative was used.
	Requested spotify.ID

	// Track is nil when processing failed before the metadata was complete.
	Track *model.Track

	Status Status
	Err    error
}
