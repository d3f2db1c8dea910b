package download

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/handiism/spotify-downloader/internal/spotify"
)

// fakeSession is an in-memory spotify.Session.
type fakeSession struct {
	tracks    map[spotify.ID]*spotify.Track
	artists   map[spotify.ID]*spotify.Artist
	albums    map[spotify.ID]*spotify.Album
	playlists map[spotify.ID]*spotify.Playlist
	audio     map[spotify.FileID][]byte

	// offset is reported as AudioStream.Offset.
	offset int64

	// closed makes every call fail with ErrSessionClosed.
	closed bool

	loads []spotify.ID
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		tracks:    make(map[spotify.ID]*spotify.Track),
		artists:   make(map[spotify.ID]*spotify.Artist),
		albums:    make(map[spotify.ID]*spotify.Album),
		playlists: make(map[spotify.ID]*spotify.Playlist),
		audio:     make(map[spotify.FileID][]byte),
	}
}

var errNotFound = errors.New("not found")

func (s *fakeSession) Track(ctx context.Context, id spotify.ID) (*spotify.Track, error) {
	if s.closed {
		return nil, spotify.ErrSessionClosed
	}
	if t, ok := s.tracks[id]; ok {
		return t, nil
	}
	return nil, errNotFound
}

func (s *fakeSession) Artist(ctx context.Context, id spotify.ID) (*spotify.Artist, error) {
	if s.closed {
		return nil, spotify.ErrSessionClosed
	}
	if a, ok := s.artists[id]; ok {
		return a, nil
	}
	return nil, errNotFound
}

func (s *fakeSession) Album(ctx context.Context, id spotify.ID) (*spotify.Album, error) {
	if s.closed {
		return nil, spotify.ErrSessionClosed
	}
	if a, ok := s.albums[id]; ok {
		return a, nil
	}
	return nil, errNotFound
}

func (s *fakeSession) Playlist(ctx context.Context, id spotify.ID) (*spotify.Playlist, error) {
	if s.closed {
		return nil, spotify.ErrSessionClosed
	}
	if p, ok := s.playlists[id]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (s *fakeSession) LoadAudio(ctx context.Context, track spotify.ID, file spotify.AudioFile) (*spotify.AudioStream, error) {
	if s.closed {
		return nil, spotify.ErrSessionClosed
	}
	s.loads = append(s.loads, track)
	data, ok := s.audio[file.ID]
	if !ok {
		return nil, errNotFound
	}
	return &spotify.AudioStream{
		ReadCloser: io.NopCloser(bytes.NewReader(data[s.offset:])),
		Offset:     s.offset,
	}, nil
}

func (s *fakeSession) Close() error { return nil }

// addTrack registers an available track by one artist on album "Album"
// whose decrypted file is header followed by body.
func (s *fakeSession) addTrack(id spotify.ID, name, artist string, body []byte) *spotify.Track {
	artistID := spotify.ID("artist" + string(id[6:]))
	albumID := spotify.ID("albumx" + string(id[6:]))
	fileID := spotify.FileID("file-" + string(id))

	s.artists[artistID] = &spotify.Artist{ID: artistID, Name: artist}
	s.albums[albumID] = &spotify.Album{ID: albumID, Name: "Album", Tracks: []spotify.ID{id}}
	s.audio[fileID] = append(bytes.Repeat([]byte{0x00}, 0xa7), body...)

	t := &spotify.Track{
		ID:        id,
		Name:      name,
		Artists:   []spotify.ID{artistID},
		Album:     albumID,
		Available: true,
		Files: map[spotify.FileFormat]spotify.FileID{
			spotify.FormatOggVorbis320: fileID,
			spotify.FormatOggVorbis160: spotify.FileID("low-" + string(id)),
		},
	}
	s.tracks[id] = t
	return t
}
