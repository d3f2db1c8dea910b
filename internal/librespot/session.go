package librespot

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/librespot-org/librespot-golang/Spotify"
	"github.com/librespot-org/librespot-golang/librespot"
	"github.com/librespot-org/librespot-golang/librespot/core"
	"github.com/librespot-org/librespot-golang/librespot/utils"

	"github.com/handiism/spotify-downloader/internal/spotify"
)

// oggSkipBytes is how much of the decrypted file the library's audio
// reader drops before returning data.
const oggSkipBytes = 0xa7

// Session is a logged in librespot session.
type Session struct {
	session *core.Session

	mu     sync.Mutex
	closed bool
}

// Connect logs in with username and password and announces the client as deviceName.
func Connect(ctx context.Context, creds spotify.Credentials, deviceName string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type loginResult struct {
		session *core.Session
		err     error
	}
	done := make(chan loginResult, 1)
	go func() {
		s, err := librespot.Login(creds.Username, creds.Password, deviceName)
		done <- loginResult{s, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("login as %s: %w", creds.Username, res.err)
		}
		return &Session{session: res.session}, nil
	}
}

func (s *Session) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return spotify.ErrSessionClosed
	}
	return nil
}

// Track fetches track metadata.
func (s *Session) Track(ctx context.Context, id spotify.ID) (*spotify.Track, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	t, err := s.session.Mercury().GetTrack(utils.Base62ToHex(id.String()))
	if err != nil {
		return nil, err
	}
	return convertTrack(t, s.session.Country()), nil
}

// Artist fetches artist metadata.
func (s *Session) Artist(ctx context.Context, id spotify.ID) (*spotify.Artist, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	a, err := s.session.Mercury().GetArtist(utils.Base62ToHex(id.String()))
	if err != nil {
		return nil, err
	}
	return &spotify.Artist{ID: gidToID(a.GetGid()), Name: a.GetName()}, nil
}

// Album fetches album metadata including the track list of every disc.
func (s *Session) Album(ctx context.Context, id spotify.ID) (*spotify.Album, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	a, err := s.session.Mercury().GetAlbum(utils.Base62ToHex(id.String()))
	if err != nil {
		return nil, err
	}
	return convertAlbum(a), nil
}

// Playlist fetches playlist contents.
func (s *Session) Playlist(ctx context.Context, id spotify.ID) (*spotify.Playlist, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	list, err := s.session.Mercury().GetPlaylist(playlistPath(id))
	if err != nil {
		return nil, err
	}
	return convertPlaylist(id, list), nil
}

// LoadAudio requests the key for file and returns the decrypted stream.
func (s *Session) LoadAudio(ctx context.Context, track spotify.ID, file spotify.AudioFile) (*spotify.AudioStream, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	fileID, err := hex.DecodeString(string(file.ID))
	if err != nil {
		return nil, fmt.Errorf("file id %q: %w", file.ID, err)
	}
	trackGid, err := hex.DecodeString(utils.Base62ToHex(track.String()))
	if err != nil {
		return nil, fmt.Errorf("track id %s: %w", track, err)
	}

	format, ok := protoFormat(file.Format)
	if !ok {
		return nil, fmt.Errorf("unsupported format %s", file.Format)
	}

	audioFile, err := s.session.Player().LoadTrack(&Spotify.AudioFile{FileId: fileID, Format: &format}, trackGid)
	if err != nil {
		return nil, err
	}

	return &spotify.AudioStream{
		ReadCloser: io.NopCloser(audioFile),
		Offset:     oggSkipBytes,
	}, nil
}

// Close marks the session closed; later calls fail with spotify.ErrSessionClosed.
// librespot-golang exposes no way to disconnect, so the underlying connection
// stays open until the process exits.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
