package spotify

import (
	"context"
	"errors"
	"io"
)

// ErrSessionClosed reports that the connection to the service is gone.
// Callers treat it as fatal for the whole run.
var ErrSessionClosed = errors.New("spotify session closed")

// Credentials are the username/password pair used to log in.
type Credentials struct {
	Username string
	Password string
}

// AudioStream is the decrypted content of an audio file.
type AudioStream struct {
	io.ReadCloser

	// Offset is the number of leading bytes of the decrypted file already
	// consumed by the backend before the reader starts.
	Offset int64
}

// Session is the streaming client the downloader depends on.
//
// Every call blocks until the service answers. Implementations own login,
// audio key exchange and decryption.
type Session interface {
	Track(ctx context.Context, id ID) (*Track, error)
	Artist(ctx context.Context, id ID) (*Artist, error)
	Album(ctx context.Context, id ID) (*Album, error)
	Playlist(ctx context.Context, id ID) (*Playlist, error)

	// LoadAudio requests the decryption key for file of track and opens
	// the decrypted stream.
	LoadAudio(ctx context.Context, track ID, file AudioFile) (*AudioStream, error)

	Close() error
}
