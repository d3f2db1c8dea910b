// Package download provides the orchestration that turns input references
// into tagged audio files.
//
// # Manager
//
// The Manager runs the whole pipeline, one track at a time:
//
//  1. Classify input lines into track, album and playlist references
//  2. Expand albums and playlists into track IDs (first occurrence wins)
//  3. Fetch track metadata, falling back to the first available alternative
//  4. Fetch artist and album names and compute the file name
//  5. Skip tracks whose file already exists
//  6. Load the decrypted OGG_VORBIS_320 stream, strip its header, write it
//  7. Start vorbiscomment on the new file
//  8. Optionally save cover art and write playlists
//
// # Basic Usage
//
//	manager := download.NewManager(settings, session, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, tracksFile); err != nil {
//	    log.Fatal(err)
//	}
//	if err := manager.StartDownloads(ctx); err != nil {
//	    log.Fatal(err) // cancelled, or the session is gone
//	}
//
// # Failure Policy
//
// Problems with a single track (no playable alternative, missing format,
// metadata errors) are reported through the progress callback and recorded
// in the track's Result; the run moves on to the next track. Nothing is
// retried and partially written files are left in place. Only context
// cancellation and spotify.ErrSessionClosed stop the run.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package download
