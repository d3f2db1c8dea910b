// Package spotify defines how the downloader talks about Spotify entities:
// identifiers, textual references, track/album/playlist metadata and the
// Session contract a streaming client has to satisfy.
//
// # References
//
// Input lines are classified with ParseReference, which understands both the
// URI and the URL forms of track, album and playlist references:
//
//	ref, err := spotify.ParseReference("https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=x")
//	if errors.Is(err, spotify.ErrUnrecognized) {
//	    // warn and skip the line
//	}
//	fmt.Println(ref.Kind, ref.ID) // track 4uLU6hMCjMI75M1A2tKUQC
//
// # Session
//
// Session is the black-box client contract. Login, audio key exchange and
// stream decryption live behind it; see package librespot for the
// implementation used by the commands.
//
// # Resolving
//
// Resolver expands album and playlist references into track IDs:
//
//	resolver := spotify.NewResolver(session)
//	ids, err := resolver.Resolve(ctx, ref)
package spotify
