// Package audio provides audio file post-processing: Vorbis comment
// tagging through an external command and playlist generation.
//
// # Tagging
//
// The Tagger starts vorbiscomment against a freshly written Ogg file and
// does not wait for it to finish:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.Tag(track)
//
// Written tags:
//   - TITLE
//   - ARTIST (all artists joined by ", ")
//   - ALBUM
//
// # Playlist Generation
//
// Generate playlists for an expanded album or playlist:
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(collection)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
