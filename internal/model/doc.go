// Package model defines the output-side data structures of the downloader:
// the tracks written to disk and the collections (albums, playlists) they
// were expanded from.
//
// # Track
//
// Track holds the resolved metadata needed to name and tag one file:
//
//	cfg := &model.TrackConfig{DownloadsPath: ".", FileNameFormat: "{artists} - {title}.ogg"}
//	track := model.NewTrack(id, "Song", []string{"A", "B"}, "Album", cfg)
//	fmt.Println(track.Path) // "A, B - Song.ogg"
//
// # Collection
//
// Collection groups the tracks of one album or playlist reference so a
// playlist file can be written for it:
//
//	c := model.NewCollection("Road Trip", pathCfg)
//	c.Tracks = append(c.Tracks, track)
//	fmt.Println(c.PlaylistPath) // "./Road Trip.m3u"
//
// Available file name placeholders: {artists}, {title}, {album}, {id}
package model
