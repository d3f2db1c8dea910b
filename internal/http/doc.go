// Package http provides the HTTP client used for the few plain HTTP
// requests the downloader makes, currently album cover downloads.
//
// Audio never goes through this package; it is fetched over the Spotify
// session.
//
//	client := http.NewClient()
//	cover, err := client.DownloadImage(ctx, spotify.CoverURL(album.Covers[0]))
package http
