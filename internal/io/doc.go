// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Filename sanitization
//   - Exclusive file creation, so existing files are never overwritten
//   - Streaming audio to disk past a fixed-size header
//   - Image resizing and format conversion for cover art
//
// # Writing Audio
//
//	n, err := ioutils.WriteStream(ctx, "/music/A - B.ogg", stream, 0xa7, nil)
//	if errors.Is(err, os.ErrExist) {
//	    // somebody else wrote the file first
//	}
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("AC/DC") // Returns "AC_DC"
//
// # Image Processing
//
//	cover, err := ioutils.ProcessCover(ctx, imageData, ioutils.CoverOptions{MaxSize: 500, ToJPEG: true})
//	if err == nil {
//	    err = ioutils.WriteFile("/music/Album"+cover.Ext, cover.Data)
//	}
package ioutils
