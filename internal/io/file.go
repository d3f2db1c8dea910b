package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// ErrShortStream is returned when a stream ends inside the header that
// should be skipped.
var ErrShortStream = errors.New("stream shorter than header")

var pathSeparators = regexp.MustCompile(`[/\\]`)

// SanitizeFileName replaces path separators ('/' and '\') with underscores
// so the result is always a single path element.
//
// Example:
//
//	SanitizeFileName("AC/DC")        // Returns "AC_DC"
//	SanitizeFileName(`Left\Right`)   // Returns "Left_Right"
func SanitizeFileName(name string) string {
	return pathSeparators.ReplaceAllString(name, "_")
}

// Exists reports whether something is present at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ProgressWriter wraps a writer and reports the running byte count.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with the bytes written so far.
	OnUpdate func(written int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written)
	}
	return n, err
}

// WriteStream discards the first skip bytes of r and writes the rest to a
// new file at path.
//
// The file is created exclusively: if path already exists WriteStream fails
// with an error matching os.ErrExist and leaves the file untouched. The
// header is consumed before the file is created, so a stream that ends
// early (ErrShortStream) leaves nothing on disk. A failure after that point
// leaves the partial file in place.
//
// It returns the number of bytes written to the file.
func WriteStream(ctx context.Context, path string, r io.Reader, skip int64, onProgress func(written int64)) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if skip > 0 {
		n, err := io.CopyN(io.Discard, r, skip)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, fmt.Errorf("%w: got %d of %d bytes", ErrShortStream, n, skip)
			}
			return 0, err
		}
	}

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return 0, err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var w io.Writer = file
	if onProgress != nil {
		w = &ProgressWriter{Writer: file, OnUpdate: onProgress}
	}

	n, err := io.Copy(w, contextReader{ctx: ctx, r: r})
	if err != nil {
		return n, err
	}
	return n, file.Close()
}

// WriteFile writes data to a new file at path, failing if it exists.
func WriteFile(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
