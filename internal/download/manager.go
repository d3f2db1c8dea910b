package download

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/handiism/spotify-downloader/internal/audio"
	"github.com/handiism/spotify-downloader/internal/config"
	"github.com/handiism/spotify-downloader/internal/http"
	ioutils "github.com/handiism/spotify-downloader/internal/io"
	"github.com/handiism/spotify-downloader/internal/model"
	"github.com/handiism/spotify-downloader/internal/spotify"
	"github.com/samber/lo"
)

// TargetFormat is the only encoding the manager downloads.
const TargetFormat = spotify.FormatOggVorbis320

var (
	// ErrNoAlternative is returned for an unavailable track without an available alternative.
	ErrNoAlternative = errors.New("no available alternative")

	// ErrFormatUnavailable is returned when a track lacks TargetFormat.
	ErrFormatUnavailable = errors.New("format not available")
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// trackTagger writes tags to a finished file.
type trackTagger interface {
	Tag(track *model.Track) error
}

// Manager coordinates track downloads.
type Manager struct {
	settings    *config.Settings
	session     spotify.Session
	resolver    *spotify.Resolver
	tagger      trackTagger
	playlist    *audio.PlaylistCreator
	httpClient  *http.Client
	coverURL    func(spotify.FileID) string
	trackConfig *model.TrackConfig
	pathConfig  *model.PathConfig

	expansions []*spotify.Expansion
	queue      []spotify.ID
	results    []Result
	written    map[spotify.ID]*model.Track
	covers     map[spotify.ID]bool

	totalTracks     int32
	processedTracks int32
	receivedBytes   int64

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager working over session.
func NewManager(settings *config.Settings, session spotify.Session, onProgress func(ProgressEvent)) *Manager {
	pathCfg := settings.ToPathConfig()

	return &Manager{
		settings:    settings,
		session:     session,
		resolver:    spotify.NewResolver(session),
		tagger:      audio.NewTagger(settings.ToTagConfig()),
		playlist:    audio.NewPlaylistCreator(pathCfg.PlaylistFormat, settings.M3UExtended),
		httpClient:  http.NewClient(),
		coverURL:    spotify.CoverURL,
		trackConfig: settings.ToTrackConfig(),
		pathConfig:  pathCfg,
		written:     make(map[spotify.ID]*model.Track),
		covers:      make(map[spotify.ID]bool),
		onProgress:  onProgress,
	}
}

// Initialize reads references from input, one per line, and resolves them
// into the download queue.
//
// Lines without a reference and references that cannot be resolved are
// reported as warnings and skipped. An error is returned only when input
// cannot be read or ctx is done.
func (m *Manager) Initialize(ctx context.Context, input io.Reader) error {
	reader := bufio.NewReader(input)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read input: %w", readErr)
		}
		if line != "" {
			if err := m.addReference(ctx, strings.TrimRight(line, "\r\n")); err != nil {
				return err
			}
		}
		if readErr != nil {
			break
		}
	}

	m.queue = spotify.Union(m.expansions)
	m.totalTracks = int32(len(m.queue))
	m.progress(ProgressEvent{Message: fmt.Sprintf("%d track(s) queued", len(m.queue)), Level: LevelVerbose})

	return nil
}

// addReference resolves one input line and appends its tracks to the
// expansions. Lines of any length are accepted.
func (m *Manager) addReference(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if spotify.IsComment(line) {
		return nil
	}

	ref, err := spotify.ParseReference(line)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cannot parse track from string %q", strings.TrimSpace(line)), Level: LevelWarning})
		return nil
	}

	expansion, err := m.resolver.Resolve(ctx, ref)
	if err != nil {
		if isFatal(err) {
			return err
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error resolving %s: %v", ref, err), Level: LevelError})
		return nil
	}

	if ref.Kind != spotify.KindTrack {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found %s: %s (%d tracks)", ref.Kind, expansion.Name, len(expansion.Tracks)), Level: LevelInfo})
	}
	m.expansions = append(m.expansions, expansion)
	return nil
}

// Queue returns the resolved track IDs in download order.
func (m *Manager) Queue() []spotify.ID {
	return m.queue
}

// GetCollectionNames returns a label for every album and playlist reference.
func (m *Manager) GetCollectionNames() []string {
	collections := lo.Filter(m.expansions, func(e *spotify.Expansion, _ int) bool {
		return e.Reference.Kind != spotify.KindTrack
	})
	return lo.Map(collections, func(e *spotify.Expansion, _ int) string {
		return fmt.Sprintf("%s: %s (%d tracks)", e.Reference.Kind, e.Name, len(e.Tracks))
	})
}

// StartDownloads processes the queue sequentially.
//
// Per-track failures are recorded and reported; the returned error is
// non-nil only when the run was aborted.
func (m *Manager) StartDownloads(ctx context.Context) error {
	for _, id := range m.queue {
		result := m.downloadTrack(ctx, id)
		m.results = append(m.results, result)
		atomic.AddInt32(&m.processedTracks, 1)

		if result.Err != nil && isFatal(result.Err) {
			return result.Err
		}
	}

	if m.settings.CreatePlaylist {
		m.writePlaylists()
	}

	return nil
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received int64, processed, total int32) {
	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt32(&m.processedTracks), m.totalTracks
}

// Results returns the outcome of every processed track. It must not be
// called while StartDownloads is running.
func (m *Manager) Results() []Result {
	return m.results
}

func (m *Manager) downloadTrack(ctx context.Context, id spotify.ID) Result {
	result := Result{Requested: id}

	fail := func(err error) Result {
		result.Err = err
		switch {
		case errors.Is(err, ErrNoAlternative):
			result.Status = StatusUnavailable
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping track %s: %v", id, err), Level: LevelWarning})
		case isFatal(err):
			result.Status = StatusFailed
		default:
			result.Status = StatusFailed
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading track %s: %v", id, err), Level: LevelError})
		}
		return result
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Getting track %s...", id), Level: LevelInfo})

	meta, err := m.playableTrack(ctx, id)
	if err != nil {
		return fail(err)
	}

	track, album, err := m.describeTrack(ctx, meta)
	if err != nil {
		return fail(err)
	}
	result.Track = track

	formats := lo.Map(lo.Keys(meta.Files), func(f spotify.FileFormat, _ int) string { return f.String() })
	slices.Sort(formats)
	m.progress(ProgressEvent{Message: fmt.Sprintf("File formats: %s", strings.Join(formats, " ")), Level: LevelVerbose})

	if ioutils.Exists(track.Path) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("File %q already exists, download skipped.", track.Path), Level: LevelWarning})
		result.Status = StatusSkipped
		m.written[id] = track
		return result
	}

	file, ok := meta.File(TargetFormat)
	if !ok {
		return fail(fmt.Errorf("%w: track %s has no %s file", ErrFormatUnavailable, meta.ID, TargetFormat))
	}

	if err := m.writeAudio(ctx, meta.ID, file, track); err != nil {
		if errors.Is(err, os.ErrExist) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("File %q already exists, download skipped.", track.Path), Level: LevelWarning})
			result.Status = StatusSkipped
			m.written[id] = track
			return result
		}
		return fail(err)
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Filename: %s", track.Path), Level: LevelSuccess})

	if err := m.tagger.Tag(track); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", track.Path, err), Level: LevelWarning})
	}

	if m.settings.SaveCoverArtInFolder {
		m.saveCoverArt(ctx, album)
	}

	result.Status = StatusDownloaded
	m.written[id] = track
	return result
}

// playableTrack fetches the metadata of id and, if the track is not
// available, of the first available alternative.
func (m *Manager) playableTrack(ctx context.Context, id spotify.ID) (*spotify.Track, error) {
	meta, err := m.session.Track(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get track %s: %w", id, err)
	}
	if meta.Available {
		return meta, nil
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Track %s is not available, finding alternative...", id), Level: LevelWarning})

	for _, altID := range meta.Alternatives {
		alt, err := m.session.Track(ctx, altID)
		if err != nil {
			if isFatal(err) {
				return nil, err
			}
			m.progress(ProgressEvent{Message: fmt.Sprintf("Cannot get alternative %s: %v", altID, err), Level: LevelVerbose})
			continue
		}
		if alt.Available {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Found track alternative %s -> %s", id, alt.ID), Level: LevelWarning})
			return alt, nil
		}
	}

	return nil, fmt.Errorf("%w for track %s", ErrNoAlternative, id)
}

// describeTrack resolves artist and album names and computes the output path.
func (m *Manager) describeTrack(ctx context.Context, meta *spotify.Track) (*model.Track, *spotify.Album, error) {
	artists := make([]string, 0, len(meta.Artists))
	for _, artistID := range meta.Artists {
		artist, err := m.session.Artist(ctx, artistID)
		if err != nil {
			return nil, nil, fmt.Errorf("get artist %s: %w", artistID, err)
		}
		artists = append(artists, artist.Name)
	}

	album, err := m.session.Album(ctx, meta.Album)
	if err != nil {
		return nil, nil, fmt.Errorf("get album %s: %w", meta.Album, err)
	}

	track := model.NewTrack(meta.ID.String(), meta.Name, artists, album.Name, m.trackConfig)
	track.Duration = meta.Duration
	return track, album, nil
}

// writeAudio streams the decrypted file to disk without its header.
func (m *Manager) writeAudio(ctx context.Context, trackID spotify.ID, file spotify.AudioFile, track *model.Track) error {
	stream, err := m.session.LoadAudio(ctx, trackID, file)
	if err != nil {
		return fmt.Errorf("load audio %s: %w", file.ID, err)
	}
	defer stream.Close()

	skip := m.settings.AudioHeaderSize - stream.Offset
	if skip < 0 {
		skip = 0
	}

	var last int64
	_, err = ioutils.WriteStream(ctx, track.Path, stream, skip, func(written int64) {
		atomic.AddInt64(&m.receivedBytes, written-last)
		last = written
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", track.Path, err)
	}
	return nil
}

// saveCoverArt stores the album's largest cover next to the tracks, once
// per album. An existing cover file is left alone.
func (m *Manager) saveCoverArt(ctx context.Context, album *spotify.Album) {
	if len(album.Covers) == 0 || m.covers[album.ID] {
		return
	}
	m.covers[album.ID] = true

	artwork, err := m.httpClient.DownloadImage(ctx, m.coverURL(album.Covers[0]))
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading artwork for %s: %v", album.Name, err), Level: LevelWarning})
		return
	}

	opts := ioutils.CoverOptions{ToJPEG: m.settings.ConvertCoverArtToJPG}
	if m.settings.CoverArtInFolderResize {
		opts.MaxSize = m.settings.CoverArtInFolderMaxSize
	}
	cover, err := ioutils.ProcessCover(ctx, artwork, opts)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error processing artwork for %s: %v", album.Name, err), Level: LevelWarning})
		return
	}

	path := model.CoverArtPath(m.pathConfig, album.Name, cover.Ext)
	if err := ioutils.WriteFile(path, cover.Data); err != nil {
		if !errors.Is(err, os.ErrExist) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving artwork: %v", err), Level: LevelWarning})
		}
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved artwork for %s", album.Name), Level: LevelVerbose})
}

// writePlaylists writes one playlist per album or playlist reference,
// listing the tracks that ended up on disk in source order.
func (m *Manager) writePlaylists() {
	for _, e := range m.expansions {
		if e.Reference.Kind == spotify.KindTrack {
			continue
		}

		collection := model.NewCollection(e.Name, m.pathConfig)
		for _, id := range e.Tracks {
			if track, ok := m.written[id]; ok {
				collection.Tracks = append(collection.Tracks, track)
			}
		}
		if len(collection.Tracks) == 0 {
			continue
		}

		content := m.playlist.CreatePlaylist(collection)
		if err := ioutils.EnsureDir(filepath.Dir(collection.PlaylistPath)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
			continue
		}
		if err := os.WriteFile(collection.PlaylistPath, []byte(content), 0644); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
			continue
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist for %s", e.Name), Level: LevelSuccess})
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// isFatal reports whether err should stop the whole run.
func isFatal(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, spotify.ErrSessionClosed)
}
