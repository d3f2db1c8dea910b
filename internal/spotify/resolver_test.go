package spotify

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type stubSession struct {
	albums    map[ID]*Album
	playlists map[ID]*Playlist
}

func (s *stubSession) Track(ctx context.Context, id ID) (*Track, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSession) Artist(ctx context.Context, id ID) (*Artist, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSession) Album(ctx context.Context, id ID) (*Album, error) {
	if a, ok := s.albums[id]; ok {
		return a, nil
	}
	return nil, errors.New("album not found")
}

func (s *stubSession) Playlist(ctx context.Context, id ID) (*Playlist, error) {
	if p, ok := s.playlists[id]; ok {
		return p, nil
	}
	return nil, errors.New("playlist not found")
}

func (s *stubSession) LoadAudio(ctx context.Context, track ID, file AudioFile) (*AudioStream, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSession) Close() error { return nil }

const (
	trackA ID = "aaaaaaaaaaaaaaaaaaaaaa"
	trackB ID = "bbbbbbbbbbbbbbbbbbbbbb"
	trackC ID = "cccccccccccccccccccccc"
	trackD ID = "dddddddddddddddddddddd"
	album1 ID = "album1album1album1albu"
	list1  ID = "list1list1list1list1li"
)

func newStubSession() *stubSession {
	return &stubSession{
		albums: map[ID]*Album{
			album1: {ID: album1, Name: "Album One", Tracks: []ID{trackB, trackC}},
		},
		playlists: map[ID]*Playlist{
			list1: {ID: list1, Name: "Mix", Tracks: []ID{trackC, trackD, trackA}},
		},
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(newStubSession())
	ctx := context.Background()

	tests := []struct {
		name     string
		ref      Reference
		wantName string
		want     []ID
		wantErr  bool
	}{
		{"track resolves to itself", Reference{KindTrack, trackA}, "", []ID{trackA}, false},
		{"album expands in order", Reference{KindAlbum, album1}, "Album One", []ID{trackB, trackC}, false},
		{"playlist expands in order", Reference{KindPlaylist, list1}, "Mix", []ID{trackC, trackD, trackA}, false},
		{"missing album", Reference{KindAlbum, trackD}, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := r.Resolve(ctx, tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exp.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", exp.Name, tt.wantName)
			}
			if !reflect.DeepEqual(exp.Tracks, tt.want) {
				t.Errorf("Tracks = %v, want %v", exp.Tracks, tt.want)
			}
		})
	}
}

func TestUnion_SourceOrderFirstWins(t *testing.T) {
	r := NewResolver(newStubSession())
	ctx := context.Background()

	var expansions []*Expansion
	for _, ref := range []Reference{
		{KindTrack, trackA},
		{KindAlbum, album1},
		{KindPlaylist, list1},
	} {
		exp, err := r.Resolve(ctx, ref)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", ref, err)
		}
		expansions = append(expansions, exp)
	}

	got := Union(expansions)
	want := []ID{trackA, trackB, trackC, trackD}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Union() = %v, want %v", got, want)
	}
}
