package spotify

import (
	"context"
	"fmt"

	"github.com/samber/lo"
)

// Expansion is the result of resolving one reference.
type Expansion struct {
	Reference Reference

	// Name is the album or playlist name. Empty for track references.
	Name string

	Tracks []ID
}

// Resolver turns references into track IDs.
type Resolver struct {
	session Session
}

// NewResolver creates a Resolver backed by session.
func NewResolver(session Session) *Resolver {
	return &Resolver{session: session}
}

// Resolve expands a single reference. Track references resolve to
// themselves without touching the session.
func (r *Resolver) Resolve(ctx context.Context, ref Reference) (*Expansion, error) {
	switch ref.Kind {
	case KindTrack:
		return &Expansion{Reference: ref, Tracks: []ID{ref.ID}}, nil

	case KindAlbum:
		album, err := r.session.Album(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("get album %s: %w", ref.ID, err)
		}
		return &Expansion{Reference: ref, Name: album.Name, Tracks: album.Tracks}, nil

	case KindPlaylist:
		playlist, err := r.session.Playlist(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("get playlist %s: %w", ref.ID, err)
		}
		return &Expansion{Reference: ref, Name: playlist.Name, Tracks: playlist.Tracks}, nil
	}

	return nil, fmt.Errorf("cannot resolve %s reference", ref.Kind)
}

// Union returns the track IDs of all expansions in source order, keeping
// only the first occurrence of each ID.
func Union(expansions []*Expansion) []ID {
	var ids []ID
	for _, e := range expansions {
		ids = append(ids, e.Tracks...)
	}
	return lo.Uniq(ids)
}
