// Package catalog resolves extracted metadata into Artist, Album, and Song
// rows.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/luis122448/catalog-music-service/internal/constants"
	"github.com/luis122448/catalog-music-service/internal/domain"
	"github.com/luis122448/catalog-music-service/internal/logger"
	"github.com/luis122448/catalog-music-service/internal/store"
)

type Resolver struct {
	db  *store.DB
	log *logger.Logger
}

func NewResolver(db *store.DB, log *logger.Logger) *Resolver {
	return &Resolver{
		db:  db,
		log: log.WithComponent("catalog"),
	}
}

// Ingest resolves or creates the artist and album for one new audio object
// and inserts its song row, all inside a single transaction: either the song
// and any newly created artist/album rows commit together, or none do.
// allKeys is the full object listing of the running scan, used to probe for
// cover art next to the song.
func (r *Resolver) Ingest(ctx context.Context, obj domain.ObjectInfo, meta domain.SongMetadata, allKeys []string) error {
	return r.db.RunInTx(ctx, func(tx *store.DB) error {
		artist, err := r.resolveArtist(ctx, tx, meta.Artist)
		if err != nil {
			return fmt.Errorf("failed to resolve artist %q: %w", meta.Artist, err)
		}

		album, err := r.resolveAlbum(ctx, tx, artist.ID, meta)
		if err != nil {
			return fmt.Errorf("failed to resolve album %q: %w", meta.Album, err)
		}

		if album.CoverArtPath == nil {
			if cover, ok := findCoverArt(obj.Key, allKeys); ok {
				if err := tx.SetAlbumCoverArt(ctx, album.ID, cover); err != nil {
					return err
				}
				r.log.WithAlbum(album.ID, album.Title).Debug("Associated cover art", "cover", cover)
			}
		}

		song := &domain.Song{
			Title:       meta.Title,
			TrackNumber: meta.TrackNumber,
			Duration:    meta.Duration,
			Genre:       meta.Genre,
			FilePath:    obj.Key,
			FileSize:    obj.Size,
			MimeType:    meta.MimeType,
			Visibility:  domain.VisibilityPrivate,
			AlbumID:     album.ID,
		}
		return tx.CreateSong(ctx, song)
	})
}

func (r *Resolver) resolveArtist(ctx context.Context, tx *store.DB, name string) (*domain.Artist, error) {
	artist, err := tx.GetArtistByName(ctx, name)
	if err == nil {
		return artist, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	artist = &domain.Artist{Name: name}
	if err := tx.CreateArtist(ctx, artist); err != nil {
		if store.IsUniqueViolation(err) {
			// A concurrent scan created the same artist between our lookup
			// and insert; reuse its row.
			return tx.GetArtistByName(ctx, name)
		}
		return nil, err
	}
	return artist, nil
}

func (r *Resolver) resolveAlbum(ctx context.Context, tx *store.DB, artistID string, meta domain.SongMetadata) (*domain.Album, error) {
	album, err := tx.GetAlbumByTitleAndArtist(ctx, meta.Album, artistID)
	if err == nil {
		return album, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	album = &domain.Album{
		Title:       meta.Album,
		ArtistID:    artistID,
		Year:        meta.Year,
		ReleaseDate: releaseDateFromYear(meta.Year),
	}
	if err := tx.CreateAlbum(ctx, album); err != nil {
		if store.IsUniqueViolation(err) {
			return tx.GetAlbumByTitleAndArtist(ctx, meta.Album, artistID)
		}
		return nil, err
	}
	return album, nil
}

// releaseDateFromYear derives January 1 of the tag year, when the year is a
// plain 4-digit string. Anything else leaves the release date unset.
func releaseDateFromYear(year string) *time.Time {
	if len(year) != 4 {
		return nil
	}
	y := 0
	for _, ch := range year {
		if ch < '0' || ch > '9' {
			return nil
		}
		y = y*10 + int(ch-'0')
	}
	d := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &d
}

// findCoverArt probes the song's storage folder for common cover file names,
// in priority order, against the keys seen by the current scan. The match is
// case-insensitive; the candidate path is what gets persisted.
func findCoverArt(songKey string, allKeys []string) (string, bool) {
	folder := ""
	if i := strings.LastIndexByte(songKey, '/'); i >= 0 {
		folder = songKey[:i+1]
	}

	for _, name := range constants.CoverArtNames {
		candidate := folder + name
		for _, key := range allKeys {
			if strings.EqualFold(key, candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}
