package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luis122448/catalog-music-service/internal/domain"
)

func (db *DB) CreateAlbum(ctx context.Context, album *domain.Album) error {
	if album.ID == "" {
		album.ID = uuid.NewString()
	}
	now := time.Now()
	album.CreatedAt = now
	album.UpdatedAt = now

	query := `INSERT INTO albums (
		id, title, artist_id, year, release_date, cover_art_path, total_tracks,
		created_by, created_at, updated_by, updated_at
	) VALUES (
		:id, :title, :artist_id, :year, :release_date, :cover_art_path, :total_tracks,
		:created_by, :created_at, :updated_by, :updated_at
	)`

	if _, err := db.NamedExecContext(ctx, query, album); err != nil {
		return fmt.Errorf("failed to create album: %w", err)
	}
	return nil
}

func (db *DB) GetAlbumByID(ctx context.Context, id string) (*domain.Album, error) {
	var album domain.Album
	err := db.GetContext(ctx, &album, `SELECT * FROM albums WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &album, nil
}

func (db *DB) GetAlbumByTitleAndArtist(ctx context.Context, title, artistID string) (*domain.Album, error) {
	var album domain.Album
	query := `SELECT * FROM albums WHERE title = ? AND artist_id = ?`
	err := db.GetContext(ctx, &album, query, title, artistID)
	if err != nil {
		return nil, err
	}
	return &album, nil
}

func (db *DB) ListAlbumsByArtist(ctx context.Context, artistID string) ([]*domain.Album, error) {
	var albums []*domain.Album
	query := `SELECT * FROM albums WHERE artist_id = ? ORDER BY release_date DESC, title ASC`
	err := db.SelectContext(ctx, &albums, query, artistID)
	return albums, err
}

// SetAlbumCoverArt fills in an album's cover art path. The IS NULL guard
// makes the write first-wins: a cover chosen by an earlier scan is never
// overwritten.
func (db *DB) SetAlbumCoverArt(ctx context.Context, albumID, coverPath string) error {
	query := `UPDATE albums SET cover_art_path = ?, updated_at = ? WHERE id = ? AND cover_art_path IS NULL`
	if _, err := db.ExecContext(ctx, query, coverPath, time.Now(), albumID); err != nil {
		return fmt.Errorf("failed to set album cover art: %w", err)
	}
	return nil
}

func (db *DB) ListRecentAlbums(ctx context.Context, limit int) ([]*domain.Album, error) {
	var albums []*domain.Album
	query := `SELECT * FROM albums ORDER BY release_date DESC LIMIT ?`
	err := db.SelectContext(ctx, &albums, query, limit)
	return albums, err
}

func (db *DB) SearchAlbums(ctx context.Context, q string) ([]*domain.Album, error) {
	var albums []*domain.Album
	query := `SELECT * FROM albums WHERE title LIKE ? COLLATE NOCASE ORDER BY title ASC`
	err := db.SelectContext(ctx, &albums, query, "%"+q+"%")
	return albums, err
}
