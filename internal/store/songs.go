package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luis122448/catalog-music-service/internal/domain"
)

func (db *DB) CreateSong(ctx context.Context, song *domain.Song) error {
	if song.ID == "" {
		song.ID = uuid.NewString()
	}
	if song.Visibility == "" {
		song.Visibility = domain.VisibilityPrivate
	}
	now := time.Now()
	song.CreatedAt = now
	song.UpdatedAt = now

	query := `INSERT INTO songs (
		id, title, track_number, duration, genre, file_path, file_size,
		mime_type, visibility, album_id,
		created_by, created_at, updated_by, updated_at
	) VALUES (
		:id, :title, :track_number, :duration, :genre, :file_path, :file_size,
		:mime_type, :visibility, :album_id,
		:created_by, :created_at, :updated_by, :updated_at
	)`

	if _, err := db.NamedExecContext(ctx, query, song); err != nil {
		return fmt.Errorf("failed to create song: %w", err)
	}
	return nil
}

func (db *DB) GetSongByID(ctx context.Context, id string) (*domain.Song, error) {
	var song domain.Song
	err := db.GetContext(ctx, &song, `SELECT * FROM songs WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (db *DB) GetSongByFilePath(ctx context.Context, filePath string) (*domain.Song, error) {
	var song domain.Song
	err := db.GetContext(ctx, &song, `SELECT * FROM songs WHERE file_path = ?`, filePath)
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// SongExistsByPath is the scanner's dedup check.
func (db *DB) SongExistsByPath(ctx context.Context, filePath string) (bool, error) {
	var count int
	err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM songs WHERE file_path = ?`, filePath)
	return count > 0, err
}

func (db *DB) ListSongsByAlbum(ctx context.Context, albumID string) ([]*domain.Song, error) {
	var songs []*domain.Song
	query := `SELECT * FROM songs WHERE album_id = ? ORDER BY track_number ASC, title ASC`
	err := db.SelectContext(ctx, &songs, query, albumID)
	return songs, err
}

func (db *DB) ListSongsByAlbumAndVisibility(ctx context.Context, albumID string, visibility domain.Visibility) ([]*domain.Song, error) {
	var songs []*domain.Song
	query := `SELECT * FROM songs WHERE album_id = ? AND visibility = ? ORDER BY track_number ASC, title ASC`
	err := db.SelectContext(ctx, &songs, query, albumID, visibility)
	return songs, err
}

// ListSongsByArtist returns an artist's songs across all their albums.
func (db *DB) ListSongsByArtist(ctx context.Context, artistID string, visibility domain.Visibility, limit int) ([]*domain.Song, error) {
	var songs []*domain.Song
	query := `SELECT s.* FROM songs s
		JOIN albums a ON a.id = s.album_id
		WHERE a.artist_id = ? AND s.visibility = ?
		ORDER BY s.created_at DESC LIMIT ?`
	err := db.SelectContext(ctx, &songs, query, artistID, visibility, limit)
	return songs, err
}

func (db *DB) UpdateSongVisibility(ctx context.Context, id string, visibility domain.Visibility) error {
	query := `UPDATE songs SET visibility = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, visibility, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update song visibility: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("song %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (db *DB) SearchSongs(ctx context.Context, q string) ([]*domain.Song, error) {
	var songs []*domain.Song
	query := `SELECT * FROM songs WHERE title LIKE ? COLLATE NOCASE ORDER BY title ASC`
	err := db.SelectContext(ctx, &songs, query, "%"+q+"%")
	return songs, err
}
