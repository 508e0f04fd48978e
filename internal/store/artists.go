package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luis122448/catalog-music-service/internal/domain"
)

func (db *DB) CreateArtist(ctx context.Context, artist *domain.Artist) error {
	if artist.ID == "" {
		artist.ID = uuid.NewString()
	}
	now := time.Now()
	artist.CreatedAt = now
	artist.UpdatedAt = now

	query := `INSERT INTO artists (
		id, name, bio, genres, images, popularity,
		created_by, created_at, updated_by, updated_at
	) VALUES (
		:id, :name, :bio, :genres, :images, :popularity,
		:created_by, :created_at, :updated_by, :updated_at
	)`

	if _, err := db.NamedExecContext(ctx, query, artist); err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}
	return nil
}

func (db *DB) GetArtistByID(ctx context.Context, id string) (*domain.Artist, error) {
	var artist domain.Artist
	err := db.GetContext(ctx, &artist, `SELECT * FROM artists WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (db *DB) GetArtistByName(ctx context.Context, name string) (*domain.Artist, error) {
	var artist domain.Artist
	err := db.GetContext(ctx, &artist, `SELECT * FROM artists WHERE name = ?`, name)
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (db *DB) ListArtists(ctx context.Context) ([]*domain.Artist, error) {
	var artists []*domain.Artist
	err := db.SelectContext(ctx, &artists, `SELECT * FROM artists ORDER BY name ASC`)
	return artists, err
}

func (db *DB) SearchArtists(ctx context.Context, q string) ([]*domain.Artist, error) {
	var artists []*domain.Artist
	query := `SELECT * FROM artists WHERE name LIKE ? COLLATE NOCASE ORDER BY name ASC`
	err := db.SelectContext(ctx, &artists, query, "%"+q+"%")
	return artists, err
}
