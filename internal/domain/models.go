package domain

import (
	"time"
)

// Visibility gates whether a song is exposed to public browsing.
type Visibility string

const (
	VisibilityPrivate  Visibility = "PRIVATE"
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityUnlisted Visibility = "UNLISTED"
)

// Valid reports whether v is one of the known visibility states.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityUnlisted:
		return true
	}
	return false
}

// Artist is a catalog artist, created lazily on the first song referencing it.
type Artist struct {
	ID         string      `json:"id" db:"id"`
	Name       string      `json:"name" db:"name"`
	Bio        string      `json:"bio,omitempty" db:"bio"`
	Genres     StringSlice `json:"genres,omitempty" db:"genres"`
	Images     StringSlice `json:"images,omitempty" db:"images"`
	Popularity int         `json:"popularity,omitempty" db:"popularity"`
	CreatedBy  string      `json:"created_by,omitempty" db:"created_by"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedBy  string      `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// Album belongs to exactly one artist; (title, artist) is its identity key.
type Album struct {
	ID           string     `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	ArtistID     string     `json:"artist_id" db:"artist_id"`
	Year         string     `json:"year,omitempty" db:"year"`
	ReleaseDate  *time.Time `json:"release_date,omitempty" db:"release_date"`
	CoverArtPath *string    `json:"cover_art_path,omitempty" db:"cover_art_path"`
	TotalTracks  int        `json:"total_tracks,omitempty" db:"total_tracks"`
	CreatedBy    string     `json:"created_by,omitempty" db:"created_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedBy    string     `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Song is a cataloged audio object. FilePath is the storage key and the
// global dedup sentinel: at most one row exists per path.
type Song struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	TrackNumber *int       `json:"track_number,omitempty" db:"track_number"`
	Duration    int        `json:"duration,omitempty" db:"duration"` // seconds
	Genre       string     `json:"genre,omitempty" db:"genre"`
	FilePath    string     `json:"file_path" db:"file_path"`
	FileSize    int64      `json:"file_size,omitempty" db:"file_size"`
	MimeType    string     `json:"mime_type,omitempty" db:"mime_type"`
	Visibility  Visibility `json:"visibility" db:"visibility"`
	AlbumID     string     `json:"album_id" db:"album_id"`
	CreatedBy   string     `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedBy   string     `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// SongMetadata is what the extractor reads out of one audio object.
// Empty strings mean the tag did not carry the field; TrackNumber is nil
// when absent or unparseable.
type SongMetadata struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	Year        string `json:"year,omitempty"`
	TrackNumber *int   `json:"track_number,omitempty"`
	Duration    int    `json:"duration,omitempty"` // seconds
	Genre       string `json:"genre,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

// ObjectInfo describes one entry of a bucket listing.
type ObjectInfo struct {
	Key   string `json:"key"`
	Size  int64  `json:"size"`
	IsDir bool   `json:"is_dir"`
}
