// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort       = "8080"
	DefaultDBPath     = "catalog.db"
	DefaultBucket     = "music"
	DefaultPresignTTL = 1 * time.Hour
)

// MIME Types
const (
	MimeTypeFLAC = "audio/x-flac"
	MimeTypeMP3  = "audio/mpeg"
	MimeTypeOGG  = "audio/ogg"
	MimeTypeM4A  = "audio/mp4"
	MimeTypeJPEG = "image/jpeg"
)

// Audio file extensions the scanner catalogs
var AudioExtensions = []string{".mp3", ".flac", ".ogg", ".m4a"}

// Cover art file names probed next to a song, in priority order
var CoverArtNames = []string{"cover.jpg", "cover.png", "folder.jpg", "folder.png", "front.jpg"}

// Fallback values when tags cannot be read at all
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// UI/UX
const (
	MaxTopTracks   = 10
	MaxNewReleases = 10
)
