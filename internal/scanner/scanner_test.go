package scanner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/bogem/id3v2/v2"

	"github.com/luis122448/catalog-music-service/internal/catalog"
	"github.com/luis122448/catalog-music-service/internal/domain"
	"github.com/luis122448/catalog-music-service/internal/logger"
	"github.com/luis122448/catalog-music-service/internal/metadata"
	"github.com/luis122448/catalog-music-service/internal/store"
)

type fakeObjectStore struct {
	objects  map[string][]byte
	dirs     []string
	listErr  error
	openErrs map[string]error
}

func (f *fakeObjectStore) ListAll(ctx context.Context) ([]domain.ObjectInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var infos []domain.ObjectInfo
	for key, data := range f.objects {
		infos = append(infos, domain.ObjectInfo{Key: key, Size: int64(len(data))})
	}
	for _, dir := range f.dirs {
		infos = append(infos, domain.ObjectInfo{Key: dir, IsDir: true})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (f *fakeObjectStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err, ok := f.openErrs[key]; ok {
		return nil, err
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func setupScanner(t *testing.T, objects *fakeObjectStore) (*Scanner, *store.DB) {
	t.Helper()

	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logger.Default()
	s := New(objects, db, metadata.NewExtractor(log), catalog.NewResolver(db, log), log)
	return s, db
}

// taggedMP3 returns a minimal MP3 stream with the given ID3v2 text frames.
func taggedMP3(t *testing.T, title, artist, album string) []byte {
	t.Helper()

	p := filepath.Join(t.TempDir(), "fixture.mp3")
	audio := make([]byte, 2048)
	audio[0], audio[1] = 0xFF, 0xFB
	if err := os.WriteFile(p, audio, 0o644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(p, id3v2.Options{Parse: false})
	if err != nil {
		t.Fatal(err)
	}
	tag.SetVersion(3)
	tag.SetTitle(title)
	tag.SetArtist(artist)
	tag.SetAlbum(album)
	if err := tag.Save(); err != nil {
		t.Fatal(err)
	}
	tag.Close()

	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestScanIngestsBucket(t *testing.T) {
	objects := &fakeObjectStore{
		objects: map[string][]byte{
			"Incubus/Morning View/01 - Nice to Know You.mp3":     taggedMP3(t, "Nice to Know You", "Incubus", "Morning View"),
			"Incubus/Morning View/13 - Aqueous Transmission.mp3": taggedMP3(t, "Aqueous Transmission", "Incubus", "Morning View"),
			"Incubus/Morning View/cover.jpg":                     []byte{0xFF, 0xD8, 0xFF, 0xD9},
			"Incubus/Morning View/notes.txt":                     []byte("liner notes"),
		},
		dirs: []string{"Incubus/", "Incubus/Morning View/"},
	}
	s, db := setupScanner(t, objects)

	res, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if res.Processed != 2 || res.Skipped != 0 || res.Failed != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	ctx := context.Background()
	artist, err := db.GetArtistByName(ctx, "Incubus")
	if err != nil {
		t.Fatalf("artist not created: %v", err)
	}
	album, err := db.GetAlbumByTitleAndArtist(ctx, "Morning View", artist.ID)
	if err != nil {
		t.Fatalf("album not created: %v", err)
	}
	if album.CoverArtPath == nil || *album.CoverArtPath != "Incubus/Morning View/cover.jpg" {
		t.Errorf("expected cover art from sibling object, got %v", album.CoverArtPath)
	}

	songs, err := db.ListSongsByAlbum(ctx, album.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	for _, song := range songs {
		if song.Visibility != domain.VisibilityPrivate {
			t.Errorf("song %q should start PRIVATE, got %q", song.Title, song.Visibility)
		}
	}
}

func TestScanIsIdempotent(t *testing.T) {
	objects := &fakeObjectStore{
		objects: map[string][]byte{
			"a/b/one.mp3": taggedMP3(t, "One", "A", "B"),
			"a/b/two.mp3": taggedMP3(t, "Two", "A", "B"),
		},
	}
	s, db := setupScanner(t, objects)
	ctx := context.Background()

	if _, err := s.Scan(ctx); err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	res, err := s.Scan(ctx)
	if err != nil {
		t.Fatalf("second scan failed: %v", err)
	}
	if res.Processed != 0 || res.Skipped != 2 {
		t.Fatalf("second scan should skip everything, got %+v", res)
	}

	artists, err := db.ListArtists(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(artists) != 1 {
		t.Errorf("expected 1 artist after rescans, got %d", len(artists))
	}
}

func TestScanIsolatesPerFileFailures(t *testing.T) {
	objects := &fakeObjectStore{
		objects: map[string][]byte{
			"a/good.mp3": taggedMP3(t, "Good", "A", "B"),
			"a/bad.mp3":  nil,
		},
		openErrs: map[string]error{"a/bad.mp3": errors.New("connection reset")},
	}
	s, db := setupScanner(t, objects)

	res, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan should survive per-file failures: %v", err)
	}
	if res.Processed != 1 || res.Failed != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	if _, err := db.GetSongByFilePath(context.Background(), "a/good.mp3"); err != nil {
		t.Errorf("healthy file should still be ingested: %v", err)
	}
}

func TestScanDegradedMetadata(t *testing.T) {
	objects := &fakeObjectStore{
		objects: map[string][]byte{
			"ripped/mystery track.mp3": []byte("not an mp3 at all"),
		},
	}
	s, db := setupScanner(t, objects)

	res, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if res.Processed != 1 {
		t.Fatalf("unreadable tags should still ingest, got %+v", res)
	}

	ctx := context.Background()
	song, err := db.GetSongByFilePath(ctx, "ripped/mystery track.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if song.Title != "ripped/mystery track.mp3" {
		t.Errorf("expected full object key as title, got %q", song.Title)
	}
	if _, err := db.GetArtistByName(ctx, "Unknown Artist"); err != nil {
		t.Errorf("expected Unknown Artist placeholder: %v", err)
	}
}

func TestScanAbortsOnListingFailure(t *testing.T) {
	s, _ := setupScanner(t, &fakeObjectStore{listErr: errors.New("bucket unreachable")})

	if _, err := s.Scan(context.Background()); err == nil {
		t.Fatal("expected listing failure to abort the scan")
	}
}

func TestTriggerScanRejectsConcurrentRun(t *testing.T) {
	s, _ := setupScanner(t, &fakeObjectStore{})

	s.running.Store(true)
	if s.TriggerScan() {
		t.Error("expected trigger to be rejected while a scan is running")
	}
	s.running.Store(false)
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"a/b/song.mp3", true},
		{"a/b/SONG.FLAC", true},
		{"a/b/track.ogg", true},
		{"a/b/track.m4a", true},
		{"a/b/cover.jpg", false},
		{"a/b/notes.txt", false},
		{"a/b/song", false},
	}

	for _, tt := range tests {
		if got := isAudioFile(tt.key); got != tt.want {
			t.Errorf("isAudioFile(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
