// Package scanner walks the object store and feeds new audio files through
// metadata extraction into the catalog.
package scanner

import (
	"context"
	"errors"
	"io"
	"path"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/luis122448/catalog-music-service/internal/constants"
	"github.com/luis122448/catalog-music-service/internal/domain"
	"github.com/luis122448/catalog-music-service/internal/logger"
	"github.com/luis122448/catalog-music-service/internal/metadata"
	"github.com/luis122448/catalog-music-service/internal/store"
)

// ObjectStore is the view of the bucket the scanner needs.
type ObjectStore interface {
	ListAll(ctx context.Context) ([]domain.ObjectInfo, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Ingester resolves one extracted file into catalog rows.
type Ingester interface {
	Ingest(ctx context.Context, obj domain.ObjectInfo, meta domain.SongMetadata, allKeys []string) error
}

type Scanner struct {
	objects   ObjectStore
	db        *store.DB
	extractor *metadata.Extractor
	ingester  Ingester
	log       *logger.Logger

	running atomic.Bool
}

func New(objects ObjectStore, db *store.DB, extractor *metadata.Extractor, ingester Ingester, log *logger.Logger) *Scanner {
	return &Scanner{
		objects:   objects,
		db:        db,
		extractor: extractor,
		ingester:  ingester,
		log:       log.WithComponent("scanner"),
	}
}

// Result summarizes one completed scan.
type Result struct {
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
}

// TriggerScan starts a scan in the background and returns immediately. It
// reports false when a scan is already in flight.
func (s *Scanner) TriggerScan() bool {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn("Scan already in progress, ignoring trigger")
		return false
	}

	go func() {
		defer s.running.Store(false)
		// Detached from the request that triggered it.
		if _, err := s.Scan(context.Background()); err != nil {
			s.log.Error("Scan failed", "error", err)
		}
	}()
	return true
}

// Running reports whether a scan is currently in flight.
func (s *Scanner) Running() bool {
	return s.running.Load()
}

// Scan lists the whole bucket once and ingests every audio object that is
// not yet in the catalog. A failure on one file is logged and counted, never
// fatal; only a failed listing aborts the scan.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	start := time.Now()
	s.log.Info("Starting bucket scan")

	objects, err := s.objects.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	allKeys := make([]string, 0, len(objects))
	for _, obj := range objects {
		allKeys = append(allKeys, obj.Key)
	}

	res := &Result{}
	for _, obj := range objects {
		if obj.IsDir || !isAudioFile(obj.Key) {
			continue
		}

		switch err := s.processObject(ctx, obj, allKeys); {
		case err == nil:
			res.Processed++
		case err == errAlreadyIngested:
			res.Skipped++
		default:
			res.Failed++
			s.log.WithObject(obj.Key).Error("Failed to ingest object", "error", err)
		}
	}

	res.Duration = time.Since(start)
	s.log.Info("Scan complete",
		"processed", res.Processed,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"duration", res.Duration.String(),
	)
	return res, nil
}

var errAlreadyIngested = errors.New("already ingested")

func (s *Scanner) processObject(ctx context.Context, obj domain.ObjectInfo, allKeys []string) error {
	exists, err := s.db.SongExistsByPath(ctx, obj.Key)
	if err != nil {
		return err
	}
	if exists {
		s.log.WithObject(obj.Key).Debug("Already in catalog, skipping")
		return errAlreadyIngested
	}

	rc, err := s.objects.Open(ctx, obj.Key)
	if err != nil {
		return err
	}
	defer rc.Close()

	meta := s.extractor.Extract(rc, obj.Key)
	return s.ingester.Ingest(ctx, obj, meta, allKeys)
}

func isAudioFile(key string) bool {
	ext := strings.ToLower(path.Ext(key))
	return slices.Contains(constants.AudioExtensions, ext)
}
