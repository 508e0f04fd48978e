// Package metadata reads embedded audio tags out of object byte streams.
package metadata

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
	"go.senan.xyz/taglib"

	"github.com/luis122448/catalog-music-service/internal/constants"
	"github.com/luis122448/catalog-music-service/internal/domain"
	"github.com/luis122448/catalog-music-service/internal/logger"
)

type Extractor struct {
	log *logger.Logger
}

func NewExtractor(log *logger.Logger) *Extractor {
	return &Extractor{log: log.WithComponent("metadata")}
}

// Extract reads tags and audio properties from r. It never fails: on any
// parse or I/O error it returns a degraded record carrying the file name as
// title and unknown-artist/album placeholders, so one malformed file cannot
// abort a scan.
func (e *Extractor) Extract(r io.Reader, fileName string) domain.SongMetadata {
	meta, err := e.extract(r, fileName)
	if err != nil {
		e.log.Error("Failed to extract metadata", "file", fileName, "error", err)
		return domain.SongMetadata{
			Title:  fileName,
			Artist: constants.UnknownArtist,
			Album:  constants.UnknownAlbum,
		}
	}
	return meta
}

func (e *Extractor) extract(r io.Reader, fileName string) (domain.SongMetadata, error) {
	// Tag and duration parsing need random access, so materialize the
	// stream to a scratch file. The extension matters: taglib resolves the
	// container format from it.
	scratch, err := os.CreateTemp("", "music-*"+filepath.Ext(fileName))
	if err != nil {
		return domain.SongMetadata{}, fmt.Errorf("failed to create scratch file: %w", err)
	}
	scratchPath := scratch.Name()
	defer os.Remove(scratchPath) //nolint:errcheck // best-effort cleanup

	_, copyErr := io.Copy(scratch, r)
	closeErr := scratch.Close()
	if copyErr != nil {
		return domain.SongMetadata{}, fmt.Errorf("failed to materialize stream: %w", copyErr)
	}
	if closeErr != nil {
		return domain.SongMetadata{}, fmt.Errorf("failed to close scratch file: %w", closeErr)
	}

	// ReadTags answers an empty map, not an error, for junk bytes carrying an
	// audio extension. A file whose audio header cannot be parsed and whose
	// leading bytes match no known audio container counts as unreadable.
	props, propsErr := taglib.ReadProperties(scratchPath)
	if propsErr != nil && !isAudioContent(scratchPath) {
		return domain.SongMetadata{}, fmt.Errorf("unrecognized audio container: %w", propsErr)
	}

	tags, err := taglib.ReadTags(scratchPath)
	if err != nil {
		return domain.SongMetadata{}, fmt.Errorf("failed to read tags: %w", err)
	}

	meta := domain.SongMetadata{
		Title:       firstTagValue(tags, taglib.Title),
		Artist:      firstTagValue(tags, taglib.Artist),
		Album:       firstTagValue(tags, taglib.Album),
		Year:        firstTagValue(tags, taglib.Date),
		Genre:       firstTagValue(tags, taglib.Genre),
		TrackNumber: ParseTrackNumber(firstTagValue(tags, taglib.TrackNumber)),
	}
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = fileStem(fileName)
	}

	// Duration is best-effort: tags can be readable while the audio header
	// is not.
	if propsErr != nil {
		e.log.Debug("Failed to read audio properties", "file", fileName, "error", propsErr)
	} else {
		meta.Duration = int(props.Length.Seconds())
	}

	meta.MimeType = sniffMimeType(scratchPath, fileName)

	return meta, nil
}

// ParseTrackNumber parses track tags of the forms "3" and "3/12". Absent or
// unparseable values yield nil, never an error.
func ParseTrackNumber(raw string) *int {
	if raw == "" {
		return nil
	}
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = raw[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}

// fileStem returns the part of an object key after the last path separator
// and before the last dot.
func fileStem(fileName string) string {
	base := path.Base(fileName)
	return strings.TrimSuffix(base, path.Ext(base))
}

// isAudioContent reports whether the file's leading bytes identify a known
// audio container.
func isAudioContent(scratchPath string) bool {
	t, err := filetype.MatchFile(scratchPath)
	return err == nil && t.MIME.Type == "audio"
}

// sniffMimeType detects the content type from the file's leading bytes,
// falling back to the extension when the content is not recognizable.
func sniffMimeType(scratchPath, fileName string) string {
	if t, err := filetype.MatchFile(scratchPath); err == nil && t != filetype.Unknown {
		return t.MIME.Value
	}
	switch strings.ToLower(path.Ext(fileName)) {
	case ".mp3":
		return constants.MimeTypeMP3
	case ".flac":
		return constants.MimeTypeFLAC
	case ".ogg":
		return constants.MimeTypeOGG
	case ".m4a":
		return constants.MimeTypeM4A
	}
	return mime.TypeByExtension(strings.ToLower(path.Ext(fileName)))
}

func firstTagValue(tags map[string][]string, key string) string {
	for _, value := range tags[key] {
		if value != "" {
			return value
		}
	}
	return ""
}
