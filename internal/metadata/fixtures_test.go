package metadata

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	id3v2 "github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

// mp3Tags holds the frames written into a synthesized MP3 fixture. Empty
// fields are omitted from the tag.
type mp3Tags struct {
	Title  string
	Artist string
	Album  string
	Year   string
	Genre  string
	Track  string
}

// writeMP3Fixture synthesizes a small MP3 file carrying an ID3v2.3 tag.
func writeMP3Fixture(t *testing.T, dir, name string, tags mp3Tags) string {
	t.Helper()

	path := filepath.Join(dir, name)
	audio := make([]byte, 2048)
	audio[0], audio[1] = 0xFF, 0xFB // MPEG frame sync
	if err := os.WriteFile(path, audio, 0644); err != nil {
		t.Fatalf("Failed to write fixture audio: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Failed to open fixture for tagging: %v", err)
	}
	defer tag.Close()

	tag.SetVersion(3)
	if tags.Title != "" {
		tag.SetTitle(tags.Title)
	}
	if tags.Artist != "" {
		tag.SetArtist(tags.Artist)
	}
	if tags.Album != "" {
		tag.SetAlbum(tags.Album)
	}
	if tags.Year != "" {
		tag.SetYear(tags.Year)
	}
	if tags.Genre != "" {
		tag.SetGenre(tags.Genre)
	}
	if tags.Track != "" {
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, tags.Track)
	}
	if err := tag.Save(); err != nil {
		t.Fatalf("Failed to save fixture tag: %v", err)
	}

	return path
}

// writeFLACFixture synthesizes a FLAC file with a valid STREAMINFO block,
// vorbis comments, and an embedded picture. totalSeconds drives the duration
// the stream info reports.
func writeFLACFixture(t *testing.T, dir, name string, comments map[string]string, totalSeconds int) string {
	t.Helper()

	const sampleRate = 44100

	f := &flac.File{
		Meta: []*flac.MetaDataBlock{
			{
				Type: flac.StreamInfo,
				Data: flacStreamInfo(sampleRate, 2, 16, uint64(sampleRate*totalSeconds)),
			},
		},
	}

	vc := flacvorbis.New()
	for key, value := range comments {
		if err := vc.Add(key, value); err != nil {
			t.Fatalf("Failed to add vorbis comment %s: %v", key, err)
		}
	}
	cmt := vc.Marshal()
	f.Meta = append(f.Meta, &cmt)

	pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "cover", jpegStub(t), "image/jpeg")
	if err != nil {
		t.Fatalf("Failed to build picture block: %v", err)
	}
	picBlock := pic.Marshal()
	f.Meta = append(f.Meta, &picBlock)

	path := filepath.Join(dir, name)
	if err := f.Save(path); err != nil {
		t.Fatalf("Failed to save FLAC fixture: %v", err)
	}
	return path
}

// flacStreamInfo packs a minimal STREAMINFO block (34 bytes).
func flacStreamInfo(sampleRate, channels, bitsPerSample int, totalSamples uint64) []byte {
	buf := make([]byte, 34)
	binary.BigEndian.PutUint16(buf[0:2], 4096) // min block size
	binary.BigEndian.PutUint16(buf[2:4], 4096) // max block size
	// frame sizes left zero (unknown)

	// sampleRate(20) | channels-1(3) | bps-1(5) | totalSamples(36)
	packed := uint64(sampleRate)<<44 |
		uint64(channels-1)<<41 |
		uint64(bitsPerSample-1)<<36 |
		totalSamples
	binary.BigEndian.PutUint64(buf[10:18], packed)
	// md5 left zero
	return buf
}

// jpegStub returns a decodable 1x1 JPEG; the picture block parses the image
// to record its dimensions.
func jpegStub(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)), nil); err != nil {
		t.Fatalf("Failed to encode stub image: %v", err)
	}
	return buf.Bytes()
}
