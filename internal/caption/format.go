package caption

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"strings"
)

// ErrUnknownFormat is returned when a caption format cannot be determined.
var ErrUnknownFormat = errors.New("unknown caption format")

// Format identifies a caption file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatSRT
	FormatVTT
	FormatLRC
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatSRT:
		return "srt"
	case FormatVTT:
		return "vtt"
	case FormatLRC:
		return "lrc"
	default:
		return "unknown"
	}
}

// FormatFromPath guesses the format from a file path or URL path extension.
func FormatFromPath(p string) Format {
	switch strings.ToLower(path.Ext(p)) {
	case ".srt":
		return FormatSRT
	case ".vtt", ".webvtt":
		return FormatVTT
	case ".lrc":
		return FormatLRC
	default:
		return FormatUnknown
	}
}

// FormatFromContentType maps an HTTP Content-Type to a format.
func FormatFromContentType(ct string) Format {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return FormatUnknown
	}
	switch mt {
	case "text/vtt":
		return FormatVTT
	case "application/x-subrip", "application/srt", "text/srt":
		return FormatSRT
	default:
		return FormatUnknown
	}
}

// Parse reads captions in the given format and returns a lookup track.
func Parse(r io.Reader, f Format) (*Track, error) {
	var (
		captions []Caption
		err      error
	)
	switch f {
	case FormatSRT:
		captions, err = ParseSRT(r)
	case FormatVTT:
		captions, err = ParseVTT(r)
	case FormatLRC:
		captions, err = ParseLRC(r)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f, err)
	}
	return NewTrack(captions), nil
}

// Load reads a caption file, picking the parser from its extension.
func Load(filePath string) (*Track, error) {
	f := FormatFromPath(filePath)
	if f == FormatUnknown {
		return nil, fmt.Errorf("%s: %w", filePath, ErrUnknownFormat)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, f)
}
