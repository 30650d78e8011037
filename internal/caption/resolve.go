package caption

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoCaptions is returned by Resolve when no source yields captions.
var ErrNoCaptions = errors.New("no captions found")

// sidecarExts are tried in order when looking for a caption file next to the media.
var sidecarExts = []string{".srt", ".vtt", ".lrc"}

// Source describes where captions for a media item may come from.
type Source struct {
	// Location is a caption file, a directory searched for sidecar files,
	// or an http(s) URL. Empty searches the media's own directory.
	Location string

	// Lyrics enables the lrclib lookup when no file is found.
	Lyrics   bool
	Artist   string
	Title    string
	Duration time.Duration
}

// Resolve finds captions for mediaURL. Explicit locations win over sidecar
// files, which win over synced lyrics.
func (f *Fetcher) Resolve(ctx context.Context, mediaURL string, src Source) (*Track, error) {
	loc := src.Location
	if isRemote(loc) {
		return f.FetchURL(ctx, loc)
	}

	dir := ""
	if loc != "" {
		info, err := os.Stat(loc)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return Load(loc)
		}
		dir = loc
	}

	if path, ok := FindSidecar(mediaURL, dir); ok {
		return Load(path)
	}

	if src.Lyrics && src.Artist != "" && src.Title != "" {
		return f.FetchLyrics(ctx, src.Artist, src.Title, src.Duration)
	}
	return nil, ErrNoCaptions
}

// FindSidecar returns a caption file sharing the media file's base name.
// dir overrides the media's directory. Only local media is searched.
func FindSidecar(mediaURL, dir string) (string, bool) {
	media := localPath(mediaURL)
	if media == "" {
		return "", false
	}
	if dir == "" {
		dir = filepath.Dir(media)
	}
	stem := strings.TrimSuffix(filepath.Base(media), filepath.Ext(media))

	for _, ext := range sidecarExts {
		candidate := filepath.Join(dir, stem+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func isRemote(loc string) bool {
	u, err := url.Parse(loc)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// localPath returns the filesystem path for file URLs and plain paths.
func localPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "file":
		return u.Path
	case "":
		return raw
	default:
		return ""
	}
}
