//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

var (
	imageExts = []string{".jpg", ".png", ".jpeg", ".webp"}

	// albumNames are directory-wide covers shared by every track of an album.
	albumNames = []string{"cover", "folder", "album", "front"}

	// posterNames are directory-wide images for video releases.
	posterNames = []string{"poster", "thumb", "fanart"}

	videoExts = map[string]bool{
		".mkv": true, ".mp4": true, ".m4v": true, ".webm": true,
		".avi": true, ".mov": true, ".ts": true, ".wmv": true,
	}
)

// FindArtwork looks for artwork next to a local media file.
//
// An image sharing the media's base name wins (episode.mkv -> episode.jpg,
// or episode-thumb.jpg as written by media managers). Then video files try
// poster images and audio files try album covers; each falls back to the
// other list. Returns "" when nothing is found.
func FindArtwork(mediaPath string) string {
	dir := filepath.Dir(mediaPath)
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))

	names := []string{base, base + "-thumb", base + "-poster"}
	if isVideo(mediaPath) {
		names = append(names, posterNames...)
		names = append(names, albumNames...)
	} else {
		names = append(names, albumNames...)
		names = append(names, posterNames...)
	}

	for _, name := range names {
		for _, ext := range imageExts {
			path := filepath.Join(dir, name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

func isVideo(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}
