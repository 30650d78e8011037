package caption

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/llehouerou/mediakit/internal/lrclib"
)

// ErrNoSyncedLyrics is returned when lrclib has lyrics for a track but no timestamps.
var ErrNoSyncedLyrics = errors.New("no synced lyrics")

// Fetcher retrieves caption tracks over the network.
type Fetcher struct {
	httpClient *http.Client
	lyrics     *lrclib.Client
}

// NewFetcher creates a fetcher. A nil lyrics client uses the public lrclib API.
func NewFetcher(httpClient *http.Client, lyrics *lrclib.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if lyrics == nil {
		lyrics = lrclib.New(lrclib.WithHTTPClient(httpClient))
	}
	return &Fetcher{httpClient: httpClient, lyrics: lyrics}
}

// FetchURL downloads a caption file. The format comes from the URL extension,
// falling back to the response Content-Type.
func (f *Fetcher) FetchURL(ctx context.Context, rawURL string) (*Track, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse caption url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch captions: unexpected status: %s", resp.Status)
	}

	format := FormatFromPath(u.Path)
	if format == FormatUnknown {
		format = FormatFromContentType(resp.Header.Get("Content-Type"))
	}
	if format == FormatUnknown {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrUnknownFormat)
	}

	return Parse(resp.Body, format)
}

// FetchLyrics looks up synced lyrics for an audio track and returns them as captions.
func (f *Fetcher) FetchLyrics(ctx context.Context, artist, title string, duration time.Duration) (*Track, error) {
	res, err := f.lyrics.Get(ctx, artist, title, duration)
	if err != nil {
		return nil, err
	}
	if !res.HasSyncedLyrics() {
		return nil, ErrNoSyncedLyrics
	}

	captions, err := ParseLRC(strings.NewReader(res.SyncedLyrics))
	if err != nil {
		return nil, fmt.Errorf("parse synced lyrics: %w", err)
	}
	return NewTrack(captions), nil
}
