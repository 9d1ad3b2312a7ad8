package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/disgoorg/json"
	"github.com/ellavondegurechaff/hearth/internal/domain/music"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBinary    = "yt-dlp"
	DefaultCacheSize = 256
	DefaultCacheTTL  = 30 * time.Minute
	resolveTimeout   = 45 * time.Second
)

var ErrNoResults = errors.New("no results")

// RunFunc executes the binary and returns its standard output.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

type cachedTrack struct {
	track     music.Track
	timestamp time.Time
}

// Resolver turns a URL or search text into a playable track using yt-dlp.
// Results are cached and identical concurrent lookups share one process.
type Resolver struct {
	binary   string
	run      RunFunc
	cache    *lru.Cache
	cacheTTL time.Duration
	group    singleflight.Group
	now      func() time.Time
}

type Option func(*Resolver)

func WithRunner(run RunFunc) Option {
	return func(r *Resolver) { r.run = run }
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

func NewResolver(binary string, cacheSize int, cacheTTL time.Duration, opts ...Option) *Resolver {
	if binary == "" {
		binary = DefaultBinary
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	cache, _ := lru.New(cacheSize)

	r := &Resolver{
		binary:   binary,
		run:      runCommand,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Resolve(ctx context.Context, query string) (music.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return music.Track{}, music.ErrEmptyQuery
	}

	if cached, ok := r.cache.Get(query); ok {
		if c, ok := cached.(cachedTrack); ok && r.now().Sub(c.timestamp) < r.cacheTTL {
			return c.track, nil
		}
		r.cache.Remove(query)
	}

	// the lookup is shared, so it must outlive any single caller's context
	lookupCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(query, func() (interface{}, error) {
		track, err := r.lookup(lookupCtx, query)
		if err != nil {
			return music.Track{}, err
		}
		r.cache.Add(query, cachedTrack{track: track, timestamp: r.now()})
		return track, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return music.Track{}, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return music.Track{}, res.Err
	}

	track := res.Val.(music.Track)
	slog.Debug("Resolved track",
		slog.String("type", "component"),
		slog.String("query", query),
		slog.String("title", track.Title),
		slog.Bool("shared", res.Shared),
	)
	return track, nil
}

func (r *Resolver) lookup(ctx context.Context, query string) (music.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	out, err := r.run(ctx, r.binary, Args(query)...)
	if err != nil {
		return music.Track{}, fmt.Errorf("yt-dlp failed for %q: %w", query, err)
	}
	track, err := ParseTrack(out)
	if err != nil {
		return music.Track{}, fmt.Errorf("failed to parse yt-dlp output for %q: %w", query, err)
	}
	track.Query = query
	return track, nil
}

// Args builds the yt-dlp arguments. Text that is not a URL becomes a search
// for the first matching video.
func Args(query string) []string {
	target := query
	if !isURL(query) {
		target = "ytsearch1:" + query
	}
	return []string{
		"-J",
		"--no-warnings",
		"--no-playlist",
		"-f", "bestaudio/best",
		target,
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

type info struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	WebpageURL string  `json:"webpage_url"`
	Duration   float64 `json:"duration"`
	Entries    []info  `json:"entries"`
}

// ParseTrack reads the JSON document yt-dlp prints with -J. Search results
// and playlists use their first entry.
func ParseTrack(data []byte) (music.Track, error) {
	var doc info
	if err := json.Unmarshal(data, &doc); err != nil {
		return music.Track{}, err
	}
	if doc.URL == "" && len(doc.Entries) > 0 {
		doc = doc.Entries[0]
	}
	if doc.URL == "" {
		return music.Track{}, ErrNoResults
	}

	title := doc.Title
	if title == "" {
		title = doc.WebpageURL
	}
	return music.Track{
		Title:     title,
		StreamURL: doc.URL,
		URL:       doc.WebpageURL,
		Duration:  time.Duration(doc.Duration * float64(time.Second)),
	}, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}
