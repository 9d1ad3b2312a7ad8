package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/pion/webrtc/v4/pkg/media/oggreader"
)

const DefaultFFmpeg = "ffmpeg"

var opusTags = []byte("OpusTags")

// FFmpegArgs transcodes the source into 48kHz stereo Opus with one 20ms
// packet per Ogg page.
func FFmpegArgs(source string) []string {
	return []string{
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", source,
		"-vn",
		"-loglevel", "error",
		"-c:a", "libopus",
		"-b:a", "96k",
		"-ar", "48000",
		"-ac", "2",
		"-frame_duration", "20",
		"-page_duration", "20000",
		"-f", "ogg",
		"pipe:1",
	}
}

// Stream provides Opus frames read from an Ogg stream. It is handed to the
// voice connection as its frame provider.
type Stream struct {
	reader  *oggreader.OggReader
	closer  func()
	paused  atomic.Bool
	stopped atomic.Bool

	finishOnce sync.Once
	onFinish   func()
}

// StartStream launches ffmpeg for the source and waits for the Ogg header.
func StartStream(ctx context.Context, ffmpeg, source string, onFinish func()) (*Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, ffmpeg, FFmpegArgs(source)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to run %s: %w", ffmpeg, err)
	}

	closer := func() {
		cancel()
		_ = cmd.Wait()
	}

	s, err := NewStream(stdout, onFinish)
	if err != nil {
		closer()
		if msg := stderr.String(); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	s.closer = sync.OnceFunc(closer)
	return s, nil
}

// NewStream reads the Ogg header from r.
func NewStream(r io.Reader, onFinish func()) (*Stream, error) {
	reader, _, err := oggreader.NewWith(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read ogg header: %w", err)
	}
	return &Stream{
		reader:   reader,
		closer:   func() {},
		onFinish: onFinish,
	}, nil
}

func (s *Stream) SetPaused(paused bool) {
	s.paused.Store(paused)
}

// ProvideOpusFrame returns the next Opus packet, or nil while paused and
// after the stream has ended.
func (s *Stream) ProvideOpusFrame() ([]byte, error) {
	if s.stopped.Load() || s.paused.Load() {
		return nil, nil
	}

	for {
		payload, _, err := s.reader.ParseNextPage()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) && !s.stopped.Load() {
				slog.Warn("Audio stream ended with error",
					slog.String("type", "component"),
					slog.Any("error", err),
				)
			}
			s.end()
			return nil, nil
		}
		if bytes.HasPrefix(payload, opusTags) {
			continue
		}
		return payload, nil
	}
}

// Stop ends the stream early. The finish callback still runs once.
func (s *Stream) Stop() {
	s.end()
}

func (s *Stream) Close() {
	s.end()
}

func (s *Stream) end() {
	s.stopped.Store(true)
	s.finishOnce.Do(func() {
		go s.closer()
		if s.onFinish != nil {
			go s.onFinish()
		}
	})
}
