package voice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/disgo/voice"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/internal/domain/music"
)

const speakingTimeout = 5 * time.Second

// Output plays one track at a time into a guild voice connection.
type Output struct {
	guildID snowflake.ID
	ffmpeg  string
	conn    func() voice.Conn

	mu      sync.Mutex
	current *Stream
}

func (o *Output) Play(track music.Track, onFinish func()) error {
	conn := o.conn()
	if conn == nil {
		return music.ErrNotConnected
	}

	stream, err := StartStream(context.Background(), o.ffmpeg, track.StreamURL, onFinish)
	if err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}

	o.mu.Lock()
	previous := o.current
	o.current = stream
	o.mu.Unlock()
	if previous != nil {
		previous.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), speakingTimeout)
	defer cancel()
	if err := conn.SetSpeaking(ctx, voice.SpeakingFlagMicrophone); err != nil {
		slog.Warn("Failed to set speaking flag",
			slog.String("type", "component"),
			slog.String("guild_id", o.guildID.String()),
			slog.Any("error", err),
		)
	}
	conn.SetOpusFrameProvider(stream)
	return nil
}

func (o *Output) Pause() {
	if s := o.stream(); s != nil {
		s.SetPaused(true)
	}
}

func (o *Output) Resume() {
	if s := o.stream(); s != nil {
		s.SetPaused(false)
	}
}

func (o *Output) Stop() {
	o.mu.Lock()
	s := o.current
	o.current = nil
	o.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}

func (o *Output) stream() *Stream {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}
