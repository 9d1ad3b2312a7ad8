package music

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// Player owns the playback state of a single guild.
//
// Every transition runs under mu. Completion callbacks from the output carry
// the generation they were started with, so a callback that arrives after a
// stop, skip or newer track is ignored.
type Player struct {
	guildID   snowflake.ID
	output    Output
	announcer Announcer

	mu              sync.Mutex
	state           State
	current         *Track
	queue           []Track
	suppressAdvance bool
	generation      uint64
	channelID       snowflake.ID
}

func NewPlayer(guildID snowflake.ID, output Output, announcer Announcer) *Player {
	return &Player{
		guildID:   guildID,
		output:    output,
		announcer: announcer,
	}
}

// SetChannel selects the text channel used for announcements.
func (p *Player) SetChannel(channelID snowflake.ID) {
	p.mu.Lock()
	p.channelID = channelID
	p.mu.Unlock()
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) Current() (Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Track{}, false
	}
	return *p.current, true
}

// Queue returns a copy of the pending tracks in play order.
func (p *Player) Queue() []Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Track, len(p.queue))
	copy(out, p.queue)
	return out
}

// Enqueue starts the track when idle and appends it to the queue otherwise.
// It reports whether playback started.
func (p *Player) Enqueue(track Track) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateIdle {
		p.queue = append(p.queue, track)
		return false, nil
	}

	p.suppressAdvance = false
	if err := p.startLocked(track); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying {
		return ErrNotPlaying
	}
	p.output.Pause()
	p.state = StatePaused
	return nil
}

func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePaused {
		return ErrNotPaused
	}
	p.output.Resume()
	p.state = StatePlaying
	return nil
}

// Stop ends the current track and leaves the queue untouched.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateIdle {
		return ErrNothingPlaying
	}
	p.suppressAdvance = true
	p.haltLocked()
	p.advanceLocked()
	return nil
}

// Skip ends the current track and moves on to the queue head.
func (p *Player) Skip() error {
	p.mu.Lock()
	if p.state == StateIdle {
		p.mu.Unlock()
		return ErrNothingPlaying
	}
	p.haltLocked()
	next := p.advanceLocked()
	channelID := p.channelID
	p.mu.Unlock()

	p.announceStart(channelID, next)
	return nil
}

// Finished handles the end of the stream started with the given generation.
func (p *Player) Finished(generation uint64) {
	p.mu.Lock()
	if generation != p.generation || p.state == StateIdle {
		p.mu.Unlock()
		return
	}
	next := p.advanceLocked()
	channelID := p.channelID
	p.mu.Unlock()

	p.announceStart(channelID, next)
}

// Halt stops playback without advancing, used when leaving the voice channel.
func (p *Player) Halt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateIdle {
		return
	}
	p.haltLocked()
	p.current = nil
	p.state = StateIdle
	p.suppressAdvance = false
}

// ClearQueue drops the pending tracks and returns how many were removed.
func (p *Player) ClearQueue() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.queue)
	p.queue = nil
	return n
}

func (p *Player) haltLocked() {
	// invalidate the completion callback of the stream being stopped
	p.generation++
	p.output.Stop()
}

func (p *Player) startLocked(track Track) error {
	p.generation++
	generation := p.generation
	if err := p.output.Play(track, func() { p.Finished(generation) }); err != nil {
		return fmt.Errorf("failed to start %q: %w", track.Title, err)
	}
	p.current = &track
	p.state = StatePlaying
	return nil
}

// advanceLocked leaves the current track and starts the next playable queue
// entry unless advancing is suppressed. It returns the started track.
func (p *Player) advanceLocked() *Track {
	p.current = nil
	p.state = StateIdle

	if p.suppressAdvance {
		p.suppressAdvance = false
		return nil
	}

	for len(p.queue) > 0 {
		head := p.queue[0]
		p.queue = p.queue[1:]
		if err := p.startLocked(head); err != nil {
			slog.Error("Skipping track that failed to start",
				slog.String("type", "component"),
				slog.String("guild_id", p.guildID.String()),
				slog.String("title", head.Title),
				slog.Any("error", err),
			)
			continue
		}
		return p.current
	}
	return nil
}

func (p *Player) announceStart(channelID snowflake.ID, track *Track) {
	if track == nil || p.announcer == nil || channelID == 0 {
		return
	}
	p.announcer.Announce(channelID, NowPlaying(*track))
}

func NowPlaying(track Track) string {
	return fmt.Sprintf("Now playing: **%s**", track.Title)
}

func Queued(track Track) string {
	return fmt.Sprintf("**%s** has been added to the queue.", track.Title)
}
