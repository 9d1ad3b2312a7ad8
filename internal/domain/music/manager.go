package music

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

type PlayRequest struct {
	GuildID        snowflake.ID
	TextChannelID  snowflake.ID
	VoiceChannelID snowflake.ID
	Query          string
}

type PlayResult struct {
	Track   Track
	Started bool
}

// Manager is the registry of guild players and the entry point for music
// commands.
type Manager struct {
	resolver  Resolver
	voice     VoiceConnector
	announcer Announcer

	mu      sync.Mutex
	players map[snowflake.ID]*Player
}

func NewManager(resolver Resolver, voice VoiceConnector, announcer Announcer) *Manager {
	return &Manager{
		resolver:  resolver,
		voice:     voice,
		announcer: announcer,
		players:   make(map[snowflake.ID]*Player),
	}
}

// Player returns the guild's player, creating it on first use.
func (m *Manager) Player(guildID snowflake.ID) *Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[guildID]
	if !ok {
		p = NewPlayer(guildID, m.voice.Output(guildID), m.announcer)
		m.players[guildID] = p
	}
	return p
}

// Join connects to the given voice channel, moving the bot if it is already
// connected elsewhere in the guild.
func (m *Manager) Join(ctx context.Context, guildID, voiceChannelID snowflake.ID) error {
	if voiceChannelID == 0 {
		return ErrNotInVoice
	}
	if current, ok := m.voice.Channel(guildID); ok && current == voiceChannelID {
		return ErrAlreadyConnected
	}
	// the old connection closes without ending its stream
	m.Disconnected(guildID)
	if err := m.voice.Connect(ctx, guildID, voiceChannelID); err != nil {
		return fmt.Errorf("failed to join voice channel %s: %w", voiceChannelID, err)
	}
	return nil
}

// EnsureConnected joins the user's channel unless the bot is already in voice.
func (m *Manager) EnsureConnected(ctx context.Context, guildID, voiceChannelID snowflake.ID) error {
	if voiceChannelID == 0 {
		return ErrNotInVoice
	}
	if _, ok := m.voice.Channel(guildID); ok {
		return nil
	}
	m.Disconnected(guildID)
	if err := m.voice.Connect(ctx, guildID, voiceChannelID); err != nil {
		return fmt.Errorf("failed to join voice channel %s: %w", voiceChannelID, err)
	}
	return nil
}

// Disconnected halts the guild's player after its voice connection went away.
// The queue is kept.
func (m *Manager) Disconnected(guildID snowflake.ID) {
	m.mu.Lock()
	p, ok := m.players[guildID]
	m.mu.Unlock()
	if ok {
		p.Halt()
	}
}

// Leave halts playback, keeps the queue and disconnects.
func (m *Manager) Leave(ctx context.Context, guildID snowflake.ID) error {
	if _, ok := m.voice.Channel(guildID); !ok {
		return ErrNotConnected
	}
	m.Player(guildID).Halt()
	if err := m.voice.Disconnect(ctx, guildID); err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}
	return nil
}

// Play resolves the query and starts or queues the track. Resolution happens
// before any player lock is taken.
func (m *Manager) Play(ctx context.Context, req PlayRequest) (PlayResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return PlayResult{}, ErrEmptyQuery
	}
	if err := m.EnsureConnected(ctx, req.GuildID, req.VoiceChannelID); err != nil {
		return PlayResult{}, err
	}

	track, err := m.resolver.Resolve(ctx, query)
	if err != nil {
		return PlayResult{}, fmt.Errorf("%w: %w", ErrResolve, err)
	}

	player := m.Player(req.GuildID)
	if req.TextChannelID != 0 {
		player.SetChannel(req.TextChannelID)
	}
	started, err := player.Enqueue(track)
	if err != nil {
		return PlayResult{}, err
	}
	return PlayResult{Track: track, Started: started}, nil
}

// Close halts every player and leaves every voice channel.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	players := make([]*Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	m.mu.Unlock()

	var errs []error
	for _, p := range players {
		p.Halt()
		if _, ok := m.voice.Channel(p.guildID); !ok {
			continue
		}
		if err := m.voice.Disconnect(ctx, p.guildID); err != nil {
			errs = append(errs, fmt.Errorf("guild %s: %w", p.guildID, err))
		}
	}
	return errors.Join(errs...)
}

// FormatQueue renders the pending tracks the way the queue command prints them.
func FormatQueue(tracks []Track) string {
	if len(tracks) == 0 {
		return "The queue is empty."
	}
	var b strings.Builder
	b.WriteString("**Current Queue:**")
	for i, t := range tracks {
		fmt.Fprintf(&b, "\n%d. %s", i+1, t.Title)
	}
	return b.String()
}
