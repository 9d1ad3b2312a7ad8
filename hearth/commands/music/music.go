package music

import (
	"errors"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/hearth/handlers"
	domain "github.com/ellavondegurechaff/hearth/internal/domain/music"
)

const guildOnlyReply = "This command can only be used in a server."

// VoiceLocator finds the voice channel a member is currently connected to.
type VoiceLocator func(guildID, userID snowflake.ID) (snowflake.ID, bool)

// PrefixCommands implements the text music commands on top of a music.Manager.
type PrefixCommands struct {
	manager *domain.Manager
	locate  VoiceLocator
}

func NewPrefixCommands(manager *domain.Manager, locate VoiceLocator) *PrefixCommands {
	return &PrefixCommands{
		manager: manager,
		locate:  locate,
	}
}

// Register adds every music command to the router.
func (m *PrefixCommands) Register(r *handlers.PrefixRouter) {
	r.Register(handlers.PrefixCommand{Name: "join", Description: "Join your voice channel", Handler: m.guildOnly(m.Join)})
	r.Register(handlers.PrefixCommand{Name: "leave", Aliases: []string{"disc"}, Description: "Leave the voice channel", Handler: m.guildOnly(m.Leave)})
	r.Register(handlers.PrefixCommand{Name: "play", Usage: "<url or search>", Description: "Play a track or add it to the queue", Handler: m.guildOnly(m.Play)})
	r.Register(handlers.PrefixCommand{Name: "pause", Description: "Pause the current track", Handler: m.guildOnly(m.Pause)})
	r.Register(handlers.PrefixCommand{Name: "resume", Description: "Resume a paused track", Handler: m.guildOnly(m.Resume)})
	r.Register(handlers.PrefixCommand{Name: "stop", Description: "Stop the current track and keep the queue", Handler: m.guildOnly(m.Stop)})
	r.Register(handlers.PrefixCommand{Name: "skip", Description: "Skip to the next track in the queue", Handler: m.guildOnly(m.Skip)})
	r.Register(handlers.PrefixCommand{Name: "queue", Description: "Show the queue", Handler: m.guildOnly(m.Queue)})
	r.Register(handlers.PrefixCommand{Name: "clearqueue", Description: "Clear the queue", Handler: m.guildOnly(m.ClearQueue)})
}

func (m *PrefixCommands) guildOnly(h handlers.PrefixHandler) handlers.PrefixHandler {
	return func(c *handlers.PrefixContext) error {
		if c.GuildID == nil {
			return c.Reply(guildOnlyReply)
		}
		return h(c)
	}
}

func (m *PrefixCommands) userChannel(c *handlers.PrefixContext) (snowflake.ID, bool) {
	if m.locate == nil {
		return 0, false
	}
	return m.locate(*c.GuildID, c.Author.ID)
}

func (m *PrefixCommands) Join(c *handlers.PrefixContext) error {
	channelID, ok := m.userChannel(c)
	if !ok {
		return c.Reply("You need to join a voice channel first.")
	}
	err := m.manager.Join(c, *c.GuildID, channelID)
	switch {
	case errors.Is(err, domain.ErrAlreadyConnected):
		return c.Reply("I'm already in your voice channel.")
	case err != nil:
		_ = c.Reply("I couldn't join your voice channel.")
		return err
	}
	slog.Info("Joined voice channel",
		slog.String("type", "cmd"),
		slog.String("guild_id", c.GuildID.String()),
		slog.String("channel_id", channelID.String()))
	return nil
}

func (m *PrefixCommands) Leave(c *handlers.PrefixContext) error {
	err := m.manager.Leave(c, *c.GuildID)
	if errors.Is(err, domain.ErrNotConnected) {
		return c.Reply("I'm not in a voice channel.")
	}
	if err != nil {
		return err
	}
	slog.Info("Left voice channel",
		slog.String("type", "cmd"),
		slog.String("guild_id", c.GuildID.String()))
	return nil
}

func (m *PrefixCommands) Play(c *handlers.PrefixContext) error {
	channelID, ok := m.userChannel(c)
	if !ok {
		return c.Reply("Please join a voice channel first.")
	}
	if c.Args == "" {
		return c.Reply("Usage: `play <url or search>`")
	}
	if err := m.manager.EnsureConnected(c, *c.GuildID, channelID); err != nil {
		_ = c.Reply("I couldn't join your voice channel.")
		return err
	}

	if err := c.Reply("Searching for the song..."); err != nil {
		return err
	}

	result, err := m.manager.Play(c, domain.PlayRequest{
		GuildID:        *c.GuildID,
		TextChannelID:  c.ChannelID,
		VoiceChannelID: channelID,
		Query:          c.Args,
	})
	if err != nil {
		_ = c.Reply("An error occurred while processing the song.")
		return err
	}

	if result.Started {
		slog.Info("Started playing",
			slog.String("type", "cmd"),
			slog.String("guild_id", c.GuildID.String()),
			slog.String("title", result.Track.Title))
		return c.Reply(domain.NowPlaying(result.Track))
	}
	slog.Info("Added to queue",
		slog.String("type", "cmd"),
		slog.String("guild_id", c.GuildID.String()),
		slog.String("title", result.Track.Title))
	return c.Reply(domain.Queued(result.Track))
}

func (m *PrefixCommands) Pause(c *handlers.PrefixContext) error {
	if err := m.manager.Player(*c.GuildID).Pause(); err != nil {
		return c.Reply("No music is playing to pause.")
	}
	return c.Reply("Music paused.")
}

func (m *PrefixCommands) Resume(c *handlers.PrefixContext) error {
	if err := m.manager.Player(*c.GuildID).Resume(); err != nil {
		return c.Reply("No music is paused.")
	}
	return c.Reply("Music resumed.")
}

func (m *PrefixCommands) Stop(c *handlers.PrefixContext) error {
	if err := m.manager.Player(*c.GuildID).Stop(); err != nil {
		return c.Reply("No music is playing.")
	}
	return c.Reply("Stopped the current track. The queue is preserved.")
}

func (m *PrefixCommands) Skip(c *handlers.PrefixContext) error {
	player := m.manager.Player(*c.GuildID)
	player.SetChannel(c.ChannelID)
	if err := player.Skip(); err != nil {
		return c.Reply("No track is playing.")
	}
	return c.Reply("Skipped the current track.")
}

func (m *PrefixCommands) Queue(c *handlers.PrefixContext) error {
	return c.Reply(domain.FormatQueue(m.manager.Player(*c.GuildID).Queue()))
}

func (m *PrefixCommands) ClearQueue(c *handlers.PrefixContext) error {
	n := m.manager.Player(*c.GuildID).ClearQueue()
	slog.Info("Cleared queue",
		slog.String("type", "cmd"),
		slog.String("guild_id", c.GuildID.String()),
		slog.Int("removed", n))
	return c.Reply("The music queue has been cleared.")
}
