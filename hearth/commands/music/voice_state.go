package music

import (
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	domain "github.com/ellavondegurechaff/hearth/internal/domain/music"
)

// VoiceWatcher halts a guild's player when the bot is kicked or its voice
// channel is removed. The voice connection does not end the stream itself.
type VoiceWatcher struct {
	manager *domain.Manager
}

func NewVoiceWatcher(manager *domain.Manager) *VoiceWatcher {
	return &VoiceWatcher{manager: manager}
}

func (w *VoiceWatcher) OnVoiceStateUpdate(e *events.GuildVoiceStateUpdate) {
	w.Handle(e.Client().ID(), e.VoiceState)
}

// Handle reports whether the state update disconnected the bot.
func (w *VoiceWatcher) Handle(selfID snowflake.ID, state discord.VoiceState) bool {
	if state.UserID != selfID || state.ChannelID != nil {
		return false
	}
	w.manager.Disconnected(state.GuildID)
	slog.Info("Voice connection lost",
		slog.String("type", "component"),
		slog.String("guild_id", state.GuildID.String()),
	)
	return true
}
