package eventlog

import (
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/hearth/logger"
)

// Directory resolves IDs seen in gateway events to display names.
type Directory interface {
	GuildName(guildID snowflake.ID) string
	ChannelName(channelID snowflake.ID) string
	UserName(guildID *snowflake.ID, userID snowflake.ID) string
}

type cacheDirectory struct {
	caches cache.Caches
}

// NewCacheDirectory looks names up in the client caches and falls back to the raw ID.
func NewCacheDirectory(caches cache.Caches) Directory {
	return cacheDirectory{caches: caches}
}

func (d cacheDirectory) GuildName(guildID snowflake.ID) string {
	if g, ok := d.caches.Guild(guildID); ok {
		return g.Name
	}
	return guildID.String()
}

func (d cacheDirectory) ChannelName(channelID snowflake.ID) string {
	if c, ok := d.caches.Channel(channelID); ok {
		return c.Name()
	}
	return channelID.String()
}

func (d cacheDirectory) UserName(guildID *snowflake.ID, userID snowflake.ID) string {
	if guildID != nil {
		if m, ok := d.caches.Member(*guildID, userID); ok {
			return m.User.Tag()
		}
	}
	return userID.String()
}

// Listener writes one log line per observed gateway event.
type Listener struct {
	directory func(client bot.Client) Directory
}

func NewListener() *Listener {
	return &Listener{
		directory: func(client bot.Client) Directory {
			return NewCacheDirectory(client.Caches())
		},
	}
}

var _ bot.EventListener = (*Listener)(nil)

func (l *Listener) OnEvent(event bot.Event) {
	switch e := event.(type) {
	case *events.Ready:
		logger.LogEvent(Ready(e.User.Username, e.User.ID))

	case *events.MessageCreate:
		l.onMessage(e)

	case *events.GuildMemberJoin:
		dir := l.directory(e.Client())
		logger.LogEvent(MemberJoined(e.Member.User.Tag(), e.Member.User.ID, dir.GuildName(e.GuildID)),
			slog.String("guild_id", e.GuildID.String()))

	case *events.GuildMemberLeave:
		dir := l.directory(e.Client())
		logger.LogEvent(MemberLeft(e.User.Tag(), e.User.ID, dir.GuildName(e.GuildID)),
			slog.String("guild_id", e.GuildID.String()))

	case *events.GuildMemberUpdate:
		dir := l.directory(e.Client())
		logger.LogEvent(MemberUpdated(dir.GuildName(e.GuildID), MemberString(e.OldMember), MemberString(e.Member)),
			slog.String("guild_id", e.GuildID.String()))

	case *events.MessageReactionAdd:
		dir := l.directory(e.Client())
		logger.LogEvent(ReactionAdded(Emoji(e.Emoji), e.MessageID, dir.UserName(e.GuildID, e.UserID), l.where(dir, e.GuildID)))

	case *events.MessageReactionRemove:
		dir := l.directory(e.Client())
		logger.LogEvent(ReactionRemoved(Emoji(e.Emoji), e.MessageID, dir.UserName(e.GuildID, e.UserID), l.where(dir, e.GuildID)))

	case *events.GuildJoin:
		logger.LogEvent(GuildJoined(Place{Name: e.Guild.Name, ID: e.Guild.ID}))

	case *events.GuildLeave:
		logger.LogEvent(GuildLeft(Place{Name: e.Guild.Name, ID: e.Guild.ID}))

	case *events.GuildChannelCreate:
		dir := l.directory(e.Client())
		logger.LogEvent(ChannelCreated(Place{Name: e.Channel.Name(), ID: e.ChannelID}, dir.GuildName(e.GuildID)))

	case *events.GuildChannelDelete:
		dir := l.directory(e.Client())
		logger.LogEvent(ChannelDeleted(Place{Name: e.Channel.Name(), ID: e.ChannelID}, dir.GuildName(e.GuildID)))

	case *events.GuildVoiceStateUpdate:
		dir := l.directory(e.Client())
		before := l.voicePlace(dir, e.OldVoiceState.ChannelID)
		after := l.voicePlace(dir, e.VoiceState.ChannelID)
		logger.LogEvent(VoiceChange(e.Member.User.Tag(), dir.GuildName(e.VoiceState.GuildID), before, after))
	}
}

func (l *Listener) onMessage(e *events.MessageCreate) {
	if e.Message.Author.Bot {
		return
	}
	author := e.Message.Author.Tag()
	if e.GuildID == nil {
		logger.LogEvent(DirectMessage(author, e.Message.Content))
		return
	}
	dir := l.directory(e.Client())
	logger.LogEvent(GuildMessage(author, dir.GuildName(*e.GuildID), dir.ChannelName(e.ChannelID), e.Message.Content),
		slog.String("guild_id", e.GuildID.String()),
		slog.String("channel_id", e.ChannelID.String()))
}

func (l *Listener) where(dir Directory, guildID *snowflake.ID) string {
	if guildID == nil {
		return "DM"
	}
	return dir.GuildName(*guildID)
}

func (l *Listener) voicePlace(dir Directory, channelID *snowflake.ID) *Place {
	if channelID == nil {
		return nil
	}
	return &Place{Name: dir.ChannelName(*channelID), ID: *channelID}
}
