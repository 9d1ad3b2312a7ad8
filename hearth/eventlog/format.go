package eventlog

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// Place names a guild or channel together with its ID.
type Place struct {
	Name string
	ID   snowflake.ID
}

func Ready(user string, id snowflake.ID) string {
	return fmt.Sprintf("Bot connected as %s (ID: %s)", user, id)
}

func GuildMessage(author, guild, channel, content string) string {
	return fmt.Sprintf("Message from %s in %s (Channel: %s): %q", author, guild, channel, content)
}

func DirectMessage(author, content string) string {
	return fmt.Sprintf("DM from %s: %q", author, content)
}

func MemberJoined(member string, id snowflake.ID, guild string) string {
	return fmt.Sprintf("Member joined: %s (ID: %s) in %s", member, id, guild)
}

func MemberLeft(member string, id snowflake.ID, guild string) string {
	return fmt.Sprintf("Member left: %s (ID: %s) in %s", member, id, guild)
}

func MemberUpdated(guild, before, after string) string {
	return fmt.Sprintf("Member update in %s: %s -> %s", guild, before, after)
}

func ReactionAdded(emoji string, messageID snowflake.ID, user, where string) string {
	return fmt.Sprintf("Reaction added: %s on message ID %s by %s in %s", emoji, messageID, user, where)
}

func ReactionRemoved(emoji string, messageID snowflake.ID, user, where string) string {
	return fmt.Sprintf("Reaction removed: %s from message ID %s by %s in %s", emoji, messageID, user, where)
}

func GuildJoined(guild Place) string {
	return fmt.Sprintf("Bot joined a new guild: %s (ID: %s)", guild.Name, guild.ID)
}

func GuildLeft(guild Place) string {
	return fmt.Sprintf("Bot removed from guild: %s (ID: %s)", guild.Name, guild.ID)
}

func ChannelCreated(channel Place, guild string) string {
	return fmt.Sprintf("Channel created: %s (ID: %s) in %s", channel.Name, channel.ID, guild)
}

func ChannelDeleted(channel Place, guild string) string {
	return fmt.Sprintf("Channel deleted: %s (ID: %s) in %s", channel.Name, channel.ID, guild)
}

// VoiceChange describes a member's voice state transition. A nil place means
// the member was not in a voice channel on that side of the change.
func VoiceChange(member, guild string, before, after *Place) string {
	switch {
	case before == nil && after != nil:
		return fmt.Sprintf("%s joined voice channel %q (ID: %s) in %s", member, after.Name, after.ID, guild)
	case before != nil && after == nil:
		return fmt.Sprintf("%s left voice channel %q (ID: %s) in %s", member, before.Name, before.ID, guild)
	case before != nil && after != nil && before.ID != after.ID:
		return fmt.Sprintf("%s moved from voice channel %q (ID: %s) to %q (ID: %s) in %s",
			member, before.Name, before.ID, after.Name, after.ID, guild)
	default:
		return fmt.Sprintf("Voice state updated for %s in %s", member, guild)
	}
}

// Emoji renders a reaction emoji the way it appears in a message.
func Emoji(e discord.PartialEmoji) string {
	name := ""
	if e.Name != nil {
		name = *e.Name
	}
	if e.ID == nil {
		return name
	}
	if e.Animated {
		return fmt.Sprintf("<a:%s:%s>", name, *e.ID)
	}
	return fmt.Sprintf("<:%s:%s>", name, *e.ID)
}

// MemberString is the member's tag, with the server nickname when one is set.
func MemberString(m discord.Member) string {
	if m.Nick != nil && *m.Nick != "" {
		return fmt.Sprintf("%s (%s)", m.User.Tag(), *m.Nick)
	}
	return m.User.Tag()
}
