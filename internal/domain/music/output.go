package music

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// Output is the audio sink of one guild.
//
// Play starts streaming the track and returns once the stream is running.
// onFinish is called exactly once, from another goroutine, when the stream
// ends by itself or after Stop.
type Output interface {
	Play(track Track, onFinish func()) error
	Pause()
	Resume()
	Stop()
}

type Resolver interface {
	Resolve(ctx context.Context, query string) (Track, error)
}

type VoiceConnector interface {
	Connect(ctx context.Context, guildID snowflake.ID, channelID snowflake.ID) error
	Disconnect(ctx context.Context, guildID snowflake.ID) error
	// Channel reports the voice channel the bot is connected to in the guild.
	Channel(guildID snowflake.ID) (snowflake.ID, bool)
	Output(guildID snowflake.ID) Output
}

// Announcer posts playback messages into a text channel.
type Announcer interface {
	Announce(channelID snowflake.ID, content string)
}
