package voice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/disgo/voice"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/internal/domain/music"
)

// Connector joins guild voice channels through the client's voice manager
// and streams tracks into them with ffmpeg.
type Connector struct {
	manager voice.Manager
	ffmpeg  string

	mu      sync.Mutex
	outputs map[snowflake.ID]*Output
}

func NewConnector(manager voice.Manager, ffmpeg string) *Connector {
	if ffmpeg == "" {
		ffmpeg = DefaultFFmpeg
	}
	return &Connector{
		manager: manager,
		ffmpeg:  ffmpeg,
		outputs: make(map[snowflake.ID]*Output),
	}
}

func (c *Connector) Connect(ctx context.Context, guildID, channelID snowflake.ID) error {
	if conn := c.manager.GetConn(guildID); conn != nil {
		// moving between channels needs a fresh session; closing the conn
		// leaves the stream running, so stop it here
		c.stopOutput(guildID)
		conn.Close(ctx)
	}

	conn := c.manager.CreateConn(guildID)
	if err := conn.Open(ctx, channelID, false, true); err != nil {
		conn.Close(ctx)
		return fmt.Errorf("failed to open voice connection: %w", err)
	}

	slog.Info("Joined voice channel",
		slog.String("type", "component"),
		slog.String("guild_id", guildID.String()),
		slog.String("channel_id", channelID.String()),
	)
	return nil
}

func (c *Connector) Disconnect(ctx context.Context, guildID snowflake.ID) error {
	conn := c.manager.GetConn(guildID)
	if conn == nil {
		return music.ErrNotConnected
	}
	c.stopOutput(guildID)
	conn.Close(ctx)

	slog.Info("Left voice channel",
		slog.String("type", "component"),
		slog.String("guild_id", guildID.String()),
	)
	return nil
}

func (c *Connector) stopOutput(guildID snowflake.ID) {
	c.mu.Lock()
	out, ok := c.outputs[guildID]
	c.mu.Unlock()
	if ok {
		out.Stop()
	}
}

func (c *Connector) Channel(guildID snowflake.ID) (snowflake.ID, bool) {
	conn := c.manager.GetConn(guildID)
	if conn == nil {
		return 0, false
	}
	channelID := conn.ChannelID()
	if channelID == nil {
		return 0, false
	}
	return *channelID, true
}

func (c *Connector) Output(guildID snowflake.ID) music.Output {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, ok := c.outputs[guildID]
	if !ok {
		out = &Output{
			guildID: guildID,
			ffmpeg:  c.ffmpeg,
			conn:    func() voice.Conn { return c.manager.GetConn(guildID) },
		}
		c.outputs[guildID] = out
	}
	return out
}
