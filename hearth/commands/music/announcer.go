package music

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/hearth/config"
)

// MessageSender is the part of the REST client used for announcements.
type MessageSender interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

// RestAnnouncer posts player announcements to a text channel.
type RestAnnouncer struct {
	rest MessageSender
}

func NewRestAnnouncer(r MessageSender) *RestAnnouncer {
	return &RestAnnouncer{rest: r}
}

func (a *RestAnnouncer) Announce(channelID snowflake.ID, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), config.DeliveryTimeout)
	defer cancel()

	_, err := a.rest.CreateMessage(channelID, discord.MessageCreate{
		Content:         content,
		AllowedMentions: &discord.AllowedMentions{},
	}, rest.WithCtx(ctx))
	if err != nil {
		slog.Error("Failed to send music announcement",
			slog.String("type", "error"),
			slog.String("channel_id", channelID.String()),
			slog.Any("error", err))
	}
}
