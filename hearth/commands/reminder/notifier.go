package reminder

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	domain "github.com/ellavondegurechaff/hearth/internal/domain/reminder"
)

// DirectMessenger is the part of the REST client used to DM reminder owners.
type DirectMessenger interface {
	CreateDMChannel(userID snowflake.ID, opts ...rest.RequestOpt) (*discord.DMChannel, error)
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

// DMNotifier delivers fired reminders as direct messages.
type DMNotifier struct {
	rest DirectMessenger
}

func NewDMNotifier(r DirectMessenger) *DMNotifier {
	return &DMNotifier{rest: r}
}

func (n *DMNotifier) Notify(ctx context.Context, r domain.Reminder) error {
	channel, err := n.rest.CreateDMChannel(r.OwnerID, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to open dm channel: %w", err)
	}
	_, err = n.rest.CreateMessage(channel.ID(), discord.MessageCreate{
		Content: domain.FormatNotification(r),
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
