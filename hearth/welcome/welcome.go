package welcome

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/hearth/config"
)

const RoleReason = "Automatic welcome role assignment"

// GuildAPI is the part of the REST client the welcome flow needs.
type GuildAPI interface {
	GetGuildChannels(guildID snowflake.ID, opts ...rest.RequestOpt) ([]discord.GuildChannel, error)
	GetRoles(guildID snowflake.ID, opts ...rest.RequestOpt) ([]discord.Role, error)
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
	AddMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
}

type Result struct {
	MessageSent  bool
	RoleAssigned bool
}

// Welcomer greets new members and gives them the members role.
type Welcomer struct {
	cfg Config
}

func NewWelcomer(cfg Config) *Welcomer {
	return &Welcomer{cfg: cfg}
}

func (w *Welcomer) OnGuildMemberJoin(e *events.GuildMemberJoin) {
	ctx, cancel := context.WithTimeout(context.Background(), config.DeliveryTimeout)
	defer cancel()
	w.Greet(ctx, e.Client().Rest(), e.GuildID, e.Member)
}

// Format substitutes {member} in the configured message.
func (w *Welcomer) Format(member discord.Member) string {
	return strings.ReplaceAll(w.cfg.Message, "{member}", member.Mention())
}

// Greet posts the welcome message and assigns the role. Each step is
// independent: a failure is logged and the next step still runs.
func (w *Welcomer) Greet(ctx context.Context, api GuildAPI, guildID snowflake.ID, member discord.Member) Result {
	var result Result
	attrs := []any{
		slog.String("type", "event"),
		slog.String("guild_id", guildID.String()),
		slog.String("user_id", member.User.ID.String()),
	}

	if channel, ok := w.findChannel(ctx, api, guildID, attrs); ok {
		_, err := api.CreateMessage(channel.ID(), discord.MessageCreate{
			Content: w.Format(member),
		}, rest.WithCtx(ctx))
		if err != nil {
			slog.Error("Failed to send welcome message", append(attrs,
				slog.String("channel", channel.Name()),
				slog.Any("error", err))...)
		} else {
			result.MessageSent = true
			slog.Info("Welcome message sent", append(attrs, slog.String("channel", channel.Name()))...)
		}
	}

	if role, ok := w.findRole(ctx, api, guildID, attrs); ok {
		err := api.AddMemberRole(guildID, member.User.ID, role.ID, rest.WithCtx(ctx), rest.WithReason(RoleReason))
		if err != nil {
			slog.Error("Failed to assign welcome role", append(attrs,
				slog.String("role", role.Name),
				slog.Any("error", err))...)
		} else {
			result.RoleAssigned = true
			slog.Info("Assigned welcome role", append(attrs, slog.String("role", role.Name))...)
		}
	}
	return result
}

func (w *Welcomer) findChannel(ctx context.Context, api GuildAPI, guildID snowflake.ID, attrs []any) (discord.GuildChannel, bool) {
	channels, err := api.GetGuildChannels(guildID, rest.WithCtx(ctx))
	if err != nil {
		slog.Error("Failed to list guild channels", append(attrs, slog.Any("error", err))...)
		return nil, false
	}
	sort.SliceStable(channels, func(i, j int) bool {
		return channels[i].Position() < channels[j].Position()
	})
	for _, ch := range channels {
		if ch.Type() == discord.ChannelTypeGuildText && ch.Name() == w.cfg.Channel {
			return ch, true
		}
	}
	slog.Warn("Welcome channel not found", append(attrs, slog.String("channel", w.cfg.Channel))...)
	return nil, false
}

func (w *Welcomer) findRole(ctx context.Context, api GuildAPI, guildID snowflake.ID, attrs []any) (discord.Role, bool) {
	roles, err := api.GetRoles(guildID, rest.WithCtx(ctx))
	if err != nil {
		slog.Error("Failed to list guild roles", append(attrs, slog.Any("error", err))...)
		return discord.Role{}, false
	}
	for _, role := range roles {
		if role.Name == w.cfg.RoleName {
			return role, true
		}
	}
	slog.Warn("Welcome role not found", append(attrs, slog.String("role", w.cfg.RoleName))...)
	return discord.Role{}, false
}
