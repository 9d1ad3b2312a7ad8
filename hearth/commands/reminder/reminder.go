package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/hearth/hearth/config"
	"github.com/ellavondegurechaff/hearth/hearth/utils"
	domain "github.com/ellavondegurechaff/hearth/internal/domain/reminder"
)

var Reminder = discord.SlashCommandCreate{
	Name:        "reminder",
	Description: "Add, list or delete your reminders",
}

var Commands = []discord.ApplicationCommandCreate{
	Reminder,
}

type Handler struct {
	service *domain.Service
	drafts  *DraftStore
}

func NewHandler(service *domain.Service, drafts *DraftStore) *Handler {
	return &Handler{
		service: service,
		drafts:  drafts,
	}
}

func (h *Handler) HandleCommand(e *handler.CommandEvent) error {
	return e.CreateMessage(MenuMessage())
}

func (h *Handler) HandleAdd(e *handler.ComponentEvent) error {
	h.drafts.Reset(e.User().ID)
	return e.CreateMessage(AddMessage())
}

func (h *Handler) HandleTimezone(e *handler.ComponentEvent) error {
	values := e.StringSelectMenuInteractionData().Values
	if len(values) == 0 {
		return e.DeferUpdateMessage()
	}
	tz := values[0]
	h.drafts.Update(e.User().ID, func(s *Selection) { s.Timezone = tz })
	return utils.EH.Ephemeral(e, fmt.Sprintf("🕑 Time Zone set to **%s**", tz))
}

func (h *Handler) HandleRecurrence(e *handler.ComponentEvent) error {
	values := e.StringSelectMenuInteractionData().Values
	if len(values) == 0 {
		return e.DeferUpdateMessage()
	}
	recurrence, err := domain.ParseRecurrence(values[0])
	if err != nil {
		return utils.EH.CreateUserError(e, "Unknown frequency.")
	}
	h.drafts.Update(e.User().ID, func(s *Selection) { s.Recurrence = recurrence })
	return utils.EH.Ephemeral(e, fmt.Sprintf("🔁 Frequency set to **%s**", recurrence))
}

func (h *Handler) HandleNext(e *handler.ComponentEvent) error {
	sel, ok := h.drafts.Get(e.User().ID)
	if !ok || !sel.Complete() {
		return utils.EH.Ephemeral(e, "Please choose both Time Zone and Frequency first.")
	}
	return e.Modal(CreateModal())
}

func (h *Handler) HandleCreate(e *handler.ModalEvent) error {
	userID := e.User().ID
	sel, ok := h.drafts.Get(userID)
	if !ok || !sel.Complete() {
		return utils.EH.Ephemeral(e, "Please choose both Time Zone and Frequency first.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()

	r, err := h.service.Create(ctx, domain.Draft{
		OwnerID:    userID,
		Name:       e.Data.Text(nameInputID),
		When:       e.Data.Text(whenInputID),
		Timezone:   sel.Timezone,
		Details:    e.Data.Text(detailsInputID),
		Recurrence: sel.Recurrence,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidTime):
		return utils.EH.Ephemeral(e, "❌ Invalid date/time. Use YYYY-MM-DD HH:MM")
	case errors.Is(err, domain.ErrEmptyName):
		return utils.EH.CreateUserError(e, "A reminder needs a name.")
	case errors.Is(err, domain.ErrUnknownTimezone), errors.Is(err, domain.ErrInvalidRecurrence):
		return utils.EH.CreateUserError(e, "Please pick the time zone and frequency again.")
	case err != nil:
		slog.Error("Failed to create reminder",
			slog.String("type", "cmd"),
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		return utils.EH.CreateSystemError(e, "Could not save your reminder, please try again later.")
	}

	h.drafts.Reset(userID)
	slog.Info("Reminder created",
		slog.String("type", "cmd"),
		slog.Int64("reminder_id", r.ID),
		slog.String("user_id", userID.String()),
		slog.String("recurrence", string(r.Recurrence)))
	return utils.EH.EphemeralEmbed(e, CreatedEmbed(r))
}

func (h *Handler) HandleList(e *handler.ComponentEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()

	reminders, err := h.service.Upcoming(ctx, e.User().ID)
	if err != nil {
		slog.Error("Failed to list reminders",
			slog.String("type", "cmd"),
			slog.String("user_id", e.User().ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateSystemError(e, "Could not load your reminders.")
	}
	return e.CreateMessage(ListMessage(reminders))
}

func (h *Handler) HandleDelete(e *handler.ComponentEvent) error {
	values := e.StringSelectMenuInteractionData().Values
	if len(values) == 0 {
		return e.DeferUpdateMessage()
	}
	id, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return utils.EH.Ephemeral(e, "❌ Could not find that reminder.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()

	removed, err := h.service.Delete(ctx, e.User().ID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return utils.EH.Ephemeral(e, "❌ Could not find that reminder.")
	}
	if err != nil {
		slog.Error("Failed to delete reminder",
			slog.String("type", "cmd"),
			slog.Int64("reminder_id", id),
			slog.Any("error", err))
		return utils.EH.CreateSystemError(e, "Could not delete that reminder.")
	}

	return e.UpdateMessage(discord.MessageUpdate{
		Content:    utils.Ptr(RemovedContent(removed)),
		Embeds:     &[]discord.Embed{},
		Components: &[]discord.ContainerComponent{},
	})
}
