package reminder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/ellavondegurechaff/hearth/hearth/config"
	domain "github.com/ellavondegurechaff/hearth/internal/domain/reminder"
)

const (
	AddButtonID    = "/reminder/add"
	ListButtonID   = "/reminder/list"
	TimezoneID     = "/reminder/tz"
	RecurrenceID   = "/reminder/freq"
	NextButtonID   = "/reminder/next"
	CreateModalID  = "/reminder/create"
	DeleteSelectID = "/reminder/delete"

	nameInputID    = "name"
	whenInputID    = "when"
	detailsInputID = "details"

	maxOptionLabel = 100
)

func MenuMessage() discord.MessageCreate {
	return discord.MessageCreate{
		Embeds: []discord.Embed{
			discord.NewEmbedBuilder().
				SetTitle("🗓️ Reminder App").
				SetDescription("Use the buttons below to add or list your reminders.").
				SetColor(config.InfoColor).
				Build(),
		},
		Components: []discord.ContainerComponent{
			discord.NewActionRow(
				discord.NewPrimaryButton("➕ Add Reminder", AddButtonID),
				discord.NewSecondaryButton("📋 List Reminders", ListButtonID),
			),
		},
		Flags: discord.MessageFlagEphemeral,
	}
}

func AddMessage() discord.MessageCreate {
	zones := make([]discord.StringSelectMenuOption, 0, len(domain.CommonTimezones))
	for _, tz := range domain.CommonTimezones {
		zones = append(zones, discord.NewStringSelectMenuOption(tz, tz))
	}
	freqs := make([]discord.StringSelectMenuOption, 0, len(domain.Recurrences))
	for _, r := range domain.Recurrences {
		freqs = append(freqs, discord.NewStringSelectMenuOption(r.Label(), string(r)))
	}

	return discord.MessageCreate{
		Embeds: []discord.Embed{
			discord.NewEmbedBuilder().
				SetTitle("➕ Add Reminder").
				SetDescription("Select your Time Zone & Frequency:").
				SetColor(config.InfoColor).
				Build(),
		},
		Components: []discord.ContainerComponent{
			discord.NewActionRow(discord.NewStringSelectMenu(TimezoneID, "Time Zone…", zones...)),
			discord.NewActionRow(discord.NewStringSelectMenu(RecurrenceID, "Frequency…", freqs...)),
			discord.NewActionRow(discord.NewSuccessButton("Next", NextButtonID)),
		},
		Flags: discord.MessageFlagEphemeral,
	}
}

func CreateModal() discord.ModalCreate {
	return discord.ModalCreate{
		CustomID: CreateModalID,
		Title:    "➕ New Reminder",
		Components: []discord.ContainerComponent{
			discord.NewActionRow(
				discord.NewShortTextInput(nameInputID, "Name").
					WithRequired(true).
					WithMaxLength(domain.MaxNameLength),
			),
			discord.NewActionRow(
				discord.NewShortTextInput(whenInputID, "Date & Time (YYYY-MM-DD HH:MM)").
					WithRequired(true).
					WithPlaceholder("2025-06-15 09:00"),
			),
			discord.NewActionRow(
				discord.NewParagraphTextInput(detailsInputID, "Details").
					WithRequired(false),
			),
		},
	}
}

func CreatedEmbed(r domain.Reminder) discord.Embed {
	details := r.Details
	if details == "" {
		details = "_none_"
	}
	return discord.NewEmbedBuilder().
		SetTitle("✅ Reminder Created").
		SetDescriptionf("ID `%d` • **%s**", r.ID, r.Name).
		SetColor(config.SuccessColor).
		AddField("When", fmt.Sprintf("%s (%s)", r.LocalString(), r.Timezone), true).
		AddField("Frequency", string(r.Recurrence), true).
		AddField("Details", details, false).
		Build()
}

// ListMessage shows the upcoming reminders with a select to delete one.
// Discord caps select menus at 25 options, so only the soonest are offered.
func ListMessage(reminders []domain.Reminder) discord.MessageCreate {
	if len(reminders) == 0 {
		return discord.MessageCreate{
			Content: "You have no upcoming reminders.",
			Flags:   discord.MessageFlagEphemeral,
		}
	}

	embed := discord.NewEmbedBuilder().
		SetTitle("📋 Your Upcoming Reminders").
		SetColor(config.InfoColor)
	options := make([]discord.StringSelectMenuOption, 0, min(len(reminders), config.MaxSelectOptions))
	for i, r := range reminders {
		if i < config.MaxSelectOptions {
			embed.AddField(
				fmt.Sprintf("%d: %s (%s)", r.ID, r.Name, r.Recurrence),
				fmt.Sprintf("%s (%s)\n%s", r.LocalString(), r.Timezone, r.Details),
				false,
			)
			options = append(options, discord.NewStringSelectMenuOption(
				truncate(fmt.Sprintf("%s @ %s", r.Name, r.LocalString()), maxOptionLabel),
				strconv.FormatInt(r.ID, 10),
			))
		}
	}
	if len(reminders) > config.MaxSelectOptions {
		embed.SetFooterTextf("Showing %d of %d reminders", config.MaxSelectOptions, len(reminders))
	}

	return discord.MessageCreate{
		Embeds: []discord.Embed{embed.Build()},
		Components: []discord.ContainerComponent{
			discord.NewActionRow(discord.NewStringSelectMenu(DeleteSelectID, "Select a reminder to delete", options...)),
		},
		Flags: discord.MessageFlagEphemeral,
	}
}

func RemovedContent(r domain.Reminder) string {
	return fmt.Sprintf("🗑️ Removed **%s**.", r.Name)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
