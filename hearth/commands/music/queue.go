package music

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/ellavondegurechaff/hearth/hearth"
	"github.com/ellavondegurechaff/hearth/hearth/config"
	"github.com/ellavondegurechaff/hearth/hearth/utils"
	domain "github.com/ellavondegurechaff/hearth/internal/domain/music"
)

var Queue = discord.SlashCommandCreate{
	Name:        "queue",
	Description: "Show the music queue of this server",
}

var Commands = []discord.ApplicationCommandCreate{
	Queue,
}

func QueueHandler(b *hearth.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateUserError(e, guildOnlyReply)
		}
		if b.Music == nil {
			return utils.EH.CreateSystemError(e, "Music is not available right now.")
		}

		player := b.Music.Player(*guildID)
		tracks := player.Queue()
		current, playing := player.Current()
		if len(tracks) == 0 {
			description := domain.FormatQueue(nil)
			if playing {
				description = fmt.Sprintf("%s\n\n▶️ %s (%s)", description, current.Label(), player.State())
			}
			return utils.EH.CreateInfoEmbed(e, description)
		}

		pages := PageCount(len(tracks), config.QueuePageSize)
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle("Current Queue").
					SetDescription(QueuePage(tracks, page, config.QueuePageSize)).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d tracks", page+1, pages, len(tracks)), "")
				if playing {
					embed.SetAuthor(fmt.Sprintf("▶️ %s", current.Label()), "", "")
				}
			},
			Pages:      pages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func PageCount(total, size int) int {
	if total == 0 {
		return 1
	}
	return (total + size - 1) / size
}

// QueuePage renders one page of the queue, numbered by queue position.
func QueuePage(tracks []domain.Track, page, size int) string {
	start := page * size
	if start >= len(tracks) {
		return ""
	}
	end := min(start+size, len(tracks))

	var b strings.Builder
	for i, t := range tracks[start:end] {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", start+i+1, t.Label())
	}
	return b.String()
}
