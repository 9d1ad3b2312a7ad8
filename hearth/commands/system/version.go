package system

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/hearth/hearth"
	"github.com/ellavondegurechaff/hearth/hearth/utils"
)

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Show the running version of the bot",
}

var Commands = []discord.ApplicationCommandCreate{
	Version,
}

func VersionHandler(b *hearth.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(true); err != nil {
			return err
		}
		_, err := e.UpdateInteractionResponse(discord.MessageUpdate{
			Content: utils.Ptr(VersionText(b)),
		})
		return err
	}
}

func VersionText(b *hearth.Bot) string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBackground processes: %d",
		b.Version, b.Commit, b.Processes.GetProcessCount())
}
