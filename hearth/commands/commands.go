package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/ellavondegurechaff/hearth/hearth/commands/music"
	"github.com/ellavondegurechaff/hearth/hearth/commands/reminder"
	"github.com/ellavondegurechaff/hearth/hearth/commands/system"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, reminder.Commands...)
	Commands = append(Commands, music.Commands...)
	Commands = append(Commands, system.Commands...)
}
