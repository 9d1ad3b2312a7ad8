package system

import (
	"fmt"
	"strings"

	"github.com/ellavondegurechaff/hearth/hearth/handlers"
)

// RegisterHelp adds a help command listing everything registered on r.
func RegisterHelp(r *handlers.PrefixRouter) {
	r.Register(handlers.PrefixCommand{
		Name:        "help",
		Description: "Show this list",
		Handler: func(c *handlers.PrefixContext) error {
			return c.Reply(HelpText(r.Prefix(), r.Commands()))
		},
	})
}

func HelpText(prefix string, commands []handlers.PrefixCommand) string {
	var b strings.Builder
	b.WriteString("**Commands:**")
	for _, cmd := range commands {
		usage := prefix + cmd.Name
		if cmd.Usage != "" {
			usage += " " + cmd.Usage
		}
		fmt.Fprintf(&b, "\n`%s` - %s", usage, cmd.Description)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(&b, " (aliases: %s)", strings.Join(cmd.Aliases, ", "))
		}
	}
	b.WriteString("\n\nSlash commands: `/reminder`, `/queue`, `/version`")
	return b.String()
}
