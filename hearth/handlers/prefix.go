package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sahilm/fuzzy"
)

const (
	prefixCommandTimeout = 2 * time.Minute
	panicReply           = "oops, something bad happened"
)

// Message is a text message that may carry a prefix command.
type Message struct {
	ID        snowflake.ID
	GuildID   *snowflake.ID
	ChannelID snowflake.ID
	Author    discord.User
	Content   string
}

// PrefixContext is passed to prefix command handlers.
type PrefixContext struct {
	context.Context
	Message
	Command string
	Args    string
	reply   func(content string) error
}

func (c *PrefixContext) Reply(content string) error {
	return c.reply(content)
}

type PrefixHandler func(c *PrefixContext) error

type PrefixCommand struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Handler     PrefixHandler
}

// PrefixRouter dispatches text commands such as "!play <query>".
type PrefixRouter struct {
	prefix   string
	commands map[string]*PrefixCommand
	aliases  map[string]string
	names    []string
}

func NewPrefixRouter(prefix string) *PrefixRouter {
	return &PrefixRouter{
		prefix:   prefix,
		commands: make(map[string]*PrefixCommand),
		aliases:  make(map[string]string),
	}
}

func (r *PrefixRouter) Prefix() string {
	return r.prefix
}

func (r *PrefixRouter) Register(cmd PrefixCommand) {
	name := strings.ToLower(cmd.Name)
	r.commands[name] = &cmd
	r.names = append(r.names, name)
	for _, alias := range cmd.Aliases {
		alias = strings.ToLower(alias)
		r.aliases[alias] = name
		r.names = append(r.names, alias)
	}
}

// Commands lists the registered commands sorted by name.
func (r *PrefixRouter) Commands() []PrefixCommand {
	out := make([]PrefixCommand, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, *cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *PrefixRouter) lookup(name string) (*PrefixCommand, bool) {
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Suggest returns the registered name closest to an unknown command.
func (r *PrefixRouter) Suggest(name string) (string, bool) {
	matches := fuzzy.Find(name, r.names)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}

// Dispatch runs the command in msg, if any. It reports whether the message
// was addressed to the router.
func (r *PrefixRouter) Dispatch(ctx context.Context, msg Message, reply func(string) error) bool {
	content := strings.TrimSpace(msg.Content)
	if !strings.HasPrefix(content, r.prefix) {
		return false
	}
	content = strings.TrimPrefix(content, r.prefix)
	if content == "" || strings.HasPrefix(content, " ") {
		return false
	}

	name, args, _ := strings.Cut(content, " ")
	name = strings.ToLower(name)
	args = strings.TrimSpace(args)

	cmd, ok := r.lookup(name)
	if !ok {
		if suggestion, ok := r.Suggest(name); ok {
			_ = reply(fmt.Sprintf("Unknown command `%s%s`. Did you mean `%s%s`?", r.prefix, name, r.prefix, suggestion))
		}
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, prefixCommandTimeout)
	defer cancel()

	c := &PrefixContext{
		Context: ctx,
		Message: msg,
		Command: cmd.Name,
		Args:    args,
		reply:   reply,
	}
	r.run(cmd, c)
	return true
}

func (r *PrefixRouter) run(cmd *PrefixCommand, c *PrefixContext) {
	start := time.Now()
	attrs := []any{
		slog.String("type", "cmd"),
		slog.String("name", cmd.Name),
		slog.String("user_id", c.Author.ID.String()),
		slog.String("user_name", c.Author.Username),
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Prefix command panicked", append(attrs,
				slog.Any("error", rec),
				slog.String("stack", string(debug.Stack())),
				slog.String("status", "panic"),
			)...)
			_ = c.Reply(panicReply)
		}
	}()

	if err := cmd.Handler(c); err != nil {
		slog.Error("Prefix command failed", append(attrs,
			slog.Any("error", err),
			slog.String("status", "failed"),
			slog.Duration("took", time.Since(start)),
		)...)
		return
	}
	slog.Info("Prefix command completed", append(attrs,
		slog.String("status", "success"),
		slog.Duration("took", time.Since(start)),
	)...)
}

// OnMessageCreate feeds gateway messages into the router.
func (r *PrefixRouter) OnMessageCreate(e *events.MessageCreate) {
	if e.Message.Author.Bot || e.Message.Author.System {
		return
	}
	msg := Message{
		ID:        e.MessageID,
		GuildID:   e.GuildID,
		ChannelID: e.ChannelID,
		Author:    e.Message.Author,
		Content:   e.Message.Content,
	}
	reply := func(content string) error {
		_, err := e.Client().Rest().CreateMessage(e.ChannelID, discord.NewMessageCreateBuilder().
			SetContent(content).
			SetAllowedMentions(&discord.AllowedMentions{}).
			Build())
		return err
	}
	r.Dispatch(context.Background(), msg, reply)
}
