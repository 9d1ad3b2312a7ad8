package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

const (
	handlerTimeout = 10 * time.Second
	slowThreshold  = 2 * time.Second
)

// interaction is the part of an interaction event the logging wrappers read.
type interaction interface {
	User() discord.User
	GuildID() *snowflake.ID
	ChannelID() snowflake.ID
}

// WrapWithLogging wraps a command handler with logging functionality
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return track("cmd", "Command", name, e, func() error { return h(e) })
	}
}

// WrapComponentWithLogging wraps a component handler with logging functionality
func WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		return track("component", "Component interaction", name, e, func() error { return h(e) })
	}
}

// WrapModalWithLogging wraps a modal submit handler with logging functionality
func WrapModalWithLogging(name string, h handler.ModalHandler) handler.ModalHandler {
	return func(e *handler.ModalEvent) error {
		return track("component", "Modal submission", name, e, func() error { return h(e) })
	}
}

func track(logType, what, name string, e interaction, run func() error) error {
	start := time.Now()
	user := e.User()
	guild := "dm"
	if id := e.GuildID(); id != nil {
		guild = id.String()
	}

	slog.Info(what+" started",
		slog.String("type", logType),
		slog.String("name", name),
		slog.String("user_id", user.ID.String()),
		slog.String("user_name", user.Username),
		slog.String("guild_id", guild),
		slog.String("channel_id", e.ChannelID().String()),
	)

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic in %s: %v", name, r)
			}
		}()
		done <- run()
	}()

	attrs := []any{
		slog.String("type", logType),
		slog.String("name", name),
		slog.String("user_id", user.ID.String()),
		slog.String("user_name", user.Username),
	}

	select {
	case err := <-done:
		duration := time.Since(start)
		attrs = append(attrs, slog.Duration("took", duration))
		switch {
		case err != nil:
			slog.Error(what+" failed", append(attrs,
				slog.Any("error", err),
				slog.String("status", "failed"),
			)...)
		case duration > slowThreshold:
			slog.Warn(what+" executed slowly", append(attrs, slog.String("status", "slow"))...)
		default:
			slog.Info(what+" completed", append(attrs, slog.String("status", "success"))...)
		}
		return err

	case <-time.After(handlerTimeout):
		slog.Error(what+" timed out", append(attrs,
			slog.String("status", "timeout"),
			slog.Duration("timeout", handlerTimeout),
		)...)
		return fmt.Errorf("%s %s timed out after %s", what, name, handlerTimeout)
	}
}
