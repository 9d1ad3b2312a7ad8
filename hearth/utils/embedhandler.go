package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/ellavondegurechaff/hearth/hearth/config"
)

// MessageResponder is any interaction event that can answer with a message.
type MessageResponder interface {
	CreateMessage(messageCreate discord.MessageCreate, opts ...rest.RequestOpt) error
}

// ResponseHandler provides standardized response methods for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

type ErrorType int

const (
	UserError ErrorType = iota
	SystemError
	NotFoundError
)

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	default:
		return "❌"
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError:
		return config.WarningColor
	case NotFoundError:
		return config.InfoColor
	default:
		return config.ErrorColor
	}
}

// Ephemeral replies with plain content only the invoking user sees.
func (h *ResponseHandler) Ephemeral(e MessageResponder, content string) error {
	return e.CreateMessage(discord.MessageCreate{
		Content: content,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// EphemeralEmbed replies with an embed only the invoking user sees.
func (h *ResponseHandler) EphemeralEmbed(e MessageResponder, embed discord.Embed, components ...discord.ContainerComponent) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds:     []discord.Embed{embed},
		Components: components,
		Flags:      discord.MessageFlagEphemeral,
	})
}

// CreateClassifiedError replies with an ephemeral embed styled by error type.
func (h *ResponseHandler) CreateClassifiedError(e MessageResponder, errorType ErrorType, message string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: getErrorPrefix(errorType) + " " + message,
			Color:       getErrorColor(errorType),
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

func (h *ResponseHandler) CreateUserError(e MessageResponder, message string) error {
	return h.CreateClassifiedError(e, UserError, message)
}

func (h *ResponseHandler) CreateSystemError(e MessageResponder, message string) error {
	return h.CreateClassifiedError(e, SystemError, message)
}

func (h *ResponseHandler) CreateInfoEmbed(e MessageResponder, message string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.InfoColor,
		}},
	})
}
