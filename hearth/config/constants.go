package config

import "time"

// UI and Display Constants
const (
	QueuePageSize    = 10
	MaxSelectOptions = 25

	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31
)

// Timeouts
const (
	CommandExecutionTimeout = 10 * time.Second
	DeliveryTimeout         = 15 * time.Second
	ShutdownTimeout         = 10 * time.Second
	NetworkDialTimeout      = 5 * time.Second
	NetworkKeepAlive        = 30 * time.Second
	DefaultQueryTimeout     = 30 * time.Second
)

// Reminder drafts
const (
	DraftCacheSize = 1000
	DraftTTL       = 15 * time.Minute
)
