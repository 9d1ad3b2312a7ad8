package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/hearth"
	"github.com/ellavondegurechaff/hearth/hearth/commands"
	musiccmd "github.com/ellavondegurechaff/hearth/hearth/commands/music"
	remindercmd "github.com/ellavondegurechaff/hearth/hearth/commands/reminder"
	"github.com/ellavondegurechaff/hearth/hearth/commands/system"
	"github.com/ellavondegurechaff/hearth/hearth/config"
	"github.com/ellavondegurechaff/hearth/hearth/database"
	"github.com/ellavondegurechaff/hearth/hearth/eventlog"
	"github.com/ellavondegurechaff/hearth/hearth/handlers"
	"github.com/ellavondegurechaff/hearth/hearth/logger"
	"github.com/ellavondegurechaff/hearth/hearth/services"
	"github.com/ellavondegurechaff/hearth/hearth/welcome"
	"github.com/ellavondegurechaff/hearth/internal/domain/music"
	"github.com/ellavondegurechaff/hearth/internal/domain/reminder"
	"github.com/ellavondegurechaff/hearth/internal/gateways/csvfile"
	"github.com/ellavondegurechaff/hearth/internal/gateways/database/repositories"
	voicegw "github.com/ellavondegurechaff/hearth/internal/gateways/voice"
	"github.com/ellavondegurechaff/hearth/internal/gateways/ytdlp"
	"golang.org/x/sync/errgroup"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(logger.Options{})))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := hearth.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}

	logFile := setupLogger(cfg.Log)
	if logFile != nil {
		defer logFile.Close()
	}

	slog.Info("Starting Hearth",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	b := hearth.New(*cfg, version, commit)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	repository, err := openReminderStore(ctx, b)
	cancel()
	if err != nil {
		slog.Error("Failed to open reminder store",
			slog.String("type", "sys"),
			slog.String("store", cfg.Reminders.Store),
			slog.Any("error", err))
		os.Exit(-1)
	}
	if b.DB != nil {
		defer b.DB.Close()
	}
	b.Reminders = reminder.NewService(repository)

	prefixRouter := handlers.NewPrefixRouter(cfg.Bot.Prefix)
	welcomer := welcome.NewWelcomer(welcome.LoadConfig(cfg.Welcome.ConfigPath))
	reminderHandler := remindercmd.NewHandler(b.Reminders, remindercmd.NewDraftStore(config.DraftCacheSize, config.DraftTTL))

	h := handler.New()

	// Reminders
	h.Command("/reminder", handlers.WrapWithLogging("reminder", reminderHandler.HandleCommand))
	h.Component(remindercmd.AddButtonID, handlers.WrapComponentWithLogging("reminder-add", reminderHandler.HandleAdd))
	h.Component(remindercmd.ListButtonID, handlers.WrapComponentWithLogging("reminder-list", reminderHandler.HandleList))
	h.Component(remindercmd.TimezoneID, handlers.WrapComponentWithLogging("reminder-tz", reminderHandler.HandleTimezone))
	h.Component(remindercmd.RecurrenceID, handlers.WrapComponentWithLogging("reminder-freq", reminderHandler.HandleRecurrence))
	h.Component(remindercmd.NextButtonID, handlers.WrapComponentWithLogging("reminder-next", reminderHandler.HandleNext))
	h.Component(remindercmd.DeleteSelectID, handlers.WrapComponentWithLogging("reminder-delete", reminderHandler.HandleDelete))
	h.Modal(remindercmd.CreateModalID, handlers.WrapModalWithLogging("reminder-create", reminderHandler.HandleCreate))

	// Music and system
	h.Command("/queue", handlers.WrapWithLogging("queue", musiccmd.QueueHandler(b)))
	h.Command("/version", handlers.WrapWithLogging("version", system.VersionHandler(b)))

	if err = b.SetupBot(
		h,
		bot.NewListenerFunc(b.OnReady),
		bot.NewListenerFunc(prefixRouter.OnMessageCreate),
		bot.NewListenerFunc(welcomer.OnGuildMemberJoin),
		eventlog.NewListener(),
	); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	b.Music = music.NewManager(
		ytdlp.NewResolver(cfg.Music.YtDlp, cfg.Music.CacheSize, cfg.Music.CacheTTL.Std()),
		voicegw.NewConnector(b.Client.VoiceManager(), cfg.Music.FFmpeg),
		musiccmd.NewRestAnnouncer(b.Client.Rest()),
	)
	b.Client.AddEventListeners(bot.NewListenerFunc(musiccmd.NewVoiceWatcher(b.Music).OnVoiceStateUpdate))
	caches := b.Client.Caches()
	musiccmd.NewPrefixCommands(b.Music, func(guildID, userID snowflake.ID) (snowflake.ID, bool) {
		state, ok := caches.VoiceState(guildID, userID)
		if !ok || state.ChannelID == nil {
			return 0, false
		}
		return *state.ChannelID, true
	}).Register(prefixRouter)
	system.RegisterHelp(prefixRouter)

	b.Scheduler = reminder.NewScheduler(repository, remindercmd.NewDMNotifier(b.Client.Rest()), cfg.Reminders.Interval.Std())
	b.Processes.StartProcess("reminder-scheduler", "fires due reminders", b.Scheduler.Run)

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s

	shutdown(b)
}

func setupLogger(cfg hearth.LogConfig) *os.File {
	var file io.Writer
	var f *os.File
	if cfg.File != "" {
		var err error
		if f, err = logger.OpenFile(cfg.File); err != nil {
			slog.Warn("Event log file disabled", slog.String("type", "sys"), slog.Any("error", err))
		} else {
			file = f
		}
	}
	slog.SetDefault(slog.New(logger.NewHandler(logger.Options{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
		File:      file,
	})))
	return f
}

// openReminderStore returns the configured reminder repository. The postgres
// store also sets b.DB.
func openReminderStore(ctx context.Context, b *hearth.Bot) (reminder.Repository, error) {
	cfg := b.Cfg
	switch cfg.Reminders.Store {
	case hearth.StorePostgres:
		start := time.Now()
		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("database connection failed after %s: %w", time.Since(start), err)
		}
		if err := db.InitializeSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		b.DB = db
		slog.Info("Database connected successfully",
			slog.String("type", "db"),
			slog.String("database", cfg.DB.Database),
			slog.Duration("took", time.Since(start)))
		return repositories.NewReminderRepository(db.BunDB()), nil

	default:
		var opts []csvfile.Option
		if cfg.Spaces.Enabled() {
			spaces, err := services.NewSpacesService(ctx, cfg.Spaces.Key, cfg.Spaces.Secret, cfg.Spaces.Region, cfg.Spaces.Bucket, cfg.Spaces.Prefix)
			if err != nil {
				slog.Warn("Reminder snapshots disabled",
					slog.String("type", "sys"),
					slog.Any("error", err))
			} else {
				opts = append(opts, csvfile.WithSnapshotter(spaces))
				slog.Info("Reminder snapshots enabled",
					slog.String("type", "sys"),
					slog.String("bucket", spaces.GetBucket()),
					slog.String("region", spaces.GetRegion()))
			}
		}
		store, err := csvfile.NewReminderStore(cfg.Reminders.Path, opts...)
		if err != nil {
			return nil, err
		}
		if len(opts) > 0 {
			b.Processes.StartProcess("reminder-snapshots", "uploads reminder file snapshots", store.RunSnapshots)
		}
		return store, nil
	}
}

func shutdown(b *hearth.Bot) {
	slog.Info("Shutting down bot...", slog.String("type", "sys"))

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		return b.Processes.Shutdown(config.ShutdownTimeout)
	})
	g.Go(func() error {
		return b.Music.Close(ctx)
	})
	if err := g.Wait(); err != nil {
		slog.Warn("Shutdown was not clean", slog.String("type", "sys"), slog.Any("error", err))
	}

	b.Client.Close(ctx)
}
