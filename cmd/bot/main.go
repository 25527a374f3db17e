package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/config"
	"github.com/diegoclair/slack-attendance-bot/internal/database"
	"github.com/diegoclair/slack-attendance-bot/internal/domain/service"
	"github.com/diegoclair/slack-attendance-bot/internal/handlers"
	"github.com/diegoclair/slack-attendance-bot/internal/llm"
	"github.com/diegoclair/slack-attendance-bot/internal/sheets"
	"github.com/diegoclair/slack-attendance-bot/migrator/sqlite"
	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", cfg.Timezone, err)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Println("Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	dm := database.NewInstance(db)

	slackClient := slack.New(cfg.SlackBotToken, slack.OptionAppLevelToken(cfg.SlackAppToken))
	socketClient := socketmode.New(slackClient)

	llmClient := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A missing or broken sheet setup disables the lookup but never the
	// bot; TalkToday degrades to "no talk today".
	var fetcher sheets.RowFetcher
	if cfg.SheetID != "" {
		fetcher, err = sheets.NewFetcher(ctx, cfg.CredentialsFile, cfg.SheetID)
		if err != nil {
			log.Printf("Warning: tech-talk lookup disabled: %v", err)
		}
	}
	talk := sheets.NewLookup(fetcher, func() time.Time { return time.Now().In(loc) })

	services := service.NewInstance(dm, slackClient, llmClient, talk, cfg, loc)

	if err := services.Sessions.Restore(); err != nil {
		log.Printf("Warning: could not restore sessions: %v", err)
	}

	services.Scheduler.Start()
	defer services.Scheduler.Stop()

	handler := handlers.New(handlers.Params{
		SlackClient:      slackClient,
		SocketClient:     socketClient,
		Conversation:     services.Conversation,
		Talk:             talk,
		Timetable:        services.Timetable,
		MonitorChannelID: cfg.MonitorChannelID,
		MentionUserIDs:   cfg.MentionUserIDs,
		Location:         loc,
	})

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Slack connection ended: %v", err)
	}

	log.Println("Shutting down, snapshotting sessions...")
	if err := services.Sessions.Snapshot(); err != nil {
		log.Printf("Failed to snapshot sessions: %v", err)
	}
}
