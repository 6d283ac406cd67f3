package protocal

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/configs"
	telegramInput "github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/adapters/input/telegram"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/adapters/output/file"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/adapters/output/gemini"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/adapters/output/memory"
	telegramOutput "github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/adapters/output/telegram"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/internal/application"
	"github.com/div-code-commit/Lord-Hanuman-Telegram-Bot/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeBot func - Wires the adapters together and runs the bot until interrupted
func ServeBot() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)

	if configs.GetViper().Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Missing secrets or an empty allow-list is a fatal startup condition
	if err := validator.New().ValidateStruct(configs.GetViper()); err != nil {
		logrus.Fatalf("Configuration invalid, set TELEGRAM_TOKEN and GEMINI_API_KEY: %v", err)
	}

	// Liveness endpoint for uptime checks, independent of the conversational core
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bot is running!")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	go func() {
		if err := app.Listen(":" + configs.GetViper().App.Port); err != nil {
			logrus.Errorf("Liveness server stopped: %v", err)
		}
	}()

	// Wire up the hexagonal architecture layers
	// Output adapter (transcript persistence)
	store := file.NewTranscriptStore(configs.GetViper().Bot.HistoryFile)
	// Output adapter (in-memory session registry), populated from disk
	registry := memory.NewSessionRegistry()
	snapshot, err := store.Load()
	if err != nil {
		return err
	}
	registry.LoadSnapshot(snapshot)

	// Output adapter (Telegram client)
	telegramClient, err := telegramOutput.NewTelegramClientAdapter(
		configs.GetViper().Telegram.Token,
		configs.GetViper().Debug,
	)
	if err != nil {
		logrus.Fatalf("Failed to create Telegram client: %v", err)
	}

	// Output adapter (Gemini client)
	geminiClient, err := gemini.NewGeminiClientAdapter(
		configs.GetViper().Gemini,
		configs.GetViper().Bot.Persona,
	)
	if err != nil {
		logrus.Fatalf("Failed to create Gemini client: %v", err)
	}

	authorizedUsers := make([]string, 0, len(configs.GetViper().Bot.AuthorizedUsers))
	for _, id := range configs.GetViper().Bot.AuthorizedUsers {
		authorizedUsers = append(authorizedUsers, strconv.FormatInt(id, 10))
	}

	// Application service (conversation turn use case)
	srv := application.NewChatService(
		telegramClient,
		geminiClient,
		registry,
		store,
		authorizedUsers,
		configs.GetViper().Bot.Greeting,
		configs.GetViper().Bot.Fallback,
	)

	// Input adapter (Telegram long polling)
	listener := telegramInput.NewUpdateListener(telegramClient.Bot(), srv)

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			cancel()
			if err := app.Shutdown(); err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	logrus.Info("Bot is running...")
	return listener.Run(ctx)
}
