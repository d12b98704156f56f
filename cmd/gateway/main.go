package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lurelabs/lurebox/pkg/config"
	"github.com/lurelabs/lurebox/pkg/detect"
	"github.com/lurelabs/lurebox/pkg/engine"
	"github.com/lurelabs/lurebox/pkg/intel"
	"github.com/lurelabs/lurebox/pkg/persona"
	"github.com/lurelabs/lurebox/pkg/report"
)

const Version = "0.1.0"

// messageRequest is the inbound turn payload. Metadata is accepted for
// forward compatibility but not interpreted.
type messageRequest struct {
	SessionID           string           `json:"sessionId"`
	Message             engine.Message   `json:"message"`
	ConversationHistory []engine.Message `json:"conversationHistory"`
	Metadata            json.RawMessage  `json:"metadata,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		port := ""
		if len(os.Args) > 2 {
			port = os.Args[2]
		}
		runServer(port)
	case "classify":
		if len(os.Args) < 3 {
			fmt.Println("Usage: lurebox classify <text>")
			os.Exit(1)
		}
		runCLIClassify(strings.Join(os.Args[2:], " "))
	case "version":
		fmt.Printf("Lurebox v%s\n", Version)
		fmt.Println("Scam honeypot conversation engine")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Lurebox v%s - Scam Honeypot Gateway\n\n", Version)
	fmt.Println("Usage:")
	fmt.Println("  lurebox serve [port]      Start HTTP server (default: 8080)")
	fmt.Println("  lurebox classify <text>   Classify a message from the command line")
	fmt.Println("  lurebox version           Show version")
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  lurebox serve 8080")
	fmt.Println("  lurebox classify \"Your account will be blocked, verify now\"")
	fmt.Println("")
	fmt.Println("Environment Variables:")
	fmt.Println("  LUREBOX_API_KEY              API key required on /api routes")
	fmt.Println("  LUREBOX_REDIS_ADDR           Redis address for shared session storage")
	fmt.Println("  LUREBOX_REPORT_URL           Webhook for final reports")
	fmt.Println("  LUREBOX_POSTGRES_URL         Postgres DSN for report archival")
	fmt.Println("  LUREBOX_GENERATOR_PROVIDER   LLM provider: ollama, openrouter, groq")
}

func newLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func buildDetector(cfg *config.Config, logger *zap.Logger) *detect.Detector {
	opts := []detect.Option{detect.WithThreshold(cfg.ScamThreshold)}
	if cfg.VocabPath != "" {
		vocab, err := detect.LoadVocabFile(cfg.VocabPath)
		if err != nil {
			logger.Fatal("load vocabulary", zap.String("path", cfg.VocabPath), zap.Error(err))
		}
		opts = append(opts, detect.WithVocab(vocab))
		logger.Info("vocabulary overrides loaded", zap.String("path", cfg.VocabPath))
	}
	return detect.NewDetector(opts...)
}

func buildGenerator(cfg *config.Config, logger *zap.Logger) persona.Generator {
	if !cfg.GeneratorEnabled {
		logger.Info("reply generation: scripted pools")
		return persona.NewScripted()
	}
	logger.Info("reply generation: remote LLM",
		zap.String("provider", cfg.GeneratorProvider),
		zap.String("model", cfg.GeneratorModel))
	return persona.NewRemote(persona.RemoteConfig{
		Provider: persona.Provider(cfg.GeneratorProvider),
		APIKey:   cfg.GeneratorAPIKey,
		Model:    cfg.GeneratorModel,
		BaseURL:  cfg.GeneratorBaseURL,
		Timeout:  cfg.GeneratorTimeout,
	}, persona.NewScripted(), logger)
}

func runServer(port string) {
	cfg := config.New()
	if port != "" {
		cfg.Port = port
	}
	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Session storage: Redis when configured, otherwise in-process.
	var store engine.SessionStore
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rs, err := engine.NewRedisStore(ctx, cfg.RedisAddr, cfg.SessionTTL)
		cancel()
		if err != nil {
			logger.Fatal("redis connection failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer func() { _ = rs.Close() }()
		store = rs
		logger.Info("session storage: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		ms := engine.NewMemoryStore(engine.WithMaxAge(cfg.SessionTTL))
		defer ms.Close()
		store = ms
		logger.Info("session storage: in-memory")
	}

	engineOpts := []engine.Option{
		engine.WithTurnLimits(cfg.MaxTurns, cfg.HardMaxTurns),
	}
	if cfg.ReportURL != "" {
		engineOpts = append(engineOpts, engine.WithReporter(report.NewWebhook(cfg.ReportURL, cfg.APIKey)))
		logger.Info("report delivery: webhook", zap.String("url", cfg.ReportURL))
	}
	if cfg.PostgresURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		archive, err := report.NewArchive(ctx, cfg.PostgresURL)
		cancel()
		if err != nil {
			logger.Fatal("postgres connection failed", zap.Error(err))
		}
		defer archive.Close()
		engineOpts = append(engineOpts, engine.WithReporter(archive))
		logger.Info("report delivery: postgres archive")
	}

	eng := engine.NewEngine(store, buildDetector(cfg, logger), buildGenerator(cfg, logger), logger, engineOpts...)

	app := fiber.New(fiber.Config{
		AppName: "Lurebox",
	})

	// Request id for log correlation.
	app.Use(func(c fiber.Ctx) error {
		reqID := c.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals("request_id", reqID)
		c.Set("X-Request-ID", reqID)
		return c.Next()
	})

	// API key check. Root and health stay open for load balancers.
	app.Use(func(c fiber.Ctx) error {
		if cfg.APIKey == "" || c.Path() == "/" || c.Path() == "/health" {
			return c.Next()
		}
		if c.Get("X-API-Key") != cfg.APIKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid api key"})
		}
		return c.Next()
	})

	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "lurebox", "version": Version})
	})

	app.Get("/health", func(c fiber.Ctx) error {
		active, err := eng.ActiveSessions(c.Context())
		if err != nil {
			logger.Warn("session count failed", zap.Error(err))
		}
		return c.JSON(fiber.Map{
			"status":          "ok",
			"version":         Version,
			"active_sessions": active,
		})
	})

	app.Post("/api/message", func(c fiber.Ctx) error {
		var req messageRequest
		if err := c.Bind().Body(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		reply, err := eng.ProcessTurn(c.Context(), req.SessionID, req.Message, req.ConversationHistory)
		if err != nil {
			if errors.Is(err, engine.ErrInvalidInput) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "sessionId and message.text are required",
				})
			}
			logger.Error("turn failed",
				zap.Any("request_id", c.Locals("request_id")),
				zap.String("session_id", req.SessionID),
				zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}

		return c.JSON(fiber.Map{
			"status": "success",
			"reply":  reply,
		})
	})

	app.Get("/sessions/:id", func(c fiber.Ctx) error {
		snap, err := eng.Inspect(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, engine.ErrSessionNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
		return c.JSON(snap)
	})

	app.Post("/analyze/url", func(c fiber.Ctx) error {
		var req struct {
			URL string `json:"url"`
		}
		if err := c.Bind().Body(&req); err != nil || req.URL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url field is required"})
		}
		return c.JSON(intel.AnalyzeLink(req.URL))
	})

	logger.Info("lurebox gateway listening",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func runCLIClassify(text string) {
	cfg := config.New()
	detector := buildDetector(cfg, zap.NewNop())

	result := detector.Classify(text, nil)
	rec := intel.NewRecord()
	rec.Extract(text)

	out, _ := json.MarshalIndent(fiber.Map{
		"is_scam":    result.IsScam,
		"confidence": result.Confidence,
		"indicators": result.Indicators,
		"extracted":  rec,
	}, "", "  ")
	fmt.Println(string(out))
}
