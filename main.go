package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kudimara/kudimara/internal/config"
	"github.com/kudimara/kudimara/internal/export"
	"github.com/kudimara/kudimara/internal/mail"
	"github.com/kudimara/kudimara/internal/scheduler"
	"github.com/kudimara/kudimara/internal/session"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/tools"
	"github.com/kudimara/kudimara/internal/web"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "version":
		fmt.Printf("kudimara %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`kudimara — bilingual personal finance toolkit

Usage:
  kudimara serve [--config config.toml] [--addr :8080]
  kudimara version
  kudimara help

Commands:
  serve     Start the web server
  version   Print version
  help      Show this help`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.toml")
	addr := fs.String("addr", "", "listen address (overrides config)")
	fs.Parse(args)

	// Local secrets live in .env during development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("loading config", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	level := slog.LevelInfo
	if cfg.Server.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	reg, err := store.OpenRegistry(cfg.Storage.Dir)
	if err != nil {
		fatal("opening record stores", err)
	}
	if err := tools.SeedCourses(reg.Courses); err != nil {
		fatal("seeding courses", err)
	}

	sessions := session.NewManager(cfg.Session.SecretKey, cfg.Session.CookieName, cfg.Session.LifetimeHours)

	var sender mail.Sender = mail.Disabled{}
	if cfg.EmailEnabled() {
		sender = mail.NewHTTPSender(cfg.Email.ProviderURL, cfg.Email.APIToken, cfg.Email.From, cfg.Email.TimeoutSec)
	} else {
		slog.Info("email disabled: missing MAIL_API_TOKEN or MAIL_FROM")
	}

	mirror := export.NewSheetsMirror(cfg.Export.SheetsWebhookURL)

	audit, err := scheduler.OpenAuditLog(cfg.Storage.AuditPath)
	if err != nil {
		fatal("opening reminder audit log", err)
	}
	defer audit.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(reg, sender, audit, sessions, cfg.Server.BaseURL,
			cfg.Scheduler.IntervalHours, cfg.Scheduler.TaskDeadlineSec)
		go sched.Run(ctx)
	} else {
		slog.Info("scheduler disabled")
	}

	handler := web.New(reg, sessions, tools.Definitions(reg, sender, mirror))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler.Middleware(mux),
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		srv.Shutdown(context.Background())
	}()

	slog.Info("kudimara listening", "version", version, "addr", cfg.Server.Addr,
		"storage", cfg.Storage.Dir, "email", cfg.EmailEnabled(), "scheduler", cfg.Scheduler.Enabled)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fatal("server error", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
