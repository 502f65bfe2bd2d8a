package main

import (
	"context"
	"errors"
	"fmt"
	"meetapp/cmd/internal/auth"
	"meetapp/cmd/internal/config"
	"meetapp/cmd/internal/domain/sqlite"
	"meetapp/cmd/internal/domain/sqlite/repository"
	"meetapp/cmd/internal/mail"
	"meetapp/cmd/internal/queue"
	"meetapp/cmd/internal/routes"
	"meetapp/cmd/internal/scheduling"
	"meetapp/cmd/internal/service"
	"meetapp/cmd/internal/utils/validators"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "meetapp",
		Usage: "Meetup scheduling API and notification worker.",
		Commands: []*cli.Command{
			serveCommand(),
			workerCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-worker", Usage: "Do not run the notification worker in-process."},
		},
		Action: func(c *cli.Context) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Worker.Enabled && !c.Bool("no-worker") {
				go newWorker(cfg, db).Run(ctx)
			}

			e := newServer(cfg, db)
			go func() {
				if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("server stopped: %v", err)
					stop()
				}
			}()

			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func workerCommand() *cli.Command {
	return &cli.Command{
		Name:  "worker",
		Usage: "Run the notification worker.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "once", Usage: "Process one batch of due jobs and exit."},
		},
		Action: func(c *cli.Context) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			worker := newWorker(cfg, db)
			if c.Bool("once") {
				n, err := worker.ProcessDue(ctx)
				if err != nil {
					return fmt.Errorf("failed to process jobs: %w", err)
				}
				log.Infof("processed %d jobs", n)
				return nil
			}

			worker.Run(ctx)
			return nil
		},
	}
}

func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.SetLevel(logLevel(cfg.LogLevel))

	db, err := sqlite.Init(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, db, nil
}

func newServer(cfg *config.Config, db *gorm.DB) *echo.Echo {
	validate := validator.New()
	registerValidators(validate)

	clock := scheduling.SystemClock{}

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	meetupRepo := repository.NewMeetupRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	fileRepo := repository.NewFileRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// Scheduling rules
	jobs := queue.New(jobRepo, clock)
	policy := scheduling.NewPolicy(meetupRepo, subRepo, userRepo, fileRepo, jobs, clock)
	annotator := scheduling.NewAnnotator(subRepo, clock)
	jwtAuth := auth.NewJWTAuth(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Getting services
	publicURL := strings.TrimRight(cfg.Server.PublicURL, "/")
	userService := service.NewUserService(userRepo, jwtAuth, validate)
	meetupService := service.NewMeetupService(meetupRepo, policy, annotator, validate, publicURL)
	subService := service.NewSubscriptionService(subRepo, policy, annotator, clock, publicURL)
	fileService := service.NewFileService(fileRepo, cfg.Uploads.Dir, cfg.Uploads.MaxBytes, publicURL)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		ExposeHeaders: []string{routes.TotalPagesHeader},
	}))

	e.Static("/files", cfg.Uploads.Dir)

	routes.Register(e, &routes.Handlers{
		Users:         routes.NewUserDefault(userService),
		Meetups:       routes.NewMeetupDefault(meetupService),
		Subscriptions: routes.NewSubscriptionDefault(subService),
		Files:         routes.NewFileDefault(fileService),
	}, jwtAuth.Middleware())

	return e
}

func newWorker(cfg *config.Config, db *gorm.DB) *queue.Worker {
	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.Mail.Host != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
	} else {
		log.Warn("MAIL_HOST not set, subscription mails will only be logged")
	}

	opts := queue.DefaultWorkerOptions()
	opts.PollInterval = cfg.Worker.PollInterval
	opts.MaxAttempts = cfg.Worker.MaxAttempts
	opts.Backoff = cfg.Worker.Backoff

	worker := queue.NewWorker(repository.NewJobRepository(db), scheduling.SystemClock{}, opts)
	worker.Register(scheduling.SubscriptionNotification, mail.NewSubscriptionMail(mailer))
	return worker
}

func registerValidators(validate *validator.Validate) {
	validate.RegisterTagNameFunc(validators.JSONTagName)
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
}

func logLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
