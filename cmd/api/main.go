package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/sukyoungshin/member-directory/internal/api/http"
	"github.com/sukyoungshin/member-directory/internal/api/http/handlers"
	"github.com/sukyoungshin/member-directory/internal/config"
	"github.com/sukyoungshin/member-directory/internal/events"
	"github.com/sukyoungshin/member-directory/internal/observability"
	"github.com/sukyoungshin/member-directory/internal/persistence"
	"github.com/sukyoungshin/member-directory/internal/repository"
	"github.com/sukyoungshin/member-directory/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pool := pg.PoolHandle()
	memberRepo := repository.NewMemberRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	jobTitleRepo := repository.NewJobTitleRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	registerAuditSubscriber(dispatcher, logger)

	directory := service.NewDirectoryService(service.DirectoryDependencies{
		MemberRepo:   memberRepo,
		RoleRepo:     roleRepo,
		JobTitleRepo: jobTitleRepo,
		Dispatcher:   dispatcher,
	})

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg),
		Members:   handlers.NewMembersHandler(directory),
		Roles:     handlers.NewRolesHandler(directory),
		JobTitles: handlers.NewJobTitlesHandler(directory),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// registerAuditSubscriber logs every directory mutation.
func registerAuditSubscriber(dispatcher events.Dispatcher, logger *zap.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		logger.Info("directory change",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Int64("member_id", event.MemberID),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
	dispatcher.Subscribe(events.EventMemberCreated, audit)
	dispatcher.Subscribe(events.EventMemberUpdated, audit)
	dispatcher.Subscribe(events.EventMemberDeleted, audit)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
