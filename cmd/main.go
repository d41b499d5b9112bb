package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"quotewise/internal/config"
	"quotewise/internal/domain/service/advisor"
	"quotewise/internal/domain/service/compare"
	"quotewise/internal/domain/service/glossary"
	"quotewise/internal/domain/value"
	"quotewise/internal/infrastructure/loader"
	"quotewise/internal/infrastructure/persistence"
	"quotewise/internal/infrastructure/rates"
	"quotewise/internal/infrastructure/session"
	"quotewise/internal/server"
	"quotewise/internal/transport/bot"
	"quotewise/internal/transport/bot/handler"
	"quotewise/internal/worker"
	"quotewise/pkg/application/connectors"
	"quotewise/pkg/application/modules"
	"quotewise/pkg/contextx"
	"quotewise/pkg/logx"
	"quotewise/pkg/middlewarex"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	if err := run(ctx, log); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

const logFieldMaxLen = 4096

func run(ctx context.Context, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	ctx = contextx.WithLogger(ctx, log)

	// Хранилища.
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	quoteRepo := persistence.NewQuoteSetRepository(db)
	comparisonRepo := persistence.NewComparisonRepository(db)
	sessions := session.NewStore(redisClient, cfg.Redis.SessionTTL)

	// Движок сравнения.
	defaultWeights, err := value.ParseWeights(cfg.Engine.DefaultWeights)
	if err != nil {
		return fmt.Errorf("parse default weights: %w", err)
	}

	aliases := value.DefaultAliasTable()
	if cfg.Engine.AliasPath != "" {
		aliases, err = value.LoadAliasTable(cfg.Engine.AliasPath)
		if err != nil {
			return fmt.Errorf("load alias table: %w", err)
		}
	}

	engine := compare.NewEngine(aliases, defaultWeights).
		WithConverter(rates.NewClient(cfg.Rates))

	comparisons := compare.NewService(engine, quoteRepo, comparisonRepo).
		WithSchema(cfg.Engine.Schema)

	glossaryService, err := glossary.Load(cfg.Engine.GlossaryPath)
	if err != nil {
		log.Warn("glossary unavailable", logx.Error(err), slog.String("path", cfg.Engine.GlossaryPath))

		glossaryService = glossary.New(nil)
	}

	advisorService := advisor.NewAdvisor(engine).
		WithGlossary(glossaryService).
		WithSchema(cfg.Engine.Schema...).
		WithCacheTTL(cfg.Engine.AnswerCacheTTL)

	// Фоновый импорт файлов.
	importer := worker.NewImporter(loader.New(aliases), comparisons).
		WithSessions(sessions)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer asynqClient.Close()

	// HTTP.
	srv := server.NewServer(
		server.NewQuoteServer(comparisons, asynqClient),
		server.NewComparisonServer(comparisons),
		server.NewAskServer(advisorService, comparisons),
		server.NewGlossaryServer(glossaryService),
	)

	sensitiveDataMasker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.Recovery,
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(sensitiveDataMasker, logFieldMaxLen),
		middlewarex.ResponseLogging(sensitiveDataMasker, logFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(gctx, g, httpServer)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
	}.Run(gctx, g)
	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(gctx, g)
	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(gctx, g,
		modules.AsynqQueues{"default": 5}, //nolint:mnd
		modules.AsynqHandler{Pattern: worker.TypeImportQuoteFile, Handle: importer.HandleImport},
	)

	if cfg.Bot.Enabled {
		botHandler := handler.New(comparisons, advisorService, sessions, glossaryService)

		b, err := bot.New(cfg.Bot, botHandler)
		if err != nil {
			return fmt.Errorf("bot.New: %w", err)
		}

		g.Go(func() error {
			return b.Run(gctx, log)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
