package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "sentimentpulse/internal/adapters/http_server"
	"sentimentpulse/internal/adapters/inference"
	"sentimentpulse/internal/adapters/ner"
	"sentimentpulse/internal/adapters/observability"
	redisad "sentimentpulse/internal/adapters/redis"
	"sentimentpulse/internal/analysis"
	"sentimentpulse/internal/app"
	"sentimentpulse/internal/auth"
	"sentimentpulse/internal/shared"
	mysqlrepo "sentimentpulse/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// analysis backends; a dead or misconfigured model is fatal at
	// startup, never at request time
	sentModel, err := inference.New(cfg.InferenceBase, cfg.InferenceKey, cfg.InferenceRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize inference client")
	}
	verifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := sentModel.Verify(verifyCtx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("sentiment backend verification failed")
	}
	cancel()
	log.Info().Str("base", cfg.InferenceBase).Msg("sentiment backend ok")

	entModel, err := ner.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize entity recognizer")
	}

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	annotator := analysis.NewAnnotator(sentModel, entModel)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	users := app.NewUserService(repo, tokens)
	commands := app.NewCommandService(repo, repo, annotator, cache, cfg.ImportWorkers)
	queries := app.NewQueryService(repo, repo, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Users: users, Commands: commands, Queries: queries})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
