package main

import (
	"context"
	"flag"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"database/sql"

	"sentimentpulse/internal/adapters/inference"
	"sentimentpulse/internal/adapters/ner"
	"sentimentpulse/internal/adapters/observability"
	redisad "sentimentpulse/internal/adapters/redis"
	"sentimentpulse/internal/analysis"
	"sentimentpulse/internal/app"
	"sentimentpulse/internal/shared"
	mysqlrepo "sentimentpulse/internal/storage/mysql"
)

// importer loads one or more review CSV files on behalf of an owner,
// annotating every row on the way in. Files are processed concurrently,
// bounded by IMPORT_WORKERS.
func main() {
	owner := flag.String("owner", "", "email of the account that owns the imported reviews")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	files := flag.Args()
	if *owner == "" || len(files) == 0 {
		log.Fatal().Msg("usage: importer -owner <email> <file.csv> [file.csv ...]")
	}

	log.Info().
		Str("owner", *owner).
		Int("workers", cfg.ImportWorkers).
		Int("files", len(files)).
		Msg("importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	user, err := repo.GetUserByEmail(ctx, *owner)
	if err != nil {
		log.Fatal().Str("owner", *owner).Err(err).Msg("owner lookup failed")
	}

	sentModel, err := inference.New(cfg.InferenceBase, cfg.InferenceKey, cfg.InferenceRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize inference client")
	}
	if err := sentModel.Verify(ctx); err != nil {
		log.Fatal().Err(err).Msg("sentiment backend verification failed")
	}
	entModel, err := ner.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize entity recognizer")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	annotator := analysis.NewAnnotator(sentModel, entModel)
	commands := app.NewCommandService(repo, repo, annotator, cache, cfg.ImportWorkers)

	sem := semaphore.NewWeighted(int64(cfg.ImportWorkers))
	var wg sync.WaitGroup

	for _, path := range files {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(int64(1))

			f, err := os.Open(path)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("open failed")
				return
			}
			defer f.Close()

			n, err := commands.ImportCSV(ctx, user.ID, f)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("import failed")
				return
			}
			log.Info().Str("file", path).Int("reviews", n).Msg("import ok")
		}(path)
	}

	wg.Wait()
	log.Info().Msg("import completed")
}
