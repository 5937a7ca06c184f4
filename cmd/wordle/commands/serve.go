package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-engine/internal/config"
	"github.com/robalobadob/wordle-engine/internal/db"
	"github.com/robalobadob/wordle-engine/internal/httpserver"
	"github.com/robalobadob/wordle-engine/internal/stats"
	"github.com/robalobadob/wordle-engine/internal/store"
	"github.com/robalobadob/wordle-engine/internal/words"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP and WebSocket",
	Long: `Serve starts the HTTP API. Settings come from the environment (a .env
file in the working directory is loaded first) or from --config.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	initLogger(cfg)

	if answersFile == "" && allowedFile == "" {
		answersFile, allowedFile = cfg.Words.AnswersFile, cfg.Words.AllowedFile
	}
	list, err := loadWords()
	if err != nil {
		log.Error().Err(err).Msg("failed to load word lists")
		return err
	}
	a, g := list.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("word lists loaded")

	conn, err := db.OpenMigrated(cfg.DBPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		return err
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.UsesRedis() {
		if rdb, err = newRedisClient(ctx, cfg); err != nil {
			log.Error().Err(err).Str("addr", cfg.Redis.GetRedisAddr()).Msg("failed to connect to redis")
			return err
		}
		defer rdb.Close()
	}

	srv := httpserver.New(httpserver.Deps{
		Sessions: sessionStore(cfg, rdb, list),
		Stats:    statsStore(cfg, rdb, conn),
		DB:       conn,
		Words:    list,
	}, httpserver.Options{
		ClientOrigin:   cfg.ClientOrigin,
		JWTSecret:      cfg.Auth.JWTSecret,
		JWTExpiresDays: cfg.Auth.ExpiresDays,
		CookieName:     cfg.Auth.CookieName,
		Production:     cfg.Production(),
		DailySalt:      cfg.DailySalt,
	})

	log.Info().Str("port", cfg.HTTPPort).Str("store", cfg.StoreBackend).Str("stats", cfg.StatsBackend).Msg("starting server")
	if err := srv.Start(ctx, ":"+cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// initLogger sets the global level; outside production logs are human readable.
func initLogger(cfg *config.Config) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func newRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func sessionStore(cfg *config.Config, rdb *redis.Client, list *words.List) store.Store {
	if cfg.StoreBackend == "redis" {
		return store.NewRedisStore(rdb, list, cfg.SessionTTL)
	}
	return store.NewMemoryStore()
}

func statsStore(cfg *config.Config, rdb *redis.Client, conn *sql.DB) stats.Store {
	if cfg.StatsBackend == "redis" {
		return stats.NewRedisStore(rdb)
	}
	return stats.NewSQLiteStore(conn)
}
