package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/WToma/missingparts/internal/api"
	"github.com/WToma/missingparts/internal/config"
	"github.com/WToma/missingparts/internal/httpapi"
	"github.com/WToma/missingparts/internal/lobby"
	"github.com/WToma/missingparts/internal/session"
	"github.com/WToma/missingparts/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := config.LoadGameConfig(os.Getenv("MISSINGPARTS_CONFIG")); err != nil {
		log.Fatal().Err(err).Msg("failed to load game config")
	}
	cfg := config.GetGameConfig()

	sessions := session.NewRegistry()
	gameStore := store.New(log.Logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	l := lobby.New(lobby.Config{
		OpeningHandSize:         cfg.OpeningHandSize,
		MaxMatchmakingGroupSize: cfg.MaxMatchmakingGroupSize,
		DefaultMovesLeft:        cfg.DefaultMovesLeft,
	}, sessions, gameStore, rng, log.Logger)

	facade := api.NewFacade(l, gameStore, sessions)
	srv := httpapi.New(facade, log.Logger)

	addr := getEnv("MISSINGPARTS_ADDR", ":8080")
	log.Info().Str("addr", addr).Msg("starting missingparts server")
	if err := srv.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
