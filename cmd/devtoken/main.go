// cmd/devtoken/main.go
// Issues an access token for local runs against the match API

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/imadgeboyega/kiekky-match/internal/common/logging"
	"github.com/imadgeboyega/kiekky-match/internal/common/utils"
	"github.com/imadgeboyega/kiekky-match/internal/config"
)

func main() {
	logger := logging.New("info", "development")
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using environment variables", "error", err)
	}

	var (
		userID int64
		ttl    time.Duration
	)
	flag.Int64Var(&userID, "user", 0, "searcher id to embed in the token")
	flag.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	flag.Parse()

	token, err := issue(config.Load(), userID, ttl, time.Now())
	if err != nil {
		logger.Error("failed to issue token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func issue(cfg *config.Config, userID int64, ttl time.Duration, now time.Time) (string, error) {
	if cfg.IsProduction() {
		return "", errors.New("refusing to issue tokens in production")
	}
	if userID <= 0 {
		return "", errors.New("-user must be a positive id")
	}
	if ttl <= 0 {
		return "", errors.New("-ttl must be positive")
	}

	return utils.GenerateJWT(&utils.JWTClaims{
		UserID:    userID,
		Type:      "access",
		ExpiresAt: now.Add(ttl).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    "kiekky-match",
	}, cfg.JWTSecret)
}
