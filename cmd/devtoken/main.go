// Command devtoken issues (or, with -revoke, removes) a session token for local testing
// with AUTH_PROVIDER=session.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/AnshRaj112/voxa-backend/internal/auth"
	"github.com/AnshRaj112/voxa-backend/internal/database"
)

func main() {
	uid := flag.String("uid", "dev-user", "user id to issue the token for")
	email := flag.String("email", "", "optional email")
	revoke := flag.String("revoke", "", "session token to revoke instead of issuing one")
	flag.Parse()

	_ = godotenv.Load()
	redisURI := os.Getenv("REDIS_URI")
	if redisURI == "" {
		slog.Error("REDIS_URI is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb, err := database.ConnectRedis(ctx, redisURI)
	if err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	store := auth.NewSessionStore(rdb)
	if *revoke != "" {
		if err := store.Revoke(ctx, *revoke); err != nil {
			slog.Error("failed to revoke session", "error", err)
			os.Exit(1)
		}
		fmt.Println("revoked")
		return
	}

	token, err := store.Create(ctx, auth.Identity{ID: *uid, Email: *email})
	if err != nil {
		slog.Error("failed to create session", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
