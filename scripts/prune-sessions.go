package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/showdown-player/internal/entities/showdown"
	"github.com/KirkDiggler/showdown-player/internal/pkg/clock"
	battlesession "github.com/KirkDiggler/showdown-player/internal/repositories/battle_session"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning battle sessions...")

	iter := client.Scan(ctx, 0, battlesession.KeyPattern, 0).Iterator()

	var staleKeys []string
	var checkedCount int
	now := clock.New().Now()

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var session battlesession.BattleSession
		if err := json.Unmarshal(data, &session); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			staleKeys = append(staleKeys, key)
			continue
		}

		if session.Expired(now) {
			fmt.Printf("✗ Expired %s (%s)\n", key, session.ExpiresAt.Format(time.RFC3339))
			staleKeys = append(staleKeys, key)
			continue
		}

		if len(session.Request) > 0 {
			if _, err := showdown.ParseRequest(session.Request); err != nil {
				fmt.Printf("✗ Unparsable request in %s: %v\n", key, err)
				staleKeys = append(staleKeys, key)
			}
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d stale sessions\n", checkedCount, len(staleKeys))

	if len(staleKeys) == 0 {
		fmt.Println("Nothing to prune")
		return
	}

	fmt.Println("\nStale keys:")
	for _, key := range staleKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these sessions? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response) // nolint:errcheck // empty input means no

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range staleKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nPrune complete!")
}
