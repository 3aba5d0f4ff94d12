package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/agent-sandbox/internal/entities"
)

// record describes one keyspace to check and how to unlink a bad entry
type record struct {
	pattern string
	check   func(data []byte) string
	unlink  func(ctx context.Context, client *redis.Client, key string, data []byte)
}

func checkNPC(data []byte) string {
	var n entities.NPC
	if err := json.Unmarshal(data, &n); err != nil {
		return "invalid JSON"
	}
	for name, v := range map[string]int{"hp": n.Status.Health, "hunger": n.Status.Hunger, "sanity": n.Status.Sanity} {
		if v < entities.StatMin || v > entities.StatMax {
			return fmt.Sprintf("%s out of range: %d", name, v)
		}
	}
	if n.Alive && n.Status.Health == entities.StatMin {
		return "alive with zero hp"
	}
	return ""
}

func checkItem(data []byte) string {
	var it entities.Item
	if err := json.Unmarshal(data, &it); err != nil {
		return "invalid JSON"
	}
	if it.Quantity < 0 {
		return fmt.Sprintf("negative quantity: %d", it.Quantity)
	}
	return ""
}

func checkMemory(data []byte) string {
	var m entities.Memory
	if err := json.Unmarshal(data, &m); err != nil {
		return "invalid JSON"
	}
	if m.Importance < entities.MinImportance || m.Importance > entities.MaxImportance {
		return fmt.Sprintf("importance out of range: %d", m.Importance)
	}
	return ""
}

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

	records := []record{
		{
			pattern: "npc:*",
			check:   checkNPC,
			unlink: func(ctx context.Context, c *redis.Client, key string, _ []byte) {
				c.SRem(ctx, "npcs", strings.TrimPrefix(key, "npc:"))
			},
		},
		{
			pattern: "item:*",
			check:   checkItem,
			unlink: func(ctx context.Context, c *redis.Client, key string, data []byte) {
				id := strings.TrimPrefix(key, "item:")
				c.SRem(ctx, "items", id)
				var it entities.Item
				if json.Unmarshal(data, &it) == nil && it.OwnerID != "" {
					c.SRem(ctx, "items:owner:"+it.OwnerID, id)
				} else {
					c.SRem(ctx, "items:communal", id)
				}
			},
		},
		{
			pattern: "memory:*",
			check:   checkMemory,
			unlink: func(ctx context.Context, c *redis.Client, key string, data []byte) {
				var m entities.Memory
				if json.Unmarshal(data, &m) == nil && m.NPCName != "" {
					c.ZRem(ctx, "memories:npc:"+m.NPCName, strings.TrimPrefix(key, "memory:"))
				}
			},
		},
	}

	corrupted := map[string][]byte{}
	unlinkers := map[string]func(context.Context, *redis.Client, string, []byte){}
	var checkedCount int

	for _, rec := range records {
		fmt.Printf("Scanning %s...\n", rec.pattern)
		iter := client.Scan(ctx, 0, rec.pattern, 0).Iterator()
		for iter.Next(ctx) {
			key := iter.Val()
			checkedCount++

			data, err := client.Get(ctx, key).Bytes()
			if err != nil {
				fmt.Printf("Error reading %s: %v\n", key, err)
				continue
			}

			if problem := rec.check(data); problem != "" {
				fmt.Printf("✗ %s: %s\n", key, problem)
				corrupted[key] = data
				unlinkers[key] = rec.unlink
			}
		}
		if err := iter.Err(); err != nil {
			log.Fatal("Error during scan:", err)
		}
	}

	fmt.Printf("\nChecked %d keys, found %d corrupted entries\n", checkedCount, len(corrupted))

	if len(corrupted) == 0 {
		fmt.Println("No corrupted data found!")
		return
	}

	fmt.Print("\nDo you want to DELETE these corrupted entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for key, data := range corrupted {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
			continue
		}
		unlinkers[key](ctx, client, key, data)
		fmt.Printf("Deleted %s\n", key)
	}
	fmt.Println("\nCleanup complete!")
}
