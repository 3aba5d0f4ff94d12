package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/agent-sandbox/internal/scenario"
)

var (
	seedReset    bool
	seedScenario string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a scenario into the store",
	Long: `Write the world, locations, NPCs and items of a scenario through the repositories.
Without --scenario the built-in scenario is used.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Flush the Redis database before seeding")
	seedCmd.Flags().StringVar(&seedScenario, "scenario", "", "Path to a YAML scenario (overrides SANDBOX_SCENARIO_PATH)")
	seedCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (overrides SANDBOX_REDIS_ADDR)")
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Default()
	}
	return scenario.Load(path)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	path := cfg.ScenarioPath
	if cmd.Flags().Changed("scenario") {
		path = seedScenario
	}
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	redisClient, err := connectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = redisClient.Close() // nolint:errcheck // best effort on exit
	}()

	if seedReset {
		if err := redisClient.FlushDB(ctx).Err(); err != nil {
			return fmt.Errorf("failed to reset redis: %w", err)
		}
		slog.Info("redis database flushed", "db", cfg.RedisDB)
	}

	repos, err := newRepositories(cfg, redisClient)
	if err != nil {
		return err
	}
	defer repos.close()

	seeder, err := scenario.NewSeeder(&scenario.SeederConfig{
		NPCRepo:      repos.npc,
		LocationRepo: repos.location,
		ItemRepo:     repos.item,
		WorldRepo:    repos.world,
	})
	if err != nil {
		return err
	}

	if err := seeder.Seed(ctx, sc); err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}

	fmt.Printf("Seeded %d locations, %d NPCs and %d items.\n", len(sc.Locations), len(sc.NPCs), len(sc.Items))
	return nil
}
