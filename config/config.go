package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Snapshot storage configuration. When DatabaseURL is set the snapshot
	// lives in postgres; otherwise it is written to SnapshotPath.
	DatabaseURL  string
	SnapshotPath string

	// Engine constants
	InterestRate      float64 // balance interest per day
	StakingRewardRate float64 // staking reward per day
	LoanInterestRate  float64 // simple loan interest per day
	MinStakeAmount    int64
	MinLoanAmount     int64
	MaxLoanRatio      float64 // loan ceiling as a fraction of staked amount

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, with .env support
func load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly
	_ = godotenv.Load()

	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Snapshot storage
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SnapshotPath: os.Getenv("SNAPSHOT_PATH"),

		// Engine defaults
		InterestRate:      0.05,
		StakingRewardRate: 0.08,
		LoanInterestRate:  0.12,
		MinStakeAmount:    1000,
		MinLoanAmount:     500,
		MaxLoanRatio:      0.7,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.SnapshotPath == "" {
		config.SnapshotPath = "data/snapshot.json"
	}

	// Override engine defaults if environment variables are set
	if v := os.Getenv("MIN_STAKE_AMOUNT"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MinStakeAmount = parsed
		}
	}
	if v := os.Getenv("MIN_LOAN_AMOUNT"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MinLoanAmount = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
	}

	return config, nil
}
