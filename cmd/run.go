package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"tokenbank/bot"
	"tokenbank/config"
	"tokenbank/database"
	"tokenbank/events"
	"tokenbank/models"
	"tokenbank/repository"
	"tokenbank/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting tokenbank...")

	// Load configuration
	cfg := config.Get()

	// Initialize the durable snapshot medium
	var snapshotStore service.SnapshotStore
	var db *database.DB
	if cfg.DatabaseURL != "" {
		log.Println("Connecting to database...")
		var err error
		db, err = database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		snapshotStore = repository.NewPostgresSnapshotStore(db)
		log.Println("Using postgres snapshot storage")
	} else {
		var err error
		snapshotStore, err = repository.NewFileSnapshotStore(cfg.SnapshotPath)
		if err != nil {
			return fmt.Errorf("failed to open snapshot file: %w", err)
		}
		log.Printf("Using file snapshot storage at %s", cfg.SnapshotPath)
	}

	// Initialize event bus
	eventBus := events.NewBus()
	subscribeLogObserver(eventBus)

	// Initialize the live stores
	accounts := repository.NewAccountStore()
	staking := repository.NewStakingStore()
	loans := repository.NewLoanStore()
	txlog := repository.NewTransactionStore()

	// Initialize services
	log.Println("Initializing services...")
	clock := service.NewClock()
	statsService := service.NewStatsService(accounts, staking)
	ledgerService := service.NewLedgerService(accounts, txlog, statsService, eventBus, clock, cfg.InterestRate)
	stakingService := service.NewStakingService(ledgerService, staking, txlog, statsService, eventBus, clock, cfg.StakingRewardRate, cfg.MinStakeAmount)
	loanService := service.NewLoanService(ledgerService, staking, loans, txlog, statsService, eventBus, clock, cfg.LoanInterestRate, cfg.MinLoanAmount, cfg.MaxLoanRatio)
	snapshotService := service.NewSnapshotService(accounts, staking, loans, txlog, statsService, snapshotStore, eventBus)

	bank := service.NewBank(ledgerService, stakingService, loanService, statsService, txlog, snapshotService, models.SystemConfig{
		InterestRate:      cfg.InterestRate,
		StakingRewardRate: cfg.StakingRewardRate,
		LoanInterestRate:  cfg.LoanInterestRate,
		MinStakeAmount:    cfg.MinStakeAmount,
		MinLoanAmount:     cfg.MinLoanAmount,
		MaxLoanRatio:      cfg.MaxLoanRatio,
	})

	// Restore state from the last snapshot, if any
	restored, err := bank.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	if restored {
		log.Println("State restored from snapshot")
	} else {
		log.Println("No snapshot found, starting cold")
	}

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	}, bank, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bank is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down...")

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Persist the final snapshot after the bot stops accepting requests
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := bank.SaveSnapshot(shutdownCtx); err != nil {
		log.Printf("Error saving snapshot: %v", err)
	} else {
		log.Println("Snapshot saved")
	}

	if db != nil {
		log.Println("Closing database connection...")
		db.Close()
	}

	log.Println("Shutdown completed")
	return nil
}

// subscribeLogObserver attaches log observers to the engine's events
func subscribeLogObserver(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			log.Printf("Balance change: user=%s type=%s amount=%d balance=%d",
				e.UserKey, e.TransactionType, e.ChangeAmount, e.NewBalance)
		}
	})
	bus.Subscribe(events.EventTypeSnapshotSaved, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.SnapshotSavedEvent); ok {
			log.Printf("Snapshot saved: accounts=%d transactions=%d", e.Accounts, e.Transactions)
		}
	})
}
