package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"tokenbank/events"
	"tokenbank/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// Bot is the Discord front-end. It resolves the caller identity (the Discord
// user ID string is the engine's user key), forwards requests to the Bank
// and renders replies. All engine semantics live behind the Bank facade.
type Bot struct {
	config   Config
	session  *discordgo.Session
	bank     *service.Bank
	eventBus *events.Bus
}

// New creates the bot, opens the gateway connection and registers commands
func New(config Config, bank *service.Bank, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:   config,
		session:  dg,
		bank:     bank,
		eventBus: eventBus,
	}

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close shuts down the gateway connection
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.handleBalance(s, i)
	case "deposit":
		b.handleDeposit(s, i)
	case "withdraw":
		b.handleWithdraw(s, i)
	case "stake":
		b.handleStake(s, i)
	case "unstake":
		b.handleUnstake(s, i)
	case "staking":
		b.handleStakingInfo(s, i)
	case "loan":
		b.handleLoanCommand(s, i)
	case "account":
		b.handleAccountInfo(s, i)
	case "transactions":
		b.handleTransactions(s, i)
	case "bankconfig":
		b.handleSystemConfig(s, i)
	case "bankstats":
		b.handleSystemStats(s, i)
	}
}

// callerKey resolves the engine user key for an interaction. The caller's
// Discord user ID is trusted as-is.
func callerKey(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userKey := callerKey(i)
	if userKey == "" {
		b.respondWithError(s, i, "Unable to resolve your user. Please try again.")
		return
	}

	balance, err := b.bank.GetBalance(ctx, userKey)
	if err != nil {
		log.Printf("Error getting balance for %s: %v", userKey, err)
		b.respondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	b.respond(s, i, fmt.Sprintf("Your current balance: **%s tokens**", FormatAmount(balance)))
}
