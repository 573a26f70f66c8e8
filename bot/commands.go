package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your current balance",
		},
		{
			Name:        "deposit",
			Description: "Top up your account",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to deposit in tokens",
					Required:    true,
				},
			},
		},
		{
			Name:        "withdraw",
			Description: "Withdraw tokens from your account",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to withdraw in tokens",
					Required:    true,
				},
			},
		},
		{
			Name:        "stake",
			Description: "Stake tokens to earn daily compounding rewards",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to stake in tokens (minimum 1000)",
					Required:    true,
				},
			},
		},
		{
			Name:        "unstake",
			Description: "Close your staking position and collect rewards",
		},
		{
			Name:        "staking",
			Description: "Show your staking position",
		},
		{
			Name:        "loan",
			Description: "Apply for, repay and review loans",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "apply",
					Description: "Apply for a loan against your staking collateral",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Loan amount in tokens (minimum 500)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "term_days",
							Description: "Loan term in days",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "repay",
					Description: "Repay an active loan in full",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Loan ID to repay",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "List your loans",
				},
			},
		},
		{
			Name:        "account",
			Description: "Show your full account record",
		},
		{
			Name:        "transactions",
			Description: "Show your transaction history",
		},
		{
			Name:        "bankconfig",
			Description: "Show the bank's rates and minimums",
		},
		{
			Name:        "bankstats",
			Description: "Show system-wide statistics",
		},
	}

	for _, command := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, command)
		if err != nil {
			return fmt.Errorf("cannot create command %s: %w", command.Name, err)
		}
	}

	return nil
}
