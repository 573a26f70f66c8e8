package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleDeposit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userKey := callerKey(i)
	amount := integerOption(i, "amount")

	newBalance, err := b.bank.Deposit(ctx, userKey, amount)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("Deposited **%s tokens**. New balance: **%s tokens**",
		FormatAmount(amount), FormatAmount(newBalance)))
}

func (b *Bot) handleWithdraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userKey := callerKey(i)
	amount := integerOption(i, "amount")

	newBalance, err := b.bank.Withdraw(ctx, userKey, amount)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("Withdrew **%s tokens**. New balance: **%s tokens**",
		FormatAmount(amount), FormatAmount(newBalance)))
}

func (b *Bot) handleAccountInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userKey := callerKey(i)
	account, err := b.bank.GetAccountInfo(ctx, userKey)
	if err != nil {
		log.Printf("Error getting account info for %s: %v", userKey, err)
		b.respondWithError(s, i, "Unable to retrieve account info. Please try again.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Your account**\n")
	sb.WriteString(fmt.Sprintf("Balance: **%s tokens**\n", FormatAmount(account.Balance)))
	sb.WriteString(fmt.Sprintf("Staked: **%s tokens**\n", FormatAmount(account.StakedAmount)))
	sb.WriteString(fmt.Sprintf("Earned from staking: **%s tokens**\n", FormatAmount(account.TotalEarnedStaking)))
	sb.WriteString(fmt.Sprintf("Total loaned: **%s tokens** across %d loans\n", FormatAmount(account.TotalLoaned), account.LoanCount))
	sb.WriteString(fmt.Sprintf("Transactions: %d\n", account.TransactionCount))
	sb.WriteString(fmt.Sprintf("Member since: %s", FormatDiscordTimestamp(account.CreatedAt, "D")))

	b.respond(s, i, sb.String())
}

func (b *Bot) handleTransactions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userKey := callerKey(i)
	history, err := b.bank.GetTransactionHistory(ctx, userKey)
	if err != nil {
		log.Printf("Error getting transactions for %s: %v", userKey, err)
		b.respondWithError(s, i, "Unable to retrieve transaction history. Please try again.")
		return
	}

	if len(history) == 0 {
		b.respond(s, i, "No transactions yet.")
		return
	}

	// Show the most recent entries, newest last
	const maxShown = 15
	start := 0
	if len(history) > maxShown {
		start = len(history) - maxShown
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Your last %d transactions**\n```\n", len(history)-start))
	for _, tx := range history[start:] {
		sb.WriteString(fmt.Sprintf("#%-5d %-15s %12s  %s\n",
			tx.ID, tx.Type, FormatAmount(tx.Amount), tx.Description))
	}
	sb.WriteString("```")

	b.respond(s, i, sb.String())
}
