package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

// handleLoanCommand handles the /loan command with subcommands
func (b *Bot) handleLoanCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondWithError(s, i, "Please specify a subcommand: apply, repay or history")
		return
	}

	switch options[0].Name {
	case "apply":
		b.handleLoanApply(s, i, options[0].Options)
	case "repay":
		b.handleLoanRepay(s, i, options[0].Options)
	case "history":
		b.handleLoanHistory(s, i)
	default:
		b.respondWithError(s, i, "Unknown subcommand")
	}
}

func (b *Bot) handleLoanApply(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	userKey := callerKey(i)

	var amount, termDays int64
	for _, opt := range options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "term_days":
			termDays = opt.IntValue()
		}
	}

	result, err := b.bank.ApplyForLoan(ctx, userKey, amount, int(termDays))
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("Loan **#%d** disbursed: **%s tokens**, due %s. New balance: **%s tokens**",
		result.LoanID, FormatAmount(result.Amount),
		FormatDiscordTimestamp(result.DueDate, "D"), FormatAmount(result.NewBalance)))
}

func (b *Bot) handleLoanRepay(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	userKey := callerKey(i)

	var loanID int64
	for _, opt := range options {
		if opt.Name == "id" {
			loanID = opt.IntValue()
		}
	}

	result, err := b.bank.RepayLoan(ctx, userKey, int(loanID))
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("Loan **#%d** repaid: **%s tokens** (**%s** interest). New balance: **%s tokens**",
		result.LoanID, FormatAmount(result.TotalRepayment),
		FormatAmount(result.Interest), FormatAmount(result.NewBalance)))
}

func (b *Bot) handleLoanHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userKey := callerKey(i)
	loans, err := b.bank.GetLoanHistory(ctx, userKey)
	if err != nil {
		log.Printf("Error getting loan history for %s: %v", userKey, err)
		b.respondWithError(s, i, "Unable to retrieve loan history. Please try again.")
		return
	}

	if len(loans) == 0 {
		b.respond(s, i, "You have no loans.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Your loans**\n```\n")
	sb.WriteString(fmt.Sprintf("%-4s %-12s %-12s %-10s %s\n", "ID", "Amount", "Principal", "Status", "Due"))
	for id, loan := range loans {
		sb.WriteString(fmt.Sprintf("%-4d %-12s %-12s %-10s %s\n",
			id, FormatAmount(loan.Amount), FormatAmount(loan.Principal),
			loan.Status, loan.DueDate.Format("2006-01-02")))
	}
	sb.WriteString("```")

	b.respond(s, i, sb.String())
}
