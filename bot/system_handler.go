package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleSystemConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cfg := b.bank.GetSystemConfig(context.Background())

	var sb strings.Builder
	sb.WriteString("**Bank configuration**\n")
	sb.WriteString(fmt.Sprintf("Balance interest: %.0f%% per day, compounding\n", cfg.InterestRate*100))
	sb.WriteString(fmt.Sprintf("Staking reward: %.0f%% per day, compounding\n", cfg.StakingRewardRate*100))
	sb.WriteString(fmt.Sprintf("Loan interest: %.0f%% per day, simple\n", cfg.LoanInterestRate*100))
	sb.WriteString(fmt.Sprintf("Minimum stake: %s tokens\n", FormatAmount(cfg.MinStakeAmount)))
	sb.WriteString(fmt.Sprintf("Minimum loan: %s tokens\n", FormatAmount(cfg.MinLoanAmount)))
	sb.WriteString(fmt.Sprintf("Loan ceiling: %.0f%% of staked amount", cfg.MaxLoanRatio*100))

	b.respond(s, i, sb.String())
}

func (b *Bot) handleSystemStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	stats := b.bank.GetSystemStats(context.Background())

	var sb strings.Builder
	sb.WriteString("**Bank statistics**\n")
	sb.WriteString(fmt.Sprintf("Users: %d\n", stats.TotalUsers))
	sb.WriteString(fmt.Sprintf("Total staked: %s tokens\n", FormatAmount(stats.TotalStaked)))
	sb.WriteString(fmt.Sprintf("Total value locked: %s tokens\n", FormatAmount(stats.TotalValueLocked)))
	sb.WriteString(fmt.Sprintf("Total loaned: %s tokens\n", FormatAmount(stats.TotalLoans)))
	sb.WriteString(fmt.Sprintf("Stakers: %d", stats.ActiveStakers))

	b.respond(s, i, sb.String())
}
