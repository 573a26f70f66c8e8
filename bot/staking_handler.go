package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleStake(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userKey := callerKey(i)
	amount := integerOption(i, "amount")

	result, err := b.bank.Stake(ctx, userKey, amount)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("Staked **%s tokens**. New balance: **%s tokens**",
		FormatAmount(result.StakedAmount), FormatAmount(result.NewBalance)))
}

func (b *Bot) handleUnstake(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userKey := callerKey(i)
	result, err := b.bank.Unstake(ctx, userKey)
	if err != nil {
		b.respondWithError(s, i, err.Error())
		return
	}

	b.respond(s, i, fmt.Sprintf("Unstaked **%s tokens** (**%s** earned). New balance: **%s tokens**",
		FormatAmount(result.ReturnedAmount), FormatAmount(result.Earned), FormatAmount(result.NewBalance)))
}

func (b *Bot) handleStakingInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userKey := callerKey(i)
	position, err := b.bank.GetStakingInfo(ctx, userKey)
	if err != nil {
		log.Printf("Error getting staking info for %s: %v", userKey, err)
		b.respondWithError(s, i, "Unable to retrieve staking info. Please try again.")
		return
	}

	if position == nil {
		b.respond(s, i, "You have no staking position.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Your staking position**\n")
	if position.IsActive {
		sb.WriteString(fmt.Sprintf("Current amount: **%s tokens** (principal %s)\n",
			FormatAmount(position.Amount), FormatAmount(position.Principal)))
		sb.WriteString(fmt.Sprintf("Reward rate: %.0f%% per day, compounding\n", position.RewardRate*100))
		sb.WriteString(fmt.Sprintf("Staked since: %s", FormatDiscordTimestamp(position.StartTime, "f")))
	} else {
		sb.WriteString(fmt.Sprintf("Closed position of **%s tokens** (principal %s)",
			FormatAmount(position.Amount), FormatAmount(position.Principal)))
	}

	b.respond(s, i, sb.String())
}
