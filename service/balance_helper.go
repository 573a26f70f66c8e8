package service

import (
	"math"
	"time"

	"tokenbank/models"
)

// secondsPerDay is the length of one compounding period
const secondsPerDay = 86400.0

// floorToTokens converts a float token quantity to the integer unit. The
// result is floored and saturates at MaxInt64: a balance left compounding for
// years produces a float product past the int64 range, and a plain conversion
// there would wrap to MinInt64 and turn the balance negative.
func floorToTokens(f float64) int64 {
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(f))
}

// saturatingAdd adds two non-negative token amounts, capping at MaxInt64
// instead of wrapping
func saturatingAdd(a, b int64) int64 {
	sum := a + b
	if a > 0 && b > 0 && sum < 0 {
		return math.MaxInt64
	}
	return sum
}

// compoundAmount grows amount by rate compounded over real-valued periods of
// one day each. Fractional sub-day periods are not truncated; growth is
// floored to the smallest token unit and saturates at MaxInt64.
func compoundAmount(amount int64, rate float64, elapsed time.Duration) int64 {
	periods := elapsed.Seconds() / secondsPerDay
	if periods <= 0 || amount <= 0 {
		return amount
	}
	return floorToTokens(float64(amount) * math.Pow(1+rate, periods))
}

// applyAccountInterest applies pending balance interest up to now.
// The timestamp advances only when interest is actually computed, so a zero
// balance keeps accruing from the original mark.
func applyAccountInterest(account *models.Account, rate float64, now time.Time) {
	elapsed := now.Sub(account.LastInterestApplied)
	if elapsed <= 0 || account.Balance <= 0 {
		return
	}
	account.Balance = compoundAmount(account.Balance, rate, elapsed)
	account.LastInterestApplied = now
}

// RecordTransaction appends the operation's transaction record and triggers a
// stats recompute. This is the single completion point for all mutating
// operations in the system; it runs only after every precondition has passed
// and every store mutation has been made.
func RecordTransaction(account *models.Account, txlog TransactionLog, stats StatsRecomputer, txType models.TransactionType, amount int64, description string, now time.Time) *models.Transaction {
	tx := txlog.Append(account.UserKey, txType, amount, description, now)
	account.TransactionCount++
	stats.Recompute()
	return tx
}
