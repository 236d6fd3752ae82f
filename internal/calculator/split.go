package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/meetsplit/internal/apperr"
)

// AmountPlaces is the number of decimal places amounts are persisted with.
const AmountPlaces = 2

// SplitAmount computes one participant's share of an item:
// unitPrice × quantity / participantCount. The result is not rounded;
// use RoundAmount at the point where the amount is stored.
func SplitAmount(participantCount int, unitPrice, quantity decimal.Decimal) (decimal.Decimal, error) {
	if participantCount < 1 {
		return decimal.Zero, &apperr.InvalidGroupError{Reason: "cannot split across zero participants"}
	}

	total := unitPrice.Mul(quantity)
	return total.Div(decimal.NewFromInt(int64(participantCount))), nil
}

// RoundAmount rounds an amount to cents, half away from zero.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(AmountPlaces)
}

// SplitRounded is SplitAmount followed by RoundAmount.
func SplitRounded(participantCount int, unitPrice, quantity decimal.Decimal) (decimal.Decimal, error) {
	split, err := SplitAmount(participantCount, unitPrice, quantity)
	if err != nil {
		return decimal.Zero, err
	}
	return RoundAmount(split), nil
}

// Total sums a list of amounts.
func Total(amounts ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}
