package pnl

import (
	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

var hundred = decimal.NewFromInt(100)

// Compute returns the signed profit and percentage return of a closed trade.
// SHORT trades negate both results. A zero entry price yields a zero
// percentage, never an error or an infinity.
func Compute(entry, exit, quantity decimal.Decimal, tradeType string) (profit, percentage decimal.Decimal) {
	move := exit.Sub(entry)
	profit = move.Mul(quantity)

	if entry.IsPositive() {
		percentage = move.Div(entry).Mul(hundred)
	}

	if tradeType == model.DirectionShort {
		profit = profit.Neg()
		percentage = percentage.Neg()
	}

	return profit, percentage
}

// ComputeFloat wraps Compute for the float64 service boundary.
func ComputeFloat(entry, exit, quantity float64, tradeType string) (float64, float64) {
	profit, percentage := Compute(
		decimal.NewFromFloat(entry),
		decimal.NewFromFloat(exit),
		decimal.NewFromFloat(quantity),
		tradeType,
	)
	return profit.InexactFloat64(), percentage.InexactFloat64()
}
