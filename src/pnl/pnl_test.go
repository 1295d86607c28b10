package pnl

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tradejournal/src/model"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestComputeLong(t *testing.T) {
	profit, percentage := Compute(dec("100"), dec("110"), dec("2"), model.DirectionLong)

	assert.True(t, profit.Equal(dec("20")), "profit = %s", profit)
	assert.True(t, percentage.Equal(dec("10")), "percentage = %s", percentage)
}

func TestComputeShort(t *testing.T) {
	profit, percentage := Compute(dec("1.10"), dec("1.05"), dec("1000"), model.DirectionShort)

	assert.True(t, profit.Equal(dec("50")), "profit = %s", profit)
	assert.InDelta(t, 4.545454, percentage.InexactFloat64(), 0.0001)
}

func TestComputeLosingLong(t *testing.T) {
	profit, percentage := Compute(dec("50"), dec("45"), dec("10"), model.DirectionLong)

	assert.True(t, profit.Equal(dec("-50")), "profit = %s", profit)
	assert.True(t, percentage.Equal(dec("-10")), "percentage = %s", percentage)
}

func TestComputeZeroEntryPrice(t *testing.T) {
	for _, tradeType := range []string{model.DirectionLong, model.DirectionShort} {
		profit, percentage := Compute(dec("0"), dec("10"), dec("3"), tradeType)

		assert.True(t, percentage.IsZero(), "percentage must be zero for zero entry, got %s", percentage)
		assert.False(t, profit.IsZero())
	}
}

func TestComputeFloat(t *testing.T) {
	profit, percentage := ComputeFloat(100, 110, 2, model.DirectionLong)

	assert.Equal(t, 20.0, profit)
	assert.Equal(t, 10.0, percentage)
}

func TestComputeShortMirrorsLong(t *testing.T) {
	long, longPct := Compute(dec("200"), dec("250"), dec("4"), model.DirectionLong)
	short, shortPct := Compute(dec("200"), dec("250"), dec("4"), model.DirectionShort)

	assert.True(t, long.Equal(short.Neg()))
	assert.True(t, longPct.Equal(shortPct.Neg()))
}
