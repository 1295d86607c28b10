package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"tradejournal/src/dto"
)

// Summarize computes the journal-wide statistics over an already translated
// trade set. An empty input yields an all-zero structure with an empty
// bySymbol map, never an error.
//
// When there are no losing trades the profit factor equals the summed
// winning P&L. That mirrors the behavior the dashboard has always shown and
// is intentional.
func Summarize(trades []dto.Trade) dto.Stats {
	stats := dto.Stats{
		BySymbol: map[string]dto.SymbolStats{},
	}

	if len(trades) == 0 {
		return stats
	}

	var (
		totalPnl   decimal.Decimal
		winningPnl decimal.Decimal
		losingPnl  decimal.Decimal
		winners    int
		losers     int

		best, worst             decimal.Decimal
		largestWin, largestLoss decimal.Decimal
	)

	for i, trade := range trades {
		pnl := decimal.NewFromFloat(trade.Pnl)
		totalPnl = totalPnl.Add(pnl)

		if i == 0 {
			best, worst = pnl, pnl
		} else {
			if pnl.GreaterThan(best) {
				best = pnl
			}
			if pnl.LessThan(worst) {
				worst = pnl
			}
		}

		switch {
		case pnl.IsPositive():
			winners++
			winningPnl = winningPnl.Add(pnl)
			if winners == 1 || pnl.GreaterThan(largestWin) {
				largestWin = pnl
			}
		case pnl.IsNegative():
			losers++
			losingPnl = losingPnl.Add(pnl)
			if losers == 1 || pnl.LessThan(largestLoss) {
				largestLoss = pnl
			}
		}

		symbolStats := stats.BySymbol[trade.Symbol]
		symbolStats.Trades++
		symbolStats.Pnl = decimal.NewFromFloat(symbolStats.Pnl).Add(pnl).InexactFloat64()
		if pnl.IsPositive() {
			symbolStats.Wins++
		}
		stats.BySymbol[trade.Symbol] = symbolStats
	}

	total := decimal.NewFromInt(int64(len(trades)))

	stats.Summary = dto.StatsSummary{
		TotalTrades:   len(trades),
		WinningTrades: winners,
		LosingTrades:  losers,
		TotalPnL:      totalPnl.InexactFloat64(),
		WinRate:       decimal.NewFromInt(int64(winners)).Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64(),
	}

	if winners > 0 {
		stats.Summary.AvgWin = winningPnl.Div(decimal.NewFromInt(int64(winners))).InexactFloat64()
	}
	if losers > 0 {
		stats.Summary.AvgLoss = losingPnl.Div(decimal.NewFromInt(int64(losers))).InexactFloat64()
		stats.Summary.ProfitFactor = winningPnl.Div(losingPnl).Abs().InexactFloat64()
	} else {
		stats.Summary.ProfitFactor = winningPnl.InexactFloat64()
	}

	stats.Performance = dto.StatsPerformance{
		BestTrade:   best.InexactFloat64(),
		WorstTrade:  worst.InexactFloat64(),
		LargestWin:  largestWin.InexactFloat64(),
		LargestLoss: largestLoss.InexactFloat64(),
	}

	return stats
}

// BuildDashboard assembles the dashboard view: the recent slice as-is, the
// overview totals over the whole journal, and the top three symbols by
// summed P&L.
func BuildDashboard(recent, all []dto.Trade) dto.Dashboard {
	dashboard := dto.Dashboard{
		RecentTrades: recent,
		TopSymbols:   []dto.SymbolPnl{},
	}
	if dashboard.RecentTrades == nil {
		dashboard.RecentTrades = []dto.Trade{}
	}

	var totalPnl decimal.Decimal
	winners := 0
	perSymbol := map[string]decimal.Decimal{}

	for _, trade := range all {
		pnl := decimal.NewFromFloat(trade.Pnl)
		totalPnl = totalPnl.Add(pnl)
		if pnl.IsPositive() {
			winners++
		}
		perSymbol[trade.Symbol] = perSymbol[trade.Symbol].Add(pnl)
	}

	dashboard.Overview = dto.DashboardOverview{
		TotalTrades: len(all),
		TotalPnL:    totalPnl.InexactFloat64(),
	}
	if len(all) > 0 {
		dashboard.Overview.WinRate = decimal.NewFromInt(int64(winners)).
			Div(decimal.NewFromInt(int64(len(all)))).
			Mul(decimal.NewFromInt(100)).
			InexactFloat64()
	}

	for symbol, pnl := range perSymbol {
		dashboard.TopSymbols = append(dashboard.TopSymbols, dto.SymbolPnl{
			Symbol: symbol,
			Pnl:    pnl.InexactFloat64(),
		})
	}
	sort.Slice(dashboard.TopSymbols, func(i, j int) bool {
		if dashboard.TopSymbols[i].Pnl != dashboard.TopSymbols[j].Pnl {
			return dashboard.TopSymbols[i].Pnl > dashboard.TopSymbols[j].Pnl
		}
		return dashboard.TopSymbols[i].Symbol < dashboard.TopSymbols[j].Symbol
	})
	if len(dashboard.TopSymbols) > 3 {
		dashboard.TopSymbols = dashboard.TopSymbols[:3]
	}

	return dashboard
}
