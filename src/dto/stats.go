package dto

// StatsSummary holds the headline figures over the whole journal.
type StatsSummary struct {
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	TotalPnL      float64 `json:"totalPnL"`
	WinRate       float64 `json:"winRate"`
	AvgWin        float64 `json:"avgWin"`
	AvgLoss       float64 `json:"avgLoss"`
	ProfitFactor  float64 `json:"profitFactor"`
}

// StatsPerformance holds the single-trade extremes.
type StatsPerformance struct {
	BestTrade   float64 `json:"bestTrade"`
	WorstTrade  float64 `json:"worstTrade"`
	LargestWin  float64 `json:"largestWin"`
	LargestLoss float64 `json:"largestLoss"`
}

// SymbolStats aggregates the journal per traded instrument.
type SymbolStats struct {
	Trades int     `json:"trades"`
	Pnl    float64 `json:"pnl"`
	Wins   int     `json:"wins"`
}

type Stats struct {
	Summary     StatsSummary           `json:"summary"`
	Performance StatsPerformance       `json:"performance"`
	BySymbol    map[string]SymbolStats `json:"bySymbol"`
}

// DashboardOverview is the condensed header block of the dashboard.
type DashboardOverview struct {
	TotalTrades int     `json:"totalTrades"`
	TotalPnL    float64 `json:"totalPnL"`
	WinRate     float64 `json:"winRate"`
}

// SymbolPnl is one entry of the top-symbols ranking.
type SymbolPnl struct {
	Symbol string  `json:"symbol"`
	Pnl    float64 `json:"pnl"`
}

type Dashboard struct {
	RecentTrades []Trade           `json:"recentTrades"`
	Overview     DashboardOverview `json:"overview"`
	TopSymbols   []SymbolPnl       `json:"topSymbols"`
}
