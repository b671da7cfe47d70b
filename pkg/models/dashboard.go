package models

// DashboardStats aggregates the headline counters shown on the dashboard.
type DashboardStats struct {
	TotalProducts     int `json:"totalProducts"`
	TotalTransactions int `json:"totalTransactions"`
	OpenAlerts        int `json:"openAlerts"`
	OutOfStock        int `json:"outOfStock"`
	LowStock          int `json:"lowStock"`
}

// MonthlyTransactionPoint is one month of IN/OUT totals for the chart data.
type MonthlyTransactionPoint struct {
	Month string `json:"month"`
	In    int    `json:"in"`
	Out   int    `json:"out"`
}
