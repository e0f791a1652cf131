package dto

import "github.com/shopspring/decimal"

// DashboardResponse aggregates the numbers shown on the admin landing page.
type DashboardResponse struct {
	MembersByStatus map[string]int64      `json:"members_by_status"`
	UpcomingEvents  []EventResponse       `json:"upcoming_events"`
	MonthRevenue    decimal.Decimal       `json:"month_revenue"`
	MonthSalesCount int64                 `json:"month_sales_count"`
	LowStock        []LowStockEntry       `json:"low_stock"`
}

// LowStockEntry flags a bar product or inventory item below its minimum.
type LowStockEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Source   string `json:"source"` // "bar" | "inventory"
	Quantity int    `json:"quantity"`
	Minimum  int    `json:"minimum"`
}

// TreasurySummaryResponse breaks the month's bar revenue down by payment method.
type TreasurySummaryResponse struct {
	Month      string                     `json:"month"` // YYYY-MM
	Total      decimal.Decimal            `json:"total"`
	SalesCount int64                      `json:"sales_count"`
	ByMethod   map[string]decimal.Decimal `json:"by_method"`
}
