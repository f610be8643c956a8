package model

// ReportRange selects the reporting window. The lower bound is derived
// from "now": a week back, a month back, or the start of today.
type ReportRange string

const (
	RangeToday   ReportRange = "today"
	RangeWeekly  ReportRange = "weekly"
	RangeMonthly ReportRange = "monthly"
)

type SalesMetrics struct {
	OrderCount    int64   `json:"order_count"`
	TotalSales    float64 `json:"total_sales"`
	AvgOrderPrice float64 `json:"avg_order_price"`
}

type TopSellingItem struct {
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
}

type SalesTrendPoint struct {
	Date       string  `json:"date"` // calendar day, YYYY-MM-DD
	TotalSales float64 `json:"total_sales"`
}

type FinancialSummary struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"` // Σ(total - initial_total)
}
