package domain

// MarketplaceMetrics é o registro único de métricas do marketplace.
// AverageOrderValue é derivado: GMV / max(ActiveBuyers, 1).
type MarketplaceMetrics struct {
	GMV               float64 `json:"gmv"`
	CommissionRate    float64 `json:"commission_rate"` // Fração, limitada a 0.35
	TotalRevenue      float64 `json:"total_revenue"`
	ActiveSellers     int     `json:"active_sellers"`
	ActiveBuyers      int     `json:"active_buyers"`
	AverageOrderValue float64 `json:"average_order_value"`
}
