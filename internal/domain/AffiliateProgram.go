package domain

// AffiliateProgram representa um programa de afiliados com comissões acumuladas
type AffiliateProgram struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Commission       float64 `json:"commission"` // Percentual (0-50)
	TotalSales       float64 `json:"total_sales"`
	TotalCommissions float64 `json:"total_commissions"`
	ActiveAffiliates int     `json:"active_affiliates"`
	ConversionRate   float64 `json:"conversion_rate"` // Derivada: comissões/vendas
}
