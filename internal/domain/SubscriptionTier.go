package domain

// SubscriptionTier representa um plano de assinatura rastreado pelo canal de assinaturas
type SubscriptionTier struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Features       []string `json:"features"`
	PriceReference string   `json:"price_reference"` // Referência de preço no provedor de pagamento
	TargetUsers    int      `json:"target_users"`
	CurrentUsers   int      `json:"current_users"`
	ConversionRate float64  `json:"conversion_rate"`
}
