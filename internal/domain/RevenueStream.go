package domain

// ChannelKind identifica um dos cinco canais fixos de receita
type ChannelKind string

const (
	ChannelSubscription ChannelKind = "subscription"
	ChannelAdvertising  ChannelKind = "advertising"
	ChannelAffiliate    ChannelKind = "affiliate"
	ChannelMarketplace  ChannelKind = "marketplace"
	ChannelConsulting   ChannelKind = "consulting"
)

// ChannelKinds é o conjunto fixo de canais, na ordem canônica de agregação
var ChannelKinds = []ChannelKind{
	ChannelSubscription,
	ChannelAdvertising,
	ChannelAffiliate,
	ChannelMarketplace,
	ChannelConsulting,
}

// StreamStatus representa o estado operacional de um fluxo de receita
type StreamStatus string

const (
	StreamStatusActive     StreamStatus = "active"
	StreamStatusPaused     StreamStatus = "paused"
	StreamStatusOptimizing StreamStatus = "optimizing"
)

// RevenueStream representa um fluxo de receita rastreado pelo registro.
// CurrentRevenue é o valor por período (diário); Target é a meta do canal.
type RevenueStream struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Kind           ChannelKind  `json:"kind"`
	CurrentRevenue float64      `json:"current_revenue"`
	TargetRevenue  float64      `json:"target_revenue"`
	GrowthRate     float64      `json:"growth_rate"`
	Margin         float64      `json:"margin"`
	Status         StreamStatus `json:"status"`
}
