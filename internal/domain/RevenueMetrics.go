package domain

// ChannelProjection contém a projeção diária por canal e o total agregado
type ChannelProjection struct {
	ByChannel map[ChannelKind]float64 `json:"by_channel"`
	Total     float64                 `json:"total"`
}

// PeriodProjection contém os valores projetados para um período
type PeriodProjection struct {
	ByChannel map[ChannelKind]float64 `json:"by_channel,omitempty"`
	Total     float64                 `json:"total"`
	Target    float64                 `json:"target"`
	Growth    float64                 `json:"growth"`
}

// RevenueProjections agrega as projeções diária, mensal e anual.
// A projeção diária por canal é a receita corrente do fluxo daquele canal;
// mensal = diária × 30; anual = mensal × 12.
type RevenueProjections struct {
	Daily   ChannelProjection `json:"daily"`
	Monthly PeriodProjection  `json:"monthly"`
	Annual  PeriodProjection  `json:"annual"`
}

// RevenueMetrics é o resumo completo: totais por soma direta dos fluxos,
// lista de fluxos registrados e a estrutura de projeções
type RevenueMetrics struct {
	DailyTotal   float64             `json:"daily_total"`
	MonthlyTotal float64             `json:"monthly_total"`
	AnnualTotal  float64             `json:"annual_total"`
	Streams      []*RevenueStream    `json:"streams"`
	Projections  *RevenueProjections `json:"projections"`
}
